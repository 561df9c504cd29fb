package pipeline

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Segment is one vertical slice of a drop image, holding a single card.
type Segment struct {
	Index  int
	Bounds image.Rectangle
	Path   string
}

// Segmenter cuts images into a fixed number of vertical slices.
type Segmenter struct {
	count int
}

// NewSegmenter creates a Segmenter producing count slices.
func NewSegmenter(count int) *Segmenter {
	return &Segmenter{count: count}
}

// Segment cuts the image at src into slices of width round(W/count) spanning the full height,
// and saves them to outDir as card_1.png, card_2.png and so on.
// The last slice ends at the right edge of the image, so slice widths add up to W.
// Any failure is returned as *SegmentationError and stops the remaining slices.
func (s *Segmenter) Segment(src string, outDir string) ([]Segment, error) {
	segments, err := s.segment(src, outDir)
	if err != nil {
		return nil, &SegmentationError{Src: src, Err: err}
	}
	return segments, nil
}

func (s *Segmenter) segment(src string, outDir string) ([]Segment, error) {
	if s.count < 1 {
		return nil, fmt.Errorf("invalid segment count %d", s.count)
	}

	img, err := imaging.Open(src)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < s.count || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d into %d", ErrTooNarrow, width, height, s.count)
	}

	segmentWidth := int(math.Round(float64(width) / float64(s.count)))
	if (s.count-1)*segmentWidth >= width {
		return nil, fmt.Errorf("%w: %dx%d into %d", ErrTooNarrow, width, height, s.count)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, s.count)
	for i := 0; i < s.count; i++ {
		left := i * segmentWidth
		right := min((i+1)*segmentWidth, width)
		if i == s.count-1 {
			right = width
		}

		rect := image.Rect(bounds.Min.X+left, bounds.Min.Y, bounds.Min.X+right, bounds.Max.Y)
		path := filepath.Join(outDir, fmt.Sprintf("card_%d.png", i+1))
		if err := imaging.Save(imaging.Crop(img, rect), path); err != nil {
			return nil, err
		}

		segments = append(segments, Segment{
			Index:  i,
			Bounds: image.Rect(left, 0, right, height),
			Path:   path,
		})
	}
	return segments, nil
}
