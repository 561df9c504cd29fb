package ocr

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"strings"

	"github.com/oklahomer/go-kasumi/logger"
)

// Extractor reads the bottom strip of every segment of a drop.
type Extractor struct {
	engine      Engine
	roiFraction float64
}

// NewExtractor creates an Extractor using the given Engine.
func NewExtractor(engine Engine, config *Config) *Extractor {
	return &Extractor{
		engine:      engine,
		roiFraction: config.ROIFraction,
	}
}

// Extract returns one Text per given path, in order.
//
// One session is opened for the whole batch and closed before returning.
// When the session cannot be opened every slot is absent. A segment that fails is logged and its
// slot is left absent; the others are still read. Once ctx is done the remaining slots are absent.
func (e *Extractor) Extract(ctx context.Context, paths []string) []Text {
	texts := make([]Text, len(paths))

	session, err := e.engine.NewSession(ctx)
	if err != nil {
		logger.Errorf("Failed to open OCR session, %d segments are left unread: %+v", len(paths), err)
		return texts
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warnf("Failed to close OCR session: %+v", err)
		}
	}()

	for i, path := range paths {
		if ctx.Err() != nil {
			logger.Warnf("Text extraction canceled, %d segments are left unread: %+v", len(paths)-i, ctx.Err())
			break
		}

		value, err := e.extract(ctx, session, path)
		if err != nil {
			logger.Errorf("%+v", &Error{Index: i, Path: path, Err: err})
			continue
		}

		logger.Debugf("Segment %d read as %q", i, value)
		texts[i] = Present(value)
	}

	return texts
}

func (e *Extractor) extract(ctx context.Context, session Session, path string) (string, error) {
	width, height, err := dimensions(path)
	if err != nil {
		return "", err
	}

	region := RegionOfInterest(width, height, e.roiFraction)
	if region.Empty() {
		return "", ErrEmptyRegion
	}

	text, err := session.Recognize(ctx, path, region)
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(strings.TrimSpace(text), "\n", " "), nil
}

// RegionOfInterest returns the full-width strip of round(height*fraction) rows at the bottom
// of a width x height image.
func RegionOfInterest(width int, height int, fraction float64) image.Rectangle {
	rows := int(math.Round(float64(height) * fraction))
	if rows > height {
		rows = height
	}
	if rows < 0 {
		rows = 0
	}
	return image.Rect(0, height-rows, width, height)
}

func dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	config, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image header: %w", err)
	}
	return config.Width, config.Height, nil
}
