package pipeline

import (
	"context"
	"net/http"

	"github.com/oklahomer/go-kasumi/logger"
	"github.com/sofiwisher/sofiwisher/internal/ocr"
)

// TextExtractor reads the text of every segment.
// *ocr.Extractor satisfies this interface.
type TextExtractor interface {
	Extract(ctx context.Context, paths []string) []ocr.Text
}

var _ TextExtractor = (*ocr.Extractor)(nil)

// Option defines a function signature for Pipeline's functional options.
type Option func(*Pipeline)

// WithHTTPClient sets the client used to fetch drop images.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Pipeline) {
		p.fetcher = NewFetcher(client)
	}
}

// Pipeline reads the cards of a drop image.
type Pipeline struct {
	config    *Config
	fetcher   *Fetcher
	converter Converter
	segmenter *Segmenter
	extractor TextExtractor
}

// New creates a Pipeline converting with converter and reading segments with extractor.
func New(config *Config, converter Converter, extractor TextExtractor, options ...Option) *Pipeline {
	p := &Pipeline{
		config:    config,
		fetcher:   NewFetcher(nil),
		converter: converter,
		segmenter: NewSegmenter(config.SegmentCount),
		extractor: extractor,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// Run fetches the image at url and returns the text of each of its segments in order.
// An error from any stage before extraction aborts the Run; segments that cannot be read
// are absent in the result instead.
func (p *Pipeline) Run(ctx context.Context, url string) ([]ocr.Text, error) {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	ws, err := NewWorkspace(p.config.WorkDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := ws.Remove(); err != nil {
			logger.Warnf("Failed to remove workspace %s: %+v", ws.ID, err)
		}
	}()

	source := ws.Path("drop.webp")
	logger.Debugf("[%s] Fetching %s", ws.ID, url)
	if err := p.fetcher.Fetch(ctx, url, source); err != nil {
		return nil, err
	}

	normalized := ws.Path("drop.png")
	logger.Debugf("[%s] Converting drop image", ws.ID)
	if err := p.converter.Convert(ctx, source, normalized); err != nil {
		return nil, err
	}

	segments, err := p.segmenter.Segment(normalized, ws.Path("segments"))
	if err != nil {
		return nil, err
	}
	logger.Debugf("[%s] Cut drop image into %d segments", ws.ID, len(segments))

	paths := make([]string, 0, len(segments))
	for _, segment := range segments {
		paths = append(paths, segment.Path)
	}

	texts := p.extractor.Extract(ctx, paths)
	logger.Debugf("[%s] Extracted %d texts", ws.ID, len(texts))
	return texts, nil
}
