// Package tesseract provides an ocr.Engine backed by the Tesseract library through gosseract.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	"github.com/sofiwisher/sofiwisher/internal/ocr"
)

// Engine opens one gosseract client per session.
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

var _ ocr.Engine = (*Engine)(nil)

// NewEngine creates an Engine loading the given languages' trained data.
func NewEngine(languages ...string) *Engine {
	return &Engine{
		languages:     languages,
		clientFactory: gosseract.NewClient,
	}
}

// NewSession creates a client configured with the Engine's languages.
func (e *Engine) NewSession(ctx context.Context) (ocr.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := e.clientFactory()
	if len(e.languages) > 0 {
		if err := client.SetLanguage(e.languages...); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	return &session{client: client}, nil
}

type session struct {
	client *gosseract.Client
}

var _ ocr.Session = (*session)(nil)

// Recognize crops the region out of the image file and runs recognition on the crop only.
func (s *session) Recognize(ctx context.Context, path string, region image.Rectangle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := cropImage(path, region)
	if err != nil {
		return "", err
	}

	if err := s.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := s.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

func (s *session) Close() error {
	return s.client.Close()
}

func cropImage(path string, region image.Rectangle) ([]byte, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}

	if !region.Empty() {
		src = imaging.Crop(src, region)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode region: %w", err)
	}
	return buf.Bytes(), nil
}
