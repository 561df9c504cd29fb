package ocr

import (
	"context"
	"image"
)

// Text is the recognized text of one segment.
// Valid is false when nothing could be extracted for the segment.
type Text struct {
	Value string
	Valid bool
}

// Present returns a valid Text holding the given value.
func Present(value string) Text {
	return Text{Value: value, Valid: true}
}

// Absent returns the marker of a segment that could not be read.
func Absent() Text {
	return Text{}
}

// Engine opens OCR sessions.
type Engine interface {
	NewSession(ctx context.Context) (Session, error)
}

// Session recognizes text in a region of an image file.
// A Session is used by one goroutine at a time and must be closed.
type Session interface {
	Recognize(ctx context.Context, path string, region image.Rectangle) (string, error)
	Close() error
}
