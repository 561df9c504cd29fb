package pipeline

import (
	"errors"
	"fmt"
)

// ErrEmptyOutput indicates that the converter exited without writing an image.
var ErrEmptyOutput = errors.New("converter produced no output")

// ErrTooNarrow indicates that the image is too narrow to be cut into the configured number of segments.
var ErrTooNarrow = errors.New("image is too narrow to segment")

// ErrUnknownConverter indicates that Config.Converter names no known converter.
var ErrUnknownConverter = errors.New("unknown converter")

// TransferError is returned when the drop image cannot be fetched or stored.
type TransferError struct {
	URL string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Err.Error())
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// ConversionError is returned when the drop image cannot be converted.
type ConversionError struct {
	Src string
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to convert %s: %s", e.Src, e.Err.Error())
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// SegmentationError is returned when the converted image cannot be cut into segments.
type SegmentationError struct {
	Src string
	Err error
}

func (e *SegmentationError) Error() string {
	return fmt.Sprintf("failed to segment %s: %s", e.Src, e.Err.Error())
}

func (e *SegmentationError) Unwrap() error {
	return e.Err
}
