package ocr

import (
	"errors"
	"fmt"
)

// ErrEmptyRegion indicates that the region of interest of a segment has no pixels.
var ErrEmptyRegion = errors.New("region of interest is empty")

// Error describes a segment that could not be read.
// It is logged and the segment's slot is left absent.
type Error struct {
	Index int
	Path  string
	Err   error
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	return fmt.Sprintf("ocr: segment %d (%s): %s", e.Index, e.Path, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}
