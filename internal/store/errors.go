package store

import (
	"errors"
	"fmt"
)

// ErrNothingRegistered indicates that the user has no watch-list to unregister from.
var ErrNothingRegistered = errors.New("nothing registered")

// ErrNoSeries indicates that the user's watch-list is absent or empty.
var ErrNoSeries = errors.New("no series")

// ErrEmptyLabel indicates that the given label is empty after trimming.
var ErrEmptyLabel = errors.New("label must not be empty")

// Error is returned when the underlying storage fails.
type Error struct {
	Op  string
	Err error
}

var _ error = (*Error)(nil)

// NewError wraps the given storage failure of the given operation.
func NewError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s failed: %s", e.Op, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}
