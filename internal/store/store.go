package store

import (
	"context"
	"strings"
)

// Record is the watch-list of a single user.
type Record struct {
	UserID string   `bson:"userId" json:"userId"`
	Series []string `bson:"series" json:"series"`
}

// Store persists users' watch-lists.
//
// Register adds a label to the user's watch-list, creating the record on first use.
// Registering a label that is already present is a no-op and still succeeds.
//
// Unregister removes a label from the user's watch-list.
// ErrNothingRegistered is returned when the user has no record; removing an absent label succeeds.
//
// List returns the labels in stored order, or ErrNoSeries when the record is absent or empty.
//
// All returns every stored record.
//
// Storage failures are reported as *Error.
type Store interface {
	Register(ctx context.Context, userID string, label string) error
	Unregister(ctx context.Context, userID string, label string) error
	List(ctx context.Context, userID string) ([]string, error)
	All(ctx context.Context) ([]*Record, error)
	Close(ctx context.Context) error
}

// NormalizeLabel trims and lowercases the given label.
// ErrEmptyLabel is returned when nothing is left.
func NormalizeLabel(label string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return "", ErrEmptyLabel
	}
	return normalized, nil
}
