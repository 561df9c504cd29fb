// Package match finds the registered series named in the text read from a drop.
package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sofiwisher/sofiwisher/internal/ocr"
	"github.com/sofiwisher/sofiwisher/internal/store"
)

// Mode decides how many results a user gets for one drop.
type Mode string

const (
	// PerSegment yields one result for every segment naming at least one of the user's series.
	PerSegment Mode = "per_segment"

	// PerDrop yields at most one result per user, holding every series found in the drop.
	PerDrop Mode = "per_drop"
)

// ErrUnknownMode indicates that the given Mode is not supported.
var ErrUnknownMode = errors.New("unknown notify mode")

// Config contains configuration variables for matching.
type Config struct {
	NotifyMode Mode `json:"notify_mode" yaml:"notify_mode" env:"NOTIFY_MODE"`
}

// NewConfig creates and returns a new Config instance with default settings.
func NewConfig() *Config {
	return &Config{
		NotifyMode: PerSegment,
	}
}

// Result pairs a user with the series found for them.
// Segment is the index of the matching segment, or -1 in PerDrop mode.
type Result struct {
	UserID  string
	Labels  []string
	Segment int
}

// Matcher compares drop texts with users' watch-lists.
type Matcher struct {
	mode Mode
}

// New creates a Matcher working in the given Mode.
func New(mode Mode) (*Matcher, error) {
	switch mode {
	case PerSegment, PerDrop:
		return &Matcher{mode: mode}, nil

	case "":
		return &Matcher{mode: PerSegment}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// Match returns the results for the given texts, users first and segments second.
// Absent texts are skipped. Labels keep the order of the watch-list.
func (m *Matcher) Match(texts []ocr.Text, records []*store.Record) []Result {
	var results []Result
	for _, record := range records {
		if record == nil || len(record.Series) == 0 {
			continue
		}

		switch m.mode {
		case PerDrop:
			if labels := Labels(texts, record.Series); len(labels) > 0 {
				results = append(results, Result{UserID: record.UserID, Labels: labels, Segment: -1})
			}

		default:
			for i, text := range texts {
				if !text.Valid {
					continue
				}
				if labels := Labels([]ocr.Text{text}, record.Series); len(labels) > 0 {
					results = append(results, Result{UserID: record.UserID, Labels: labels, Segment: i})
				}
			}
		}
	}
	return results
}

// Labels returns the series that occur in any of the valid texts.
// Both sides are compared lowercased with whitespace removed, so "onepiece" is found in "One Piece vol 5".
func Labels(texts []ocr.Text, series []string) []string {
	haystacks := make([]string, 0, len(texts))
	for _, text := range texts {
		if text.Valid {
			haystacks = append(haystacks, fold(text.Value))
		}
	}

	var found []string
	seen := make(map[string]struct{}, len(series))
	for _, label := range series {
		needle := fold(label)
		if needle == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}

		for _, haystack := range haystacks {
			if strings.Contains(haystack, needle) {
				found = append(found, label)
				seen[label] = struct{}{}
				break
			}
		}
	}
	return found
}

func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}
