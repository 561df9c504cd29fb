package match

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sofiwisher/sofiwisher/internal/ocr"
	"github.com/sofiwisher/sofiwisher/internal/store"
)

func TestNew(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected Mode
		err      error
	}{
		{mode: PerSegment, expected: PerSegment},
		{mode: PerDrop, expected: PerDrop},
		{mode: "", expected: PerSegment},
		{mode: "per_user", err: ErrUnknownMode},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			m, err := New(tt.mode)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("Expected %v, got %v", tt.err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %+v", err)
			}
			if m.mode != tt.expected {
				t.Errorf("Expected mode %q, got %q", tt.expected, m.mode)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name     string
		texts    []ocr.Text
		series   []string
		expected []string
	}{
		{
			name:     "case-insensitive substring",
			texts:    []ocr.Text{ocr.Present("NARUTO is great")},
			series:   []string{"naruto", "bleach"},
			expected: []string{"naruto"},
		},
		{
			name:     "whitespace is ignored",
			texts:    []ocr.Text{ocr.Present("one piece vol 5")},
			series:   []string{"onepiece"},
			expected: []string{"onepiece"},
		},
		{
			name:     "watch-list order is kept",
			texts:    []ocr.Text{ocr.Present("Bleach x Naruto")},
			series:   []string{"naruto", "bleach"},
			expected: []string{"naruto", "bleach"},
		},
		{
			name:     "absent texts contribute nothing",
			texts:    []ocr.Text{ocr.Absent(), {Value: "naruto", Valid: false}},
			series:   []string{"naruto"},
			expected: nil,
		},
		{
			name:     "empty label never matches",
			texts:    []ocr.Text{ocr.Present("naruto")},
			series:   []string{" ", "naruto"},
			expected: []string{"naruto"},
		},
		{
			name:     "label found in several texts is listed once",
			texts:    []ocr.Text{ocr.Present("naruto"), ocr.Present("naruto shippuden")},
			series:   []string{"naruto"},
			expected: []string{"naruto"},
		},
		{
			name:     "no match",
			texts:    []ocr.Text{ocr.Present("Dragon Ball")},
			series:   []string{"naruto"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Labels(tt.texts, tt.series)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMatcher_Match(t *testing.T) {
	records := []*store.Record{
		{UserID: "user-a", Series: []string{"onepiece", "naruto"}},
		{UserID: "user-b", Series: []string{"bleach"}},
		{UserID: "user-c", Series: nil},
		nil,
	}

	t.Run("per segment", func(t *testing.T) {
		m, _ := New(PerSegment)
		texts := []ocr.Text{
			ocr.Present("one piece vol 5"),
			ocr.Absent(),
			ocr.Present("Naruto x One Piece"),
		}

		expected := []Result{
			{UserID: "user-a", Labels: []string{"onepiece"}, Segment: 0},
			{UserID: "user-a", Labels: []string{"onepiece", "naruto"}, Segment: 2},
		}

		got := m.Match(texts, records)
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("Expected %+v, got %+v", expected, got)
		}
	})

	t.Run("absent segment is skipped and siblings are evaluated", func(t *testing.T) {
		m, _ := New(PerSegment)
		texts := []ocr.Text{
			ocr.Present("BLEACH"),
			ocr.Absent(),
			ocr.Present("bleach"),
		}

		got := m.Match(texts, records)
		if len(got) != 2 || got[0].Segment != 0 || got[1].Segment != 2 {
			t.Errorf("Expected matches at segments 0 and 2, got %+v", got)
		}
	})

	t.Run("per drop", func(t *testing.T) {
		m, _ := New(PerDrop)
		texts := []ocr.Text{
			ocr.Present("Naruto"),
			ocr.Present("Bleach"),
			ocr.Present("one piece"),
		}

		expected := []Result{
			{UserID: "user-a", Labels: []string{"onepiece", "naruto"}, Segment: -1},
			{UserID: "user-b", Labels: []string{"bleach"}, Segment: -1},
		}

		got := m.Match(texts, records)
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("Expected %+v, got %+v", expected, got)
		}
	})

	t.Run("nothing matches", func(t *testing.T) {
		m, _ := New(PerSegment)

		if got := m.Match([]ocr.Text{ocr.Present("Dragon Ball")}, records); len(got) != 0 {
			t.Errorf("Expected no results, got %+v", got)
		}
	})
}
