// Package subtitle provides types and utilities for handling subtitles.
package subtitle

import (
	"fmt"
	"strings"
	"time"
)

// Subtitle represents a single subtitle entry with timing and text.
type Subtitle struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// IsEmpty returns true if the subtitle has no text.
func (s Subtitle) IsEmpty() bool {
	return strings.TrimSpace(s.Text) == ""
}

// List is a slice of subtitles with utility methods.
type List []Subtitle

// Texts returns all subtitle texts as a slice, in list order.
func (l List) Texts() []string {
	texts := make([]string, len(l))
	for i, sub := range l {
		texts[i] = sub.Text
	}
	return texts
}

// WithTexts returns a new list where entry i carries texts[i] and keeps its
// index and timing. The receiver is not modified.
func (l List) WithTexts(texts []string) (List, error) {
	if len(texts) != len(l) {
		return nil, fmt.Errorf("got %d texts for %d subtitles", len(texts), len(l))
	}
	result := make(List, len(l))
	for i, sub := range l {
		result[i] = Subtitle{
			Index:     sub.Index,
			StartTime: sub.StartTime,
			EndTime:   sub.EndTime,
			Text:      texts[i],
		}
	}
	return result, nil
}

// TotalDuration returns the end time of the last subtitle.
func (l List) TotalDuration() time.Duration {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].EndTime
}
