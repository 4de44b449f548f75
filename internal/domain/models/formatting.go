package models

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// StyleRange carries character-level attributes (bold, italic, links, ...)
// over the half-open span [Start, End) of the document content, measured
// in code points. Ranges may overlap; consumers merge attribute sets, so
// no last-applied-wins ordering is assumed.
type StyleRange struct {
	Start      int                    `json:"start_offset"`
	End        int                    `json:"end_offset"`
	Attributes map[string]interface{} `json:"attributes"`
}

// Formatting is the rich-text overlay stored alongside plain content:
// character ranges plus a paragraph-index map (alignment, line height, ...).
// It is persisted as a single JSONB payload, independent of content, and
// stays compact when no styling is present.
type Formatting struct {
	Ranges     []StyleRange                      `json:"ranges"`
	Paragraphs map[string]map[string]interface{} `json:"paragraphs"`
}

// EmptyFormatting returns the default formatting payload: no ranges, no
// paragraph attributes.
func EmptyFormatting() Formatting {
	return Formatting{
		Ranges:     []StyleRange{},
		Paragraphs: map[string]map[string]interface{}{},
	}
}

// IsEmpty reports whether the payload carries no styling at all.
func (f Formatting) IsEmpty() bool {
	return len(f.Ranges) == 0 && len(f.Paragraphs) == 0
}

// ParagraphCount returns the number of paragraphs in content, counting
// newline boundaries. Empty content is a single empty paragraph.
func ParagraphCount(content string) int {
	return strings.Count(content, "\n") + 1
}

// ValidateFor checks the formatting payload against the content it
// overlays: every range must satisfy 0 <= start <= end <= len(content)
// in code points, and every paragraph key must be a decimal index within
// [0, ParagraphCount(content)).
func (f Formatting) ValidateFor(content string) error {
	length := utf8.RuneCountInString(content)

	for i, r := range f.Ranges {
		if r.Start < 0 {
			return fmt.Errorf("range %d: start_offset %d is negative", i, r.Start)
		}
		if r.End < r.Start {
			return fmt.Errorf("range %d: end_offset %d precedes start_offset %d", i, r.End, r.Start)
		}
		if r.End > length {
			return fmt.Errorf("range %d: end_offset %d exceeds content length %d", i, r.End, length)
		}
	}

	paragraphs := ParagraphCount(content)
	for key := range f.Paragraphs {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("paragraph key %q is not an index", key)
		}
		if idx < 0 || idx >= paragraphs {
			return fmt.Errorf("paragraph index %d out of range [0, %d)", idx, paragraphs)
		}
	}

	return nil
}
