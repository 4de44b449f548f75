package service

import (
	"strings"
	"unicode"
)

// ContentAnalyzer derives metadata from document content
type ContentAnalyzer struct{}

// NewContentAnalyzer creates a new content analyzer
func NewContentAnalyzer() *ContentAnalyzer {
	return &ContentAnalyzer{}
}

// CountWords counts whitespace-separated words in plain-text content.
// Styling lives in the formatting overlay, so no markup stripping is
// needed here.
func (a *ContentAnalyzer) CountWords(content string) int {
	words := strings.FieldsFunc(content, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return len(words)
}
