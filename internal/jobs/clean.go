package jobs

import (
	"regexp"
	"strings"
)

// MaxTextLength caps the job text sent to the model.
const MaxTextLength = 8000

// StoredTextLength is how much of the original posting is persisted.
const StoredTextLength = 1000

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:\-()\[\]]`)
)

// CleanText collapses whitespace, replaces everything but word characters and
// basic punctuation with spaces, and truncates to MaxTextLength characters.
func CleanText(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = disallowed.ReplaceAllString(text, " ")
	return strings.TrimSpace(Truncate(text, MaxTextLength))
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
