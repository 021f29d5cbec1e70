package jobs

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses whitespace", "Senior\n\n  Go\tEngineer", "Senior Go Engineer"},
		{"keeps basic punctuation", "Skills: Go, SQL; (AWS) [k8s] - remote.", "Skills: Go, SQL; (AWS) [k8s] - remote."},
		{"replaces symbols", "C++ & C#!", "C     C"},
		{"keeps unicode letters", "Müller GmbH", "Müller GmbH"},
		{"trims", "   hello   ", "hello"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Truncates(t *testing.T) {
	got := CleanText(strings.Repeat("a", MaxTextLength+500))
	assert.Len(t, got, MaxTextLength)

	multibyte := CleanText(strings.Repeat("é", MaxTextLength+10))
	assert.Equal(t, MaxTextLength, utf8.RuneCountInString(multibyte))
	assert.True(t, utf8.ValidString(multibyte))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "日本", Truncate("日本語", 2))
}
