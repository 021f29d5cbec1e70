package skills

import "strings"

// Normalize returns the canonical display name for a raw skill string.
// Known aliases are rewritten to a fixed spelling; anything else is returned
// trimmed with its original casing.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := aliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// key is the case-insensitive identity used for deduplication.
func key(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
