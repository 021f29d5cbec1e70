// Package ingestion extracts markdown-flavoured text from uploaded resume
// files. Headings are marked with "## " so the parser prompt sees structure.
package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Supported file formats.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatTXT  = "txt"
)

// ErrUnsupportedFormat is returned for file extensions with no extractor.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Document is the extracted text of one uploaded file.
type Document struct {
	Filename string
	Format   string
	Text     string
	// Hash is the SHA256 hex digest of the original bytes.
	Hash string
}

// Format returns the lower-cased extension of filename without the dot.
func Format(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// ExtractText converts a resume file into text, choosing the extractor by
// file extension.
func ExtractText(filename string, data []byte) (*Document, error) {
	format := Format(filename)

	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatTXT:
		text, err = extractTXT(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", filename, err)
	}

	return &Document{
		Filename: filename,
		Format:   format,
		Text:     text,
		Hash:     computeHash(data),
	}, nil
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// isHeading reports whether a PDF line looks like a section title: shorter
// than 50 characters with at least one letter and no lower-case letters.
func isHeading(line string) bool {
	if utf8.RuneCountInString(line) >= 50 {
		return false
	}
	hasUpper := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}
