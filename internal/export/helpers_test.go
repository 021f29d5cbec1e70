package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

// renderDOCXDocument returns word/document.xml from a DOCX archive.
func renderDOCXDocument(t *testing.T, data []byte) (string, error) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	f, err := zr.Open("word/document.xml")
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	body, err := io.ReadAll(f)
	return string(body), err
}
