package ingestion

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// extractDOCX returns one line per non-empty paragraph of the main document.
// Paragraphs styled Heading* become "## " headings.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	paragraphs, err := parseParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		text := strings.TrimSpace(p.text)
		if text == "" {
			continue
		}
		if strings.HasPrefix(p.style, "Heading") {
			text = "## " + text
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n"), nil
}

type paragraph struct {
	style string
	text  string
}

// parseParagraphs walks WordprocessingML and collects the text runs of each
// w:p element together with its paragraph style.
func parseParagraphs(documentXML string) ([]paragraph, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		paragraphs []paragraph
		current    *paragraph
		text       strings.Builder
		inText     bool
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return paragraphs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				current = &paragraph{}
				text.Reset()
			case "pStyle":
				if current != nil {
					current.style = attr(t, "val")
				}
			case "t":
				inText = true
			case "tab":
				text.WriteByte('\t')
			case "br":
				text.WriteByte(' ')
			}
		case xml.CharData:
			if inText && current != nil {
				text.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if current != nil {
					current.text = text.String()
					paragraphs = append(paragraphs, *current)
					current = nil
				}
			}
		}
	}
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
