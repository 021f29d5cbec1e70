// Package export renders resumes as PDF, DOCX or HTML files.
package export

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/arete/internal/skills"
	"github.com/jonathan/arete/internal/types"
)

// Export formats.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatHTML = "html"
)

var contentTypes = map[string]string{
	FormatPDF:  "application/pdf",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatHTML: "text/html; charset=utf-8",
}

// File is a rendered export.
type File struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Exporter renders resumes, categorizing skills on the way.
type Exporter struct {
	categorizer *skills.Categorizer
}

// NewExporter creates an Exporter.
func NewExporter(categorizer *skills.Categorizer) *Exporter {
	return &Exporter{categorizer: categorizer}
}

// ValidateFormat reports whether format can be exported.
func ValidateFormat(format string) error {
	if _, ok := contentTypes[format]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return nil
}

// Export renders data in format using the named template.
func (e *Exporter) Export(ctx context.Context, data *types.ResumeData, format, templateID string) (*File, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	tpl, err := LookupTemplate(templateID)
	if err != nil {
		return nil, err
	}

	doc, err := NewDocument(ctx, data, e.categorizer)
	if err != nil {
		return nil, err
	}

	var content []byte
	switch format {
	case FormatPDF:
		content, err = renderPDF(doc, tpl)
	case FormatDOCX:
		content, err = renderDOCX(doc, tpl)
	case FormatHTML:
		content, err = renderHTML(doc, tpl)
	}
	if err != nil {
		return nil, err
	}

	return &File{
		Content:     content,
		ContentType: contentTypes[format],
		Filename:    Filename(doc.Name, format),
	}, nil
}

var unsafeFilename = regexp.MustCompile(`[^\p{L}\p{N}_.-]`)

// Filename builds "{Name_With_Underscores}_resume.{ext}". Characters that
// would break a Content-Disposition header are dropped.
func Filename(name, ext string) string {
	base := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	base = unsafeFilename.ReplaceAllString(base, "")
	if base == "" {
		return "resume." + ext
	}
	return base + "_resume." + ext
}
