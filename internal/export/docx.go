package export

import (
	"bytes"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/stypes"
)

// Style IDs from the godocx default template.
const (
	styleTitle      = "Title"
	styleHeading    = "Heading1"
	styleListIndent = "ListParagraph"
)

// docxWriter appends resume sections to a godocx document.
type docxWriter struct {
	doc    *docx.RootDoc
	accent string
}

func renderDOCX(doc *Document, tpl Template) ([]byte, error) {
	root, err := godocx.NewDocument()
	if err != nil {
		return nil, &RenderError{Format: FormatDOCX, Message: "failed to create document", Cause: err}
	}
	w := &docxWriter{doc: root, accent: tpl.Accent.hex()}

	title := root.AddEmptyParagraph()
	title.Style(styleTitle)
	title.Justification(stypes.JustificationCenter)
	title.AddText(doc.Name).Color(w.accent)
	if doc.Contact != "" {
		root.AddParagraph(doc.Contact).Justification(stypes.JustificationCenter)
	}

	if len(doc.Experience) > 0 {
		w.heading("Experience")
		for _, exp := range doc.Experience {
			w.line(joinNonEmpty(" - ", exp.Title, exp.Company)).Bold(true)
			if exp.Duration != "" {
				w.line(exp.Duration).Italic(true)
			}
			for _, bullet := range exp.Description {
				p := root.AddParagraph("• " + bullet)
				p.Style(styleListIndent)
			}
		}
	}

	if len(doc.Skills) > 0 {
		w.heading("Skills")
		for _, line := range doc.Skills {
			p := root.AddEmptyParagraph()
			p.AddText(line.Category + ": ").Bold(true)
			p.AddText(line.Joined())
		}
	}

	if len(doc.Projects) > 0 {
		w.heading("Projects")
		for _, proj := range doc.Projects {
			w.line(proj.Name).Bold(true)
			if proj.Description != "" {
				w.line(proj.Description)
			}
			if len(proj.Technologies) > 0 {
				w.line("Technologies: " + strings.Join(proj.Technologies, ", "))
			}
		}
	}

	if len(doc.Education) > 0 {
		w.heading("Education")
		for _, edu := range doc.Education {
			w.line(edu.Heading).Bold(true)
			if edu.GPA != "" {
				w.line(edu.GPA)
			}
		}
	}

	var buf bytes.Buffer
	if err := root.Write(&buf); err != nil {
		return nil, &RenderError{Format: FormatDOCX, Message: "failed to write document", Cause: err}
	}
	return buf.Bytes(), nil
}

func (w *docxWriter) heading(title string) {
	p := w.doc.AddEmptyParagraph()
	p.Style(styleHeading)
	p.AddText(title).Color(w.accent)
}

// line adds a single-run paragraph and returns the run for formatting.
func (w *docxWriter) line(text string) *docx.Run {
	return w.doc.AddEmptyParagraph().AddText(text)
}
