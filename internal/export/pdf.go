package export

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Layout in millimetres on US Letter.
const (
	pdfMargin     = 15.0
	pdfTopMargin  = 12.7
	pdfLineHeight = 5.0
	pdfFont       = "Helvetica"
)

type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	tpl Template
}

func renderPDF(doc *Document, tpl Template) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfTopMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfTopMargin)
	pdf.SetTitle(doc.Name+" - Resume", true)
	pdf.SetCreator("Arete", true)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), tpl: tpl}
	w.header(doc)

	if len(doc.Experience) > 0 {
		w.heading("Experience")
		for _, exp := range doc.Experience {
			w.text("B", 11, joinNonEmpty(" - ", exp.Title, exp.Company))
			if exp.Duration != "" {
				w.text("I", 10, exp.Duration)
			}
			for _, bullet := range exp.Description {
				w.text("", 10, "• "+bullet)
			}
			pdf.Ln(2)
		}
	}

	if len(doc.Skills) > 0 {
		w.heading("Skills")
		for _, line := range doc.Skills {
			w.text("", 10, line.String())
		}
	}

	if len(doc.Projects) > 0 {
		w.heading("Projects")
		for _, proj := range doc.Projects {
			w.text("B", 11, proj.Name)
			if proj.Description != "" {
				w.text("", 10, proj.Description)
			}
			if len(proj.Technologies) > 0 {
				w.text("", 10, "Technologies: "+strings.Join(proj.Technologies, ", "))
			}
			pdf.Ln(2)
		}
	}

	if len(doc.Education) > 0 {
		w.heading("Education")
		for _, edu := range doc.Education {
			w.text("B", 11, edu.Heading)
			if edu.GPA != "" {
				w.text("", 10, edu.GPA)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, &RenderError{Format: FormatPDF, Message: "failed to lay out document", Cause: err}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Format: FormatPDF, Message: "failed to write document", Cause: err}
	}
	return buf.Bytes(), nil
}

func (w *pdfWriter) header(doc *Document) {
	w.setAccent()
	w.pdf.SetFont(pdfFont, "B", 18)
	w.pdf.CellFormat(0, 9, w.tr(doc.Name), "", 1, "C", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
	if doc.Contact != "" {
		w.pdf.SetFont(pdfFont, "", 10)
		w.pdf.CellFormat(0, pdfLineHeight, w.tr(doc.Contact), "", 1, "C", false, 0, "")
	}
	w.pdf.Ln(3)
}

// heading writes an upper-case section title with a rule underneath.
func (w *pdfWriter) heading(title string) {
	w.pdf.Ln(2)
	w.setAccent()
	w.pdf.SetFont(pdfFont, "B", 13)
	w.pdf.CellFormat(0, 7, w.tr(strings.ToUpper(title)), "", 1, "L", false, 0, "")

	pageWidth, _ := w.pdf.GetPageSize()
	y := w.pdf.GetY()
	w.pdf.SetDrawColor(w.tpl.Accent.R, w.tpl.Accent.G, w.tpl.Accent.B)
	w.pdf.SetLineWidth(0.3)
	w.pdf.Line(pdfMargin, y, pageWidth-pdfMargin, y)
	w.pdf.Ln(2)
	w.pdf.SetTextColor(0, 0, 0)
}

func (w *pdfWriter) text(style string, size float64, s string) {
	w.pdf.SetFont(pdfFont, style, size)
	w.pdf.MultiCell(0, pdfLineHeight, w.tr(s), "", "L", false)
}

func (w *pdfWriter) setAccent() {
	w.pdf.SetTextColor(w.tpl.Accent.R, w.tpl.Accent.G, w.tpl.Accent.B)
}
