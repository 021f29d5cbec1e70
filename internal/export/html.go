package export

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

var htmlTemplate = template.Must(
	template.New("resume.html.tmpl").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/resume.html.tmpl"),
)

type htmlData struct {
	Doc        *Document
	TemplateID string
	Accent     template.CSS
	FontFamily template.CSS
}

func renderHTML(doc *Document, tpl Template) ([]byte, error) {
	data := htmlData{
		Doc:        doc,
		TemplateID: tpl.ID,
		Accent:     template.CSS("#" + tpl.Accent.hex()),
		FontFamily: template.CSS(tpl.FontFamily),
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, &RenderError{Format: FormatHTML, Message: "failed to execute template", Cause: err}
	}
	return buf.Bytes(), nil
}
