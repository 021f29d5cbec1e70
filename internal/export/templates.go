package export

import (
	"fmt"
	"strings"

	"github.com/jonathan/arete/internal/types"
)

// Template ids.
const (
	TemplateClassic = "classic"
	TemplateModern  = "modern"
)

// rgb is a colour for headings and rules.
type rgb struct{ R, G, B int }

func (c rgb) hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Template is a visual style shared by every output format.
type Template struct {
	ID          string
	Name        string
	Description string
	Accent      rgb
	// FontFamily is used by HTML output; PDF and DOCX use their built-in fonts.
	FontFamily string
}

var templates = []Template{
	{
		ID:          TemplateClassic,
		Name:        "ATS Classic",
		Description: "Single column, maximum ATS compatibility",
		Accent:      rgb{0, 0, 0},
		FontFamily:  "Arial, sans-serif",
	},
	{
		ID:          TemplateModern,
		Name:        "Modern Professional",
		Description: "Clean design with accent colors and improved typography",
		Accent:      rgb{37, 99, 235},
		FontFamily:  "'Helvetica Neue', Helvetica, Arial, sans-serif",
	},
}

// Templates lists the available export templates.
func Templates() []types.TemplateInfo {
	out := make([]types.TemplateInfo, len(templates))
	for i, t := range templates {
		out[i] = types.TemplateInfo{ID: t.ID, Name: t.Name, Description: t.Description}
	}
	return out
}

// LookupTemplate returns the template with id. An empty id selects classic.
func LookupTemplate(id string) (Template, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		id = TemplateClassic
	}
	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
}
