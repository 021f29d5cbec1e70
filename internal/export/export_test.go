package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jonathan/arete/internal/ingestion"
	"github.com/jonathan/arete/internal/llm/llmtest"
	"github.com/jonathan/arete/internal/skills"
	"github.com/jonathan/arete/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "555-0100",
			Location: "Austin, TX",
		},
		Experience: []types.Experience{{
			Title:       "Backend Engineer",
			Company:     "Acme",
			Duration:    "2020 - Present",
			Description: []string{"Built APIs", "Cut latency by 40%"},
		}},
		Skills: types.Skills{
			Technical:  []string{"Python", "Go"},
			Frameworks: []string{"React", "Django"},
			Tools:      []string{"Git", "Docker"},
			Languages:  []string{"go"},
			SoftSkills: []string{"Mentoring"},
		},
		Projects: []types.Project{{
			Name:         "arete",
			Description:  "Resume optimizer",
			Technologies: []string{"Go", "SQLite"},
		}},
		Education: []types.Education{{
			Degree:         "BSc Computer Science",
			Institution:    "State University",
			GraduationYear: "2019",
			GPA:            "3.8",
		}},
	}
}

func newExporter() *Exporter {
	return NewExporter(skills.NewCategorizer(nil, nil))
}

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument(context.Background(), sampleResume(), skills.NewCategorizer(nil, nil))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", doc.Name)
	assert.Equal(t, "jane@example.com | 555-0100 | Austin, TX", doc.Contact)

	lines := make([]string, len(doc.Skills))
	for i, l := range doc.Skills {
		lines[i] = l.String()
	}
	assert.Equal(t, []string{
		"Languages: Go, Python",
		"Frontend: React",
		"Backend: Django",
		"Cloud & DevOps: Docker",
		"Tools: Git",
	}, lines)

	require.Len(t, doc.Education, 1)
	assert.Equal(t, "BSc Computer Science - State University (2019)", doc.Education[0].Heading)
	assert.Equal(t, "GPA: 3.8", doc.Education[0].GPA)
}

func TestNewDocument_UsesClassifierForUnknownSkills(t *testing.T) {
	client := llmtest.New(`{"Tools": ["Bruno"]}`)
	categorizer := skills.NewCategorizer(skills.NewLLMClassifier(client), nil)

	data := &types.ResumeData{
		PersonalInfo: types.PersonalInfo{Name: "Jane"},
		Skills:       types.Skills{Tools: []string{"Bruno", "Jira"}},
	}
	doc, err := NewDocument(context.Background(), data, categorizer)
	require.NoError(t, err)

	require.Len(t, doc.Skills, 1)
	assert.Equal(t, "Tools: Bruno, Jira", doc.Skills[0].String())
	assert.Len(t, client.Calls(), 1)
}

func TestNewDocument_SparseFields(t *testing.T) {
	data := &types.ResumeData{
		PersonalInfo: types.PersonalInfo{Name: " Solo ", Phone: "555"},
		Education: []types.Education{
			{Institution: "Night School"},
			{GPA: "4.0"},
		},
	}
	doc, err := NewDocument(context.Background(), data, skills.NewCategorizer(nil, nil))
	require.NoError(t, err)

	assert.Equal(t, "Solo", doc.Name)
	assert.Equal(t, "555", doc.Contact)
	assert.Empty(t, doc.Skills)
	require.Len(t, doc.Education, 1)
	assert.Equal(t, "Night School", doc.Education[0].Heading)
	assert.Empty(t, doc.Education[0].GPA)
}

func TestExport_DOCXRoundTrip(t *testing.T) {
	file, err := newExporter().Export(context.Background(), sampleResume(), FormatDOCX, "")
	require.NoError(t, err)

	assert.Equal(t, "Jane_Doe_resume.docx", file.Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", file.ContentType)

	extracted, err := ingestion.ExtractText(file.Filename, file.Content)
	require.NoError(t, err)

	want := strings.Join([]string{
		"Jane Doe",
		"jane@example.com | 555-0100 | Austin, TX",
		"## Experience",
		"Backend Engineer - Acme",
		"2020 - Present",
		"• Built APIs",
		"• Cut latency by 40%",
		"## Skills",
		"Languages: Go, Python",
		"Frontend: React",
		"Backend: Django",
		"Cloud & DevOps: Docker",
		"Tools: Git",
		"## Projects",
		"arete",
		"Resume optimizer",
		"Technologies: Go, SQLite",
		"## Education",
		"BSc Computer Science - State University (2019)",
		"GPA: 3.8",
	}, "\n")
	assert.Equal(t, want, extracted.Text)
}

func TestExport_DOCXModernAccent(t *testing.T) {
	file, err := newExporter().Export(context.Background(), sampleResume(), FormatDOCX, TemplateModern)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("PK")))

	doc, err := renderDOCXDocument(t, file.Content)
	require.NoError(t, err)
	assert.Contains(t, doc, `<w:color w:val="2563EB">`)
	assert.Contains(t, doc, `<w:pStyle w:val="Heading1">`)
}

func TestExport_PDFRoundTrip(t *testing.T) {
	file, err := newExporter().Export(context.Background(), sampleResume(), FormatPDF, TemplateClassic)
	require.NoError(t, err)

	assert.Equal(t, "Jane_Doe_resume.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF-")))

	extracted, err := ingestion.ExtractText(file.Filename, file.Content)
	require.NoError(t, err)

	for _, want := range []string{
		"Jane Doe",
		"## EXPERIENCE",
		"Backend Engineer - Acme",
		"## SKILLS",
		"Languages: Go, Python",
		"Technologies: Go, SQLite",
		"## EDUCATION",
		"GPA: 3.8",
	} {
		assert.Contains(t, extracted.Text, want)
	}
}

func TestExport_HTML(t *testing.T) {
	data := sampleResume()
	data.PersonalInfo.Name = "Jane <b>Doe</b>"

	file, err := newExporter().Export(context.Background(), data, FormatHTML, TemplateModern)
	require.NoError(t, err)

	html := string(file.Content)
	assert.Equal(t, "text/html; charset=utf-8", file.ContentType)
	assert.Equal(t, "Jane_bDoeb_resume.html", file.Filename)
	assert.Contains(t, html, "<h1>Jane &lt;b&gt;Doe&lt;/b&gt;</h1>")
	assert.Contains(t, html, `<span class="skill-category">Cloud &amp; DevOps:</span> Docker`)
	assert.Contains(t, html, "<h3>Backend Engineer - Acme</h3>")
	assert.Contains(t, html, "<li>Cut latency by 40%</li>")
	assert.Contains(t, html, "<strong>Technologies:</strong> Go, SQLite")
	assert.Contains(t, html, "<h3>BSc Computer Science - State University (2019)</h3>")
	assert.Contains(t, html, "#2563EB")
	assert.Contains(t, html, `class="template-modern"`)
}

func TestExport_Errors(t *testing.T) {
	exporter := newExporter()

	_, err := exporter.Export(context.Background(), sampleResume(), "rtf", "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = exporter.Export(context.Background(), sampleResume(), FormatPDF, "fancy")
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = exporter.Export(ctx, sampleResume(), FormatHTML, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name, ext, want string
	}{
		{"Jane Doe", "pdf", "Jane_Doe_resume.pdf"},
		{"  Mary Ann Smith ", "docx", "Mary_Ann_Smith_resume.docx"},
		{`Ann "Q" O'Neil/x`, "html", "Ann_Q_ONeilx_resume.html"},
		{"José Núñez", "pdf", "José_Núñez_resume.pdf"},
		{"", "docx", "resume.docx"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.name, tt.ext))
		})
	}
}

func TestTemplates(t *testing.T) {
	list := Templates()
	require.Len(t, list, 2)
	assert.Equal(t, "classic", list[0].ID)
	assert.Equal(t, "ATS Classic", list[0].Name)
	assert.Equal(t, "modern", list[1].ID)
	assert.Equal(t, "Modern Professional", list[1].Name)
	assert.Nil(t, list[0].PreviewImage)

	tpl, err := LookupTemplate("")
	require.NoError(t, err)
	assert.Equal(t, TemplateClassic, tpl.ID)

	tpl, err = LookupTemplate(" Modern ")
	require.NoError(t, err)
	assert.Equal(t, TemplateModern, tpl.ID)
}
