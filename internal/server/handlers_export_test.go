package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/jonathan/arete/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleExport_HTML(t *testing.T) {
	env := newTestEnv(t)
	env.seedResume(t, "r1")

	w := env.postJSON(t, "/export/html", types.ExportRequest{ResumeID: "r1"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Jane_Doe_resume.html", w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Jane Doe")
	assert.Contains(t, w.Body.String(), `<span class="skill-category">Languages:</span> Go, Python`)
}

func TestHandleExport_UsesOptimizedData(t *testing.T) {
	env := newTestEnv(t)
	resume := env.seedResume(t, "r1")

	optimized := resume.ParsedData
	optimized.PersonalInfo.Name = "Jane Q Doe"
	require.NoError(t, env.store.SaveOptimizedResume(context.Background(), "r1", &optimized))

	w := env.postJSON(t, "/export/docx", types.ExportRequest{ResumeID: "r1", Template: "modern"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Jane_Q_Doe_resume.docx", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", w.Body.String()[:2], "docx is a zip archive")
}

func TestHandleExport_PDF(t *testing.T) {
	env := newTestEnv(t)
	env.seedResume(t, "r1")

	w := env.postJSON(t, "/export/pdf", types.ExportRequest{ResumeID: "r1", Template: "classic"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}

func TestHandleExport_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     any
		status   int
		expected string
	}{
		{"unsupported format", "/export/rtf", types.ExportRequest{ResumeID: "r1"}, http.StatusBadRequest, "Unsupported format: rtf"},
		{"missing resume id", "/export/pdf", map[string]string{}, http.StatusBadRequest, "validation error: ResumeID - required"},
		{"unknown template", "/export/html", types.ExportRequest{ResumeID: "r1", Template: "fancy"}, http.StatusBadRequest, `unknown template: "fancy"`},
		{"missing resume", "/export/pdf", types.ExportRequest{ResumeID: "nope"}, http.StatusNotFound, "Resume nope not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.seedResume(t, "r1")

			w := env.postJSON(t, tt.path, tt.body)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.expected, decodeBody[map[string]string](t, w)["error"])
		})
	}
}

func TestHandleListTemplates(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/export/templates")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[map[string][]types.TemplateInfo](t, w)
	require.Len(t, body["templates"], 2)
	assert.Equal(t, "classic", body["templates"][0].ID)
	assert.Equal(t, "ATS Classic", body["templates"][0].Name)
	assert.Equal(t, "modern", body["templates"][1].ID)
	assert.Equal(t, "Modern Professional", body["templates"][1].Name)
}
