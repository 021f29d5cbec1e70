package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/arete/internal/export"
	"github.com/jonathan/arete/internal/types"
)

// handleExport renders a stored resume as pdf, docx or html. The optimized
// version is used when one was saved.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	if err := export.ValidateFormat(format); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unsupported format: %s", format))
		return
	}

	var req types.ExportRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	resume, err := s.store.GetResume(r.Context(), req.ResumeID)
	if err != nil {
		s.failLookup(w, r, err, fmt.Sprintf("Resume %s not found", req.ResumeID))
		return
	}
	data := resume.Current()

	file, err := s.exporter.Export(r.Context(), &data, format, req.Template)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+file.Filename)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		s.logger.Warn("writing export", "error", err)
	}
}

// handleListTemplates lists the export templates.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]types.TemplateInfo{
		"templates": export.Templates(),
	})
}
