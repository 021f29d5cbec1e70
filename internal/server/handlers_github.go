package server

import (
	"net/http"

	"github.com/jonathan/arete/internal/types"
)

// handleAnalyzeGitHub summarises a GitHub profile for a resume.
func (s *Server) handleAnalyzeGitHub(w http.ResponseWriter, r *http.Request) {
	var req types.GitHubAnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	analysis, err := s.github.Analyze(r.Context(), req.Username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}
