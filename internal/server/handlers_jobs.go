package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/arete/internal/jobs"
	"github.com/jonathan/arete/internal/types"
)

// handleAnalyzeJob analyses pasted or scraped posting text and stores it.
func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.JobAnalysisRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	text, err := s.jobs.JobText(ctx, &req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	analysis, err := s.jobs.Analyze(ctx, text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	analysis.ID = uuid.NewString()

	job := &types.Job{
		ID:       analysis.ID,
		Title:    analysis.Title,
		Company:  analysis.Company,
		JobText:  jobs.Truncate(text, jobs.StoredTextLength),
		JobURL:   req.JobURL,
		Analysis: *analysis,
	}
	if err := s.store.CreateJob(ctx, job); err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Info("job analyzed", "id", job.ID, "title", job.Title, "company", job.Company)
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleGetJob returns a stored job analysis.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failLookup(w, r, err, "Job analysis not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job.Analysis)
}
