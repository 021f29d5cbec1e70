package server

import (
	"context"
	"net/http"

	"github.com/jonathan/arete/internal/types"
	"golang.org/x/sync/errgroup"
)

// loadPair fetches a resume and a job concurrently. A missing resume is
// reported before a missing job.
func (s *Server) loadPair(ctx context.Context, w http.ResponseWriter, r *http.Request, resumeID, jobID string) (*types.Resume, *types.Job, bool) {
	var (
		g                 errgroup.Group
		resume            *types.Resume
		job               *types.Job
		resumeErr, jobErr error
	)
	g.Go(func() error {
		resume, resumeErr = s.store.GetResume(ctx, resumeID)
		return resumeErr
	})
	g.Go(func() error {
		job, jobErr = s.store.GetJob(ctx, jobID)
		return jobErr
	})
	if err := g.Wait(); err == nil {
		return resume, job, true
	}

	switch {
	case resumeErr != nil:
		s.failLookup(w, r, resumeErr, "Resume not found")
	default:
		s.failLookup(w, r, jobErr, "Job analysis not found")
	}
	return nil, nil, false
}

// handleOptimize streams optimization progress as server-sent events,
// ending with a [DONE] frame.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.OptimizationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	resume, job, ok := s.loadPair(ctx, w, r, req.ResumeID, req.JobID)
	if !ok {
		return
	}

	stream, err := openEventStream(w)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	err = s.optimizer.Stream(ctx, &resume.ParsedData, &job.Analysis, func(p types.OptimizationProgress) error {
		return stream.Send(p)
	})
	if err != nil {
		s.logger.Warn("optimization stream ended early", "resume_id", req.ResumeID, "job_id", req.JobID, "error", err)
		if ctx.Err() != nil {
			return
		}
	}
	if err := stream.Done(); err != nil {
		s.logger.Warn("writing stream terminator", "error", err)
	}
}

// handleSaveOptimization stores edited resume data as the optimized version.
func (s *Server) handleSaveOptimization(w http.ResponseWriter, r *http.Request) {
	var req types.SaveOptimizationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	req.OptimizedData.ID = req.ResumeID
	if err := s.store.SaveOptimizedResume(r.Context(), req.ResumeID, &req.OptimizedData); err != nil {
		s.failLookup(w, r, err, "Resume not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Optimization saved",
	})
}

// handleCoverLetter writes a cover letter for a stored resume and job.
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.CoverLetterRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	resume, job, ok := s.loadPair(ctx, w, r, req.ResumeID, req.JobID)
	if !ok {
		return
	}

	letter, err := s.optimizer.CoverLetter(ctx, &resume.ParsedData, &job.Analysis)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.CoverLetterResponse{
		CoverLetter: letter,
		GeneratedAt: s.now().UTC(),
	})
}
