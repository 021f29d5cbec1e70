package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/arete/internal/ingestion"
	"github.com/jonathan/arete/internal/storage"
	"github.com/jonathan/arete/internal/types"
)

// multipartOverhead is the slack allowed on top of the file size limit for
// form boundaries and the other fields.
const multipartOverhead = 1 << 20

// handleUploadResume extracts, parses and stores an uploaded resume file.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	maxBytes := s.cfg.MaxFileSizeBytes()
	tooLarge := fmt.Sprintf("File too large. Maximum size: %dMB", s.cfg.MaxFileSizeMB)

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.errorResponse(w, http.StatusBadRequest, tooLarge)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		s.errorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() { _ = file.Close() }()

	format := ingestion.Format(header.Filename)
	if !slices.Contains(s.cfg.AllowedFileTypes, format) {
		s.errorResponse(w, http.StatusBadRequest,
			"File type not supported. Allowed: "+strings.Join(s.cfg.AllowedFileTypes, ", "))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		s.fail(w, r, fmt.Errorf("reading upload: %w", err))
		return
	}
	if int64(len(data)) > maxBytes {
		s.errorResponse(w, http.StatusBadRequest, tooLarge)
		return
	}

	doc, err := ingestion.ExtractText(header.Filename, data)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	githubURL := strings.TrimSpace(r.FormValue("github_url"))
	parsed, err := s.parser.Parse(ctx, doc.Text, githubURL)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	id := uuid.NewString()
	key := storage.ResumeKey(id, header.Filename)
	if err := s.files.Put(ctx, key, data, header.Header.Get("Content-Type")); err != nil {
		s.fail(w, r, fmt.Errorf("storing upload: %w", err))
		return
	}

	parsed.ID = id
	record := &types.Resume{
		ID:          id,
		Filename:    header.Filename,
		StoragePath: key,
		GitHubURL:   githubURL,
		ParsedData:  *parsed,
		Status:      types.ResumeStatusParsed,
	}
	if err := s.store.CreateResume(ctx, record); err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Info("resume uploaded", "id", id, "format", doc.Format, "bytes", len(data), "hash", doc.Hash)
	s.jsonResponse(w, http.StatusOK, types.ResumeUploadResponse{
		ID:      id,
		Status:  "success",
		Message: "Resume parsed successfully",
		Data:    parsed,
	})
}

// handleGetResume returns a stored resume record.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, err := s.store.GetResume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failLookup(w, r, err, "Resume not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}
