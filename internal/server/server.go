// Package server provides the HTTP REST API for Arete.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/jonathan/arete/internal/config"
	"github.com/jonathan/arete/internal/db"
	"github.com/jonathan/arete/internal/export"
	"github.com/jonathan/arete/internal/optimization"
	"github.com/jonathan/arete/internal/server/middleware"
	"github.com/jonathan/arete/internal/server/ratelimit"
	"github.com/jonathan/arete/internal/storage"
	"github.com/jonathan/arete/internal/types"
)

// APIVersion is reported by the root endpoint.
const APIVersion = "1.0.0"

// ResumeParser turns extracted resume text into structured data.
type ResumeParser interface {
	Parse(ctx context.Context, text, githubURL string) (*types.ResumeData, error)
}

// JobAnalyzer resolves and analyses job postings.
type JobAnalyzer interface {
	JobText(ctx context.Context, req *types.JobAnalysisRequest) (string, error)
	Analyze(ctx context.Context, text string) (*types.JobAnalysis, error)
}

// Optimizer streams optimization results and writes cover letters.
type Optimizer interface {
	Stream(ctx context.Context, resume *types.ResumeData, job *types.JobAnalysis, emit optimization.Emitter) error
	CoverLetter(ctx context.Context, resume *types.ResumeData, job *types.JobAnalysis) (string, error)
}

// Exporter renders resume files.
type Exporter interface {
	Export(ctx context.Context, data *types.ResumeData, format, templateID string) (*export.File, error)
}

// GitHubAnalyzer summarises a GitHub profile.
type GitHubAnalyzer interface {
	Analyze(ctx context.Context, username string) (*types.GitHubAnalysis, error)
}

// Deps are the services behind the HTTP handlers.
type Deps struct {
	Store     db.Store
	Files     storage.Store
	Parser    ResumeParser
	Jobs      JobAnalyzer
	Optimizer Optimizer
	Exporter  Exporter
	GitHub    GitHubAnalyzer

	// RateLimit overrides the RATE_LIMIT_* environment settings when set.
	RateLimit *ratelimit.Config
	Logger    *slog.Logger
}

// Server represents the HTTP server
type Server struct {
	cfg         *config.Config
	store       db.Store
	files       storage.Store
	parser      ResumeParser
	jobs        JobAnalyzer
	optimizer   Optimizer
	exporter    Exporter
	github      GitHubAnalyzer
	logger      *slog.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	handler     http.Handler
	httpServer  *http.Server
	now         func() time.Time
}

// New wires the routes and middleware. When auth is enabled every route
// except "/" and "/health" needs a bearer token.
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.Store == nil || deps.Files == nil {
		return nil, errors.New("server: store and file storage are required")
	}
	if deps.Parser == nil || deps.Jobs == nil || deps.Optimizer == nil || deps.Exporter == nil || deps.GitHub == nil {
		return nil, errors.New("server: all services are required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rlConfig := deps.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		cfg:         cfg,
		store:       deps.Store,
		files:       deps.Files,
		parser:      deps.Parser,
		jobs:        deps.Jobs,
		optimizer:   deps.Optimizer,
		exporter:    deps.Exporter,
		github:      deps.GitHub,
		logger:      logger,
		rateLimiter: ratelimit.NewLimiter(rlConfig),
		now:         time.Now,
	}

	if cfg.AuthEnabled {
		jwtConfig, err := cfg.JWT()
		if err != nil {
			s.rateLimiter.Stop()
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /resume/upload", s.handleUploadResume)
	mux.HandleFunc("GET /resume/{id}", s.handleGetResume)

	mux.HandleFunc("POST /jobs/analyze", s.handleAnalyzeJob)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)

	mux.HandleFunc("POST /optimize", s.handleOptimize)
	mux.HandleFunc("POST /optimize/save", s.handleSaveOptimization)
	mux.HandleFunc("POST /optimize/cover-letter", s.handleCoverLetter)

	mux.HandleFunc("GET /export/templates", s.handleListTemplates)
	mux.HandleFunc("POST /export/{format}", s.handleExport)

	mux.HandleFunc("POST /github/analyze", s.handleAnalyzeGitHub)

	var handler http.Handler = mux
	if s.jwtService != nil {
		handler = middleware.Auth(s.jwtService.AsTokenValidator(), "/", "/health")(handler)
	}
	s.handler = s.withRateLimit(s.withLogging(s.withCORS(handler)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // optimization streams are long-lived
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter and the store.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing store", "error", err)
	}
}

// withCORS answers preflight requests and allows the configured origins.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	return slices.Contains(s.cfg.CORSOrigins, "*") || slices.Contains(s.cfg.CORSOrigins, origin)
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per request once the handler returns.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}

// statusRecorder captures the response status. It forwards Flush so SSE
// responses still stream through the logging middleware.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// handleRoot identifies the API.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Arete API - AI Resume Optimizer",
		"version": APIVersion,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"app":    s.cfg.AppName,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status code and writes it. Server-side failures are
// logged at error level.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Info("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	s.errorResponse(w, status, errorMessage(err))
}

// failLookup reports a missing record with message and anything else
// through fail.
func (s *Server) failLookup(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, db.ErrNotFound) {
		s.errorResponse(w, http.StatusNotFound, message)
		return
	}
	s.fail(w, r, err)
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Message: "invalid request body"}
	}
	return nil
}

// clientID identifies the caller for rate limiting. RemoteAddr only;
// forwarding headers are not trusted.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		"client", clientID(r),
		"path", r.URL.Path,
		"limit", info.Limit,
		"reset", info.ResetTime.Format(time.RFC3339),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
