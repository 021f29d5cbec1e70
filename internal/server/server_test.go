package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonathan/arete/internal/config"
	"github.com/jonathan/arete/internal/db"
	"github.com/jonathan/arete/internal/export"
	"github.com/jonathan/arete/internal/jobs"
	"github.com/jonathan/arete/internal/llm/llmtest"
	"github.com/jonathan/arete/internal/optimization"
	"github.com/jonathan/arete/internal/parsing"
	"github.com/jonathan/arete/internal/server/ratelimit"
	"github.com/jonathan/arete/internal/skills"
	"github.com/jonathan/arete/internal/storage"
	"github.com/jonathan/arete/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeJSON = `{
  "personal_info": {"name": "Jane Doe", "email": "jane@example.com", "phone": "555-0100", "location": "Berlin", "github": null, "linkedin": null},
  "experience": [{"title": "Backend Engineer", "company": "Acme", "duration": "2020 - Present", "description": ["Built APIs"], "technologies": ["Go"]}],
  "skills": {"technical": ["Go", "Python"], "frameworks": ["React"], "tools": ["Docker"], "languages": []},
  "projects": [],
  "education": [{"degree": "BSc", "institution": "State University", "graduation_year": 2019, "gpa": null}]
}`

const jobJSON = `{
  "title": "Platform Engineer",
  "company": "Globex",
  "required_skills": ["Go", "Kubernetes"],
  "preferred_skills": ["Terraform"],
  "technologies": ["AWS"],
  "experience_level": "Senior",
  "key_requirements": ["Operate production clusters"]
}`

// fakeGitHub answers Analyze with a canned result or error.
type fakeGitHub struct {
	analysis *types.GitHubAnalysis
	err      error
	calls    []string
}

func (f *fakeGitHub) Analyze(_ context.Context, username string) (*types.GitHubAnalysis, error) {
	f.calls = append(f.calls, username)
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

type testEnv struct {
	server       *Server
	cfg          *config.Config
	store        *db.SQLite
	files        *storage.Memory
	parserLLM    *llmtest.Client
	jobsLLM      *llmtest.Client
	optimizerLLM *llmtest.Client
	exportLLM    *llmtest.Client
	github       *fakeGitHub
	rateLimit    *ratelimit.Config
}

func newTestEnv(t *testing.T, opts ...func(*testEnv)) *testEnv {
	t.Helper()

	cfg := config.Defaults()
	store, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)

	env := &testEnv{
		cfg:          &cfg,
		store:        store,
		files:        storage.NewMemory(),
		parserLLM:    llmtest.New(resumeJSON),
		jobsLLM:      llmtest.New(jobJSON),
		optimizerLLM: llmtest.New("not json"),
		exportLLM:    llmtest.New("{}"),
		github:       &fakeGitHub{},
		rateLimit:    &ratelimit.Config{Enabled: false},
	}
	for _, opt := range opts {
		opt(env)
	}

	srv, err := New(env.cfg, Deps{
		Store:     env.store,
		Files:     env.files,
		Parser:    parsing.NewResumeParser(env.parserLLM, nil),
		Jobs:      jobs.NewAnalyzer(env.jobsLLM, nil, nil),
		Optimizer: optimization.NewOptimizer(env.optimizerLLM, nil, 0),
		Exporter:  export.NewExporter(skills.NewCategorizer(skills.NewLLMClassifier(env.exportLLM), nil)),
		GitHub:    env.github,
		RateLimit: env.rateLimit,
	})
	require.NoError(t, err)
	srv.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(srv.Close)

	env.server = srv
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(http.MethodPost, path, r)
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

// seedResume stores a parsed resume and returns its id.
func (e *testEnv) seedResume(t *testing.T, id string) *types.Resume {
	t.Helper()
	var data types.ResumeData
	require.NoError(t, json.Unmarshal([]byte(resumeJSON), &data))
	data.ID = id
	resume := &types.Resume{
		ID:         id,
		Filename:   "jane.txt",
		ParsedData: data,
		Status:     types.ResumeStatusParsed,
	}
	require.NoError(t, e.store.CreateResume(context.Background(), resume))
	return resume
}

func (e *testEnv) seedJob(t *testing.T, id string) *types.Job {
	t.Helper()
	var analysis types.JobAnalysis
	require.NoError(t, json.Unmarshal([]byte(jobJSON), &analysis))
	analysis.ID = id
	job := &types.Job{ID: id, Title: analysis.Title, Company: analysis.Company, Analysis: analysis}
	require.NoError(t, e.store.CreateJob(context.Background(), job))
	return job
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestRootEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decodeBody[map[string]string](t, w)
	assert.Equal(t, "Arete API - AI Resume Optimizer", body["message"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, func(e *testEnv) { e.cfg.AppName = "Arete Test" })

	w := env.get("/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"status": "healthy", "app": "Arete Test"}, decodeBody[map[string]string](t, w))
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusNotFound, env.get("/nope").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, env.get("/optimize").Code)
}

func TestNew_RequiresDependencies(t *testing.T) {
	cfg := config.Defaults()

	_, err := New(&cfg, Deps{})
	assert.Error(t, err)

	_, err = New(&cfg, Deps{Store: &db.SQLite{}, Files: storage.NewMemory()})
	assert.ErrorContains(t, err, "services")
}

func TestNew_AuthNeedsSecret(t *testing.T) {
	_, err := newServerWithAuth(t, "")
	assert.ErrorContains(t, err, "JWT")
}

func newServerWithAuth(t *testing.T, secret string) (*testEnv, error) {
	t.Helper()
	cfg := config.Defaults()
	cfg.AuthEnabled = true
	cfg.JWTSecret = secret

	store, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv, err := New(&cfg, Deps{
		Store:     store,
		Files:     storage.NewMemory(),
		Parser:    parsing.NewResumeParser(llmtest.New(resumeJSON), nil),
		Jobs:      jobs.NewAnalyzer(llmtest.New(jobJSON), nil, nil),
		Optimizer: optimization.NewOptimizer(llmtest.New("[]"), nil, 0),
		Exporter:  export.NewExporter(skills.NewCategorizer(skills.NewLLMClassifier(llmtest.New("{}")), nil)),
		GitHub:    &fakeGitHub{},
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	if err != nil {
		return nil, err
	}
	return &testEnv{server: srv, cfg: &cfg, store: store}, nil
}

func TestAuth_Enabled(t *testing.T) {
	env, err := newServerWithAuth(t, "server-test-secret-0123456789")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, env.get("/").Code)
	assert.Equal(t, http.StatusOK, env.get("/health").Code)

	w := env.get("/resume/abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decodeBody[map[string]string](t, w)["error"])

	token, err := env.server.jwtService.GenerateToken("cli")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/resume/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = env.do(req)
	assert.Equal(t, http.StatusNotFound, w.Code, "authenticated request reaches the handler")

	req = httptest.NewRequest(http.MethodGet, "/resume/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	assert.Equal(t, http.StatusUnauthorized, env.do(req).Code)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := env.do(req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = env.do(req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/resume/upload", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORS_Wildcard(t *testing.T) {
	env := newTestEnv(t, func(e *testEnv) { e.cfg.CORSOrigins = []string{"*"} })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	w := env.do(req)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(e *testEnv) {
		e.rateLimit = &ratelimit.Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute}
	})

	first := env.get("/")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := env.get("/")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	body := decodeBody[map[string]any](t, second)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", body["error"])
	assert.EqualValues(t, 1, body["limit"])

	for range 5 {
		assert.Equal(t, http.StatusOK, env.get("/health").Code, "health is never limited")
	}
}

func TestEventStream(t *testing.T) {
	w := httptest.NewRecorder()
	stream, err := openEventStream(w)
	require.NoError(t, err)

	require.NoError(t, stream.Send(map[string]int{"progress": 10}))
	require.NoError(t, stream.Done())

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Equal(t, "data: {\"progress\":10}\n\ndata: [DONE]\n\n", w.Body.String())
	assert.True(t, w.Flushed)
}

type noFlushWriter struct{ http.ResponseWriter }

func TestEventStream_RequiresFlusher(t *testing.T) {
	_, err := openEventStream(noFlushWriter{httptest.NewRecorder()})
	assert.ErrorIs(t, err, errStreamingUnsupported)
}
