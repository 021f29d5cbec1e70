package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/arete/internal/llm/llmtest"
	"github.com/jonathan/arete/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var fixedNow = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

const reposPage = `[
  {"name": "fast-cache", "description": "An LRU cache", "stargazers_count": 40, "forks_count": 5, "language": "Go",
   "html_url": "https://github.com/octo/fast-cache", "created_at": "2022-01-01T00:00:00Z", "updated_at": "2026-09-01T00:00:00Z", "size": 120, "fork": false},
  {"name": "dotfiles", "description": null, "stargazers_count": 0, "forks_count": 0, "language": "Shell",
   "html_url": "https://github.com/octo/dotfiles", "created_at": "2020-01-01T00:00:00Z", "updated_at": "2026-09-30T00:00:00Z", "size": 10, "fork": false},
  {"name": "forked-lib", "description": "Someone else's", "stargazers_count": 900, "forks_count": 100, "language": "Go",
   "html_url": "https://github.com/octo/forked-lib", "created_at": "2021-01-01T00:00:00Z", "updated_at": "2026-09-01T00:00:00Z", "size": 50, "fork": true},
  {"name": "webapp", "description": "", "stargazers_count": 3, "forks_count": 0, "language": "TypeScript",
   "html_url": "https://github.com/octo/webapp", "created_at": "2023-01-01T00:00:00Z", "updated_at": "2020-01-01T00:00:00Z", "size": 300, "fork": false},
  {"name": "notes", "stargazers_count": 0, "forks_count": 2, "language": null,
   "html_url": "https://github.com/octo/notes", "created_at": "2023-01-01T00:00:00Z", "updated_at": "2026-01-01T00:00:00Z", "size": 1, "fork": false}
]`

type fakeGitHub struct {
	server    *httptest.Server
	repoPages atomic.Int32
	authz     atomic.Value
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/octo", func(w http.ResponseWriter, r *http.Request) {
		f.authz.Store(r.Header.Get("Authorization"))
		_, _ = fmt.Fprint(w, `{"login": "octo", "public_repos": 5, "followers": 12, "following": 3}`)
	})
	mux.HandleFunc("GET /users/octo/repos", func(w http.ResponseWriter, r *http.Request) {
		f.repoPages.Add(1)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		if r.URL.Query().Get("page") == "1" {
			_, _ = fmt.Fprint(w, reposPage)
			return
		}
		_, _ = fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("GET /users/ghost", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("GET /users/ghost/repos", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGitHub) client(opts ...Option) *Client {
	opts = append([]Option{WithBaseURL(f.server.URL), WithLimiter(rate.NewLimiter(rate.Inf, 1))}, opts...)
	return NewClient(opts...)
}

func newTestAnalyzer(gh *Client, responses ...string) (*Analyzer, *llmtest.Client) {
	fake := llmtest.New(responses...)
	a := NewAnalyzer(gh, fake, nil)
	a.now = func() time.Time { return fixedNow }
	return a, fake
}

func TestAnalyzer_Analyze(t *testing.T) {
	gh := newFakeGitHub(t)
	analyzer, fake := newTestAnalyzer(gh.client(WithToken("secret")),
		`{"frameworks": ["Gin", "React"], "tools": ["Docker"]}`,
		"```json\n[\"Built a Go cache with 40 stars\", \"Shipped TypeScript apps\"]\n```",
	)

	got, err := analyzer.Analyze(context.Background(), "octo")
	require.NoError(t, err)

	assert.Equal(t, "octo", got.Username)
	assert.Equal(t, "https://github.com/octo", got.ProfileURL)
	assert.Equal(t, "Bearer secret", gh.authz.Load())
	assert.EqualValues(t, 2, gh.repoPages.Load())

	assert.Equal(t, types.ImpactMetrics{
		TotalStars:  943,
		TotalForks:  107,
		TotalRepos:  5,
		PublicRepos: 5,
		Followers:   12,
		Following:   3,
	}, got.ImpactMetrics)

	assert.Equal(t, []string{"Go", "Shell", "TypeScript"}, got.TechStack.PrimaryLanguages)
	assert.Equal(t, []string{"Gin", "React"}, got.TechStack.Frameworks)
	assert.Equal(t, []string{"Docker"}, got.TechStack.Tools)

	names := make([]string, len(got.TopRepositories))
	for i, r := range got.TopRepositories {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"fast-cache", "webapp", "dotfiles", "notes"}, names)
	assert.NotNil(t, got.TopRepositories[0].Languages)

	require.Len(t, got.ProjectHighlights, 3)
	assert.Equal(t, types.ProjectHighlight{
		Name:         "fast-cache",
		Description:  "An LRU cache",
		ImpactMetric: "40 stars, 5 forks",
		TechStack:    []string{"Go"},
		URL:          "https://github.com/octo/fast-cache",
	}, got.ProjectHighlights[0])
	assert.Equal(t, "Open source project", got.ProjectHighlights[1].Description)
	assert.Equal(t, "3 stars", got.ProjectHighlights[1].ImpactMetric)
	assert.Equal(t, "Active development", got.ProjectHighlights[2].ImpactMetric)

	assert.Equal(t, []string{"Built a Go cache with 40 stars", "Shipped TypeScript apps"}, got.ResumeBulletPoints)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0].Prompt, "Languages: Go, Shell, TypeScript")
	assert.Contains(t, calls[1].Prompt, "Username: octo")
	assert.Contains(t, calls[1].Prompt, "Total Stars: 943")
	assert.Contains(t, calls[1].Prompt, "- fast-cache: An LRU cache (40 stars, 5 forks)")
	assert.Contains(t, calls[1].Prompt, "Frameworks: Gin, React")
}

func TestAnalyzer_FallsBackWhenModelFails(t *testing.T) {
	gh := newFakeGitHub(t)
	fake := llmtest.Failing(errors.New("quota exceeded"))
	analyzer := NewAnalyzer(gh.client(), fake, nil)
	analyzer.now = func() time.Time { return fixedNow }

	got, err := analyzer.Analyze(context.Background(), "octo")
	require.NoError(t, err)

	assert.Empty(t, got.TechStack.Frameworks)
	assert.NotNil(t, got.TechStack.Frameworks)
	assert.Equal(t, []string{
		"Developed 5 open source projects using Go, Shell, TypeScript",
		"Achieved 943 stars across GitHub repositories demonstrating code quality",
		"Built projects with  frameworks and modern development practices",
	}, got.ResumeBulletPoints)
}

func TestAnalyzer_UnparseableModelOutput(t *testing.T) {
	gh := newFakeGitHub(t)
	analyzer, _ := newTestAnalyzer(gh.client(), "not json at all", "still not json")

	got, err := analyzer.Analyze(context.Background(), "octo")
	require.NoError(t, err)
	assert.Empty(t, got.TechStack.Frameworks)
	assert.Empty(t, got.TechStack.Tools)
	assert.Len(t, got.ResumeBulletPoints, 3)
}

func TestAnalyzer_UserNotFound(t *testing.T) {
	gh := newFakeGitHub(t)
	analyzer, fake := newTestAnalyzer(gh.client())

	_, err := analyzer.Analyze(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, fake.Calls())
}

func TestClient_ReposStopsAtLimit(t *testing.T) {
	var pages atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages.Add(1)
		items := make([]string, 60)
		for i := range items {
			items[i] = fmt.Sprintf(`{"name": "r%s-%d"}`, r.URL.Query().Get("page"), i)
		}
		_, _ = fmt.Fprint(w, "["+strings.Join(items, ",")+"]")
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithLimiter(rate.NewLimiter(rate.Inf, 1)))
	repos, err := client.Repos(context.Background(), "busy")
	require.NoError(t, err)
	assert.Len(t, repos, 120)
	assert.EqualValues(t, 2, pages.Load())
}

func TestClient_ReposStopsOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithLimiter(rate.NewLimiter(rate.Inf, 1)))
	repos, err := client.Repos(context.Background(), "octo")
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestClient_RespectsCancelledContext(t *testing.T) {
	client := NewClient(WithBaseURL("http://127.0.0.1:1"), WithLimiter(rate.NewLimiter(rate.Every(time.Hour), 1)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.User(ctx, "octo")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_TransportFailureIsNotUserNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := NewClient(WithBaseURL(server.URL), WithLimiter(rate.NewLimiter(rate.Inf, 1)))
	_, err := client.User(context.Background(), "octo")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)

	_, err = client.Repos(context.Background(), "octo")
	assert.Error(t, err)
}

func TestRankLanguages_TiesByName(t *testing.T) {
	lang := func(s string) *string { return &s }
	repos := []Repo{
		{Language: lang("Rust")},
		{Language: lang("Go")},
		{Language: lang("Python")},
		{Language: lang("Python")},
		{Language: nil},
	}
	assert.Equal(t, []string{"Python", "Go", "Rust"}, RankLanguages(repos))
	assert.Empty(t, RankLanguages(nil))
}

func TestTopRepositories_RecencyBreaksStarTies(t *testing.T) {
	repos := []Repo{
		{Name: "stale", Stars: 2, UpdatedAt: "2024-01-01T00:00:00Z"},
		{Name: "fresh", Stars: 2, UpdatedAt: "2026-09-30T00:00:00Z"},
		{Name: "bad-date", Stars: 2, UpdatedAt: "yesterday"},
		{Name: "popular", Stars: 3, UpdatedAt: "2019-01-01T00:00:00Z"},
	}
	top := TopRepositories(repos, fixedNow)
	names := make([]string, len(top))
	for i, r := range top {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"popular", "fresh", "stale", "bad-date"}, names)
}

func TestImpactMetric(t *testing.T) {
	tests := []struct {
		stars, forks int
		want         string
	}{
		{10, 2, "10 stars, 2 forks"},
		{10, 0, "10 stars"},
		{0, 2, "2 forks"},
		{0, 0, "Active development"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, impactMetric(tt.stars, tt.forks))
	}
}
