// Package github analyses a public GitHub profile into resume material:
// impact metrics, tech stack, top repositories, highlights and bullet points.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v74/github"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"

	// MaxRepos bounds how many repositories are paged in per user.
	MaxRepos = 100

	defaultTimeout = 15 * time.Second
	userAgent      = "arete"
)

// ErrUserNotFound is returned when the users endpoint does not answer 200.
var ErrUserNotFound = errors.New("github user not found")

// User holds the profile counters used for impact metrics.
type User struct {
	Login       string
	PublicRepos int
	Followers   int
	Following   int
}

// Repo is one repository as listed by the repos endpoint.
type Repo struct {
	Name        string
	Description *string
	Stars       int
	Forks       int
	Language    *string
	HTMLURL     string
	CreatedAt   string
	UpdatedAt   string
	Size        int
	Fork        bool
}

// Client wraps go-github. Every request waits on a shared limiter, so one
// Client may be used from many goroutines.
type Client struct {
	api *gh.Client
}

type clientConfig struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*clientConfig)

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(u string) Option {
	return func(c *clientConfig) { c.baseURL = u }
}

// WithToken authenticates requests with a personal access token.
func WithToken(token string) Option {
	return func(c *clientConfig) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) { c.http = hc }
}

// WithLimiter replaces the outbound rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *clientConfig) { c.limiter = l }
}

// NewClient returns a Client allowing 10 requests per second with bursts of 5.
// A base URL that does not parse falls back to DefaultBaseURL.
func NewClient(opts ...Option) *Client {
	cfg := clientConfig{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(10), 5),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	hc := *cfg.http
	hc.Transport = &limitedTransport{base: hc.Transport, limiter: cfg.limiter}

	api := gh.NewClient(&hc)
	if cfg.token != "" {
		api = api.WithAuthToken(cfg.token)
	}
	if base, err := url.Parse(strings.TrimSuffix(cfg.baseURL, "/") + "/"); err == nil && base.Host != "" {
		api.BaseURL = base
	}
	api.UserAgent = userAgent
	return &Client{api: api}
}

// User fetches a profile. Any HTTP error status is reported as
// ErrUserNotFound; transport failures are returned as they are.
func (c *Client) User(ctx context.Context, username string) (*User, error) {
	u, resp, err := c.api.Users.Get(ctx, username)
	if err != nil {
		if answered(resp) {
			return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
		}
		return nil, fmt.Errorf("github user %s: %w", username, err)
	}
	return &User{
		Login:       u.GetLogin(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
	}, nil
}

// Repos pages through a user's repositories, most recently updated first,
// until a page comes back empty or with an error status, or MaxRepos have
// been collected.
func (c *Client) Repos(ctx context.Context, username string) ([]Repo, error) {
	opts := &gh.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: MaxRepos},
	}

	var repos []Repo
	for page := 1; len(repos) < MaxRepos; page++ {
		opts.Page = page
		items, resp, err := c.api.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			if answered(resp) {
				break
			}
			return nil, fmt.Errorf("github repos %s: %w", username, err)
		}
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			repos = append(repos, fromRepository(item))
		}
	}
	return repos, nil
}

// answered reports whether the API returned an HTTP status, as opposed to
// the request failing in transit.
func answered(resp *gh.Response) bool {
	return resp != nil && resp.Response != nil
}

func fromRepository(r *gh.Repository) Repo {
	return Repo{
		Name:        r.GetName(),
		Description: nonEmpty(r.GetDescription()),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Language:    nonEmpty(r.GetLanguage()),
		HTMLURL:     r.GetHTMLURL(),
		CreatedAt:   timestamp(r.GetCreatedAt()),
		UpdatedAt:   timestamp(r.GetUpdatedAt()),
		Size:        r.GetSize(),
		Fork:        r.GetFork(),
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timestamp(ts gh.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

// limitedTransport makes every outbound request wait on a shared limiter.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("github rate limiter: %w", err)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
