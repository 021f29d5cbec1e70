package github

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/arete/internal/llm"
	"github.com/jonathan/arete/internal/prompts"
	"github.com/jonathan/arete/internal/types"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

const (
	topLanguages     = 10
	primaryLanguages = 5
	topRepos         = 5
	highlightCount   = 3
)

// Analyzer turns a GitHub profile into resume insights.
type Analyzer struct {
	gh     *Client
	client llm.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewAnalyzer returns an Analyzer. A nil logger discards log output.
func NewAnalyzer(gh *Client, client llm.Client, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{gh: gh, client: client, logger: logger, now: time.Now}
}

// Analyze fetches the user and their repositories concurrently and builds the
// analysis. Model failures degrade to empty frameworks and fallback bullets;
// only GitHub failures and cancellation are returned.
func (a *Analyzer) Analyze(ctx context.Context, username string) (*types.GitHubAnalysis, error) {
	var (
		user  *User
		repos []Repo
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := a.gh.User(gCtx, username)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	g.Go(func() error {
		r, err := a.gh.Repos(gCtx, username)
		if err != nil {
			return fmt.Errorf("failed to list repositories: %w", err)
		}
		repos = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := Metrics(user, repos)
	stack := a.techStack(ctx, repos)
	top := TopRepositories(repos, a.now())
	highlights := Highlights(top)
	bullets := a.bulletPoints(ctx, username, metrics, stack, highlights)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.logger.Info("github profile analysed",
		slog.String("username", username),
		slog.Int("repos", len(repos)),
		slog.Int("stars", metrics.TotalStars))

	return &types.GitHubAnalysis{
		Username:           username,
		ProfileURL:         "https://github.com/" + username,
		ImpactMetrics:      metrics,
		TechStack:          stack,
		TopRepositories:    top,
		ProjectHighlights:  highlights,
		ResumeBulletPoints: bullets,
	}, nil
}

// Metrics sums stars and forks over repos and copies the profile counters.
func Metrics(user *User, repos []Repo) types.ImpactMetrics {
	m := types.ImpactMetrics{
		TotalRepos:  len(repos),
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
		Following:   user.Following,
	}
	for _, r := range repos {
		m.TotalStars += r.Stars
		m.TotalForks += r.Forks
	}
	return m
}

// RankLanguages counts the primary language of each repo and returns the
// ten most common, ties broken by name.
func RankLanguages(repos []Repo) []string {
	counts := make(map[string]int)
	for _, r := range repos {
		if r.Language != nil {
			counts[*r.Language]++
		}
	}

	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	slices.SortFunc(langs, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return head(langs, topLanguages)
}

func (a *Analyzer) techStack(ctx context.Context, repos []Repo) types.TechStack {
	ranked := RankLanguages(repos)
	stack := types.TechStack{
		PrimaryLanguages: head(ranked, primaryLanguages),
		Frameworks:       []string{},
		Tools:            []string{},
	}

	prompt, err := prompts.Render("github.json", "categorize-technologies", map[string]string{
		"Languages": strings.Join(ranked, ", "),
	})
	if err != nil {
		a.logger.Error("failed to render prompt", slog.String("error", err.Error()))
		return stack
	}
	text, err := a.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		a.logger.Warn("technology categorization unavailable", slog.String("error", err.Error()))
		return stack
	}

	obj, ok := llm.ExtractJSONObject(text)
	if !ok || !gjson.Valid(obj) {
		a.logger.Warn("technology categorization was not JSON")
		return stack
	}
	stack.Frameworks = stringArray(gjson.Get(obj, "frameworks"))
	stack.Tools = stringArray(gjson.Get(obj, "tools"))
	return stack
}

// TopRepositories ranks non-fork repos by stars plus a recency bonus of up
// to one point for repos updated within the last year, and keeps five.
func TopRepositories(repos []Repo, now time.Time) []types.Repository {
	type scored struct {
		repo  Repo
		score float64
	}
	var own []scored
	for _, r := range repos {
		if !r.Fork {
			own = append(own, scored{repo: r, score: repoScore(r, now)})
		}
	}
	slices.SortStableFunc(own, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]types.Repository, 0, topRepos)
	for _, s := range head(own, topRepos) {
		r := s.repo
		out = append(out, types.Repository{
			Name:        r.Name,
			Description: r.Description,
			Stars:       r.Stars,
			Forks:       r.Forks,
			Language:    r.Language,
			Languages:   map[string]int{},
			URL:         r.HTMLURL,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
			Size:        r.Size,
		})
	}
	return out
}

func repoScore(r Repo, now time.Time) float64 {
	score := float64(r.Stars)
	updated, err := time.Parse(time.RFC3339, r.UpdatedAt)
	if err != nil {
		return score
	}
	days := int(now.Sub(updated).Hours() / 24)
	return score + float64(max(0, 365-days))/365
}

// Highlights summarises the first three repositories.
func Highlights(repos []types.Repository) []types.ProjectHighlight {
	out := make([]types.ProjectHighlight, 0, highlightCount)
	for _, r := range head(repos, highlightCount) {
		desc := "Open source project"
		if r.Description != nil && *r.Description != "" {
			desc = *r.Description
		}
		stack := []string{}
		if r.Language != nil {
			stack = append(stack, *r.Language)
		}
		out = append(out, types.ProjectHighlight{
			Name:         r.Name,
			Description:  desc,
			ImpactMetric: impactMetric(r.Stars, r.Forks),
			TechStack:    stack,
			URL:          r.URL,
		})
	}
	return out
}

func impactMetric(stars, forks int) string {
	switch {
	case stars > 0 && forks > 0:
		return fmt.Sprintf("%d stars, %d forks", stars, forks)
	case stars > 0:
		return fmt.Sprintf("%d stars", stars)
	case forks > 0:
		return fmt.Sprintf("%d forks", forks)
	default:
		return "Active development"
	}
}

func (a *Analyzer) bulletPoints(ctx context.Context, username string, m types.ImpactMetrics, stack types.TechStack, highlights []types.ProjectHighlight) []string {
	lines := make([]string, len(highlights))
	for i, h := range highlights {
		lines[i] = fmt.Sprintf("- %s: %s (%s)", h.Name, h.Description, h.ImpactMetric)
	}

	prompt, err := prompts.Render("github.json", "resume-bullets", map[string]string{
		"Username":         username,
		"TotalStars":       strconv.Itoa(m.TotalStars),
		"TotalRepos":       strconv.Itoa(m.TotalRepos),
		"Followers":        strconv.Itoa(m.Followers),
		"PrimaryLanguages": strings.Join(stack.PrimaryLanguages, ", "),
		"Frameworks":       strings.Join(stack.Frameworks, ", "),
		"Highlights":       strings.Join(lines, "\n"),
	})
	if err != nil {
		a.logger.Error("failed to render prompt", slog.String("error", err.Error()))
		return fallbackBullets(m, stack)
	}

	text, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		a.logger.Warn("bullet generation unavailable, using fallback", slog.String("error", err.Error()))
		return fallbackBullets(m, stack)
	}
	arr, ok := llm.ExtractJSONArray(text)
	var bullets []string
	if !ok || json.Unmarshal([]byte(arr), &bullets) != nil || len(bullets) == 0 {
		a.logger.Warn("bullet generation returned no usable array, using fallback")
		return fallbackBullets(m, stack)
	}
	return bullets
}

func fallbackBullets(m types.ImpactMetrics, stack types.TechStack) []string {
	return []string{
		fmt.Sprintf("Developed %d open source projects using %s", m.TotalRepos, strings.Join(head(stack.PrimaryLanguages, 3), ", ")),
		fmt.Sprintf("Achieved %d stars across GitHub repositories demonstrating code quality", m.TotalStars),
		fmt.Sprintf("Built projects with %s frameworks and modern development practices", strings.Join(head(stack.Frameworks, 2), ", ")),
	}
}

func stringArray(r gjson.Result) []string {
	out := []string{}
	for _, item := range r.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
