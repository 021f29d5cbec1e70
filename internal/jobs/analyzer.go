// Package jobs analyses job postings: it scrapes posting URLs, cleans the
// text and asks an LLM for a structured JobAnalysis.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/arete/internal/fetch"
	"github.com/jonathan/arete/internal/llm"
	"github.com/jonathan/arete/internal/parsing"
	"github.com/jonathan/arete/internal/prompts"
	"github.com/jonathan/arete/internal/schemas"
	"github.com/jonathan/arete/internal/types"
)

// UnknownCompany is used when the posting does not name the employer.
const UnknownCompany = "Unknown"

// AnalysisError is returned when the model output is not a usable job analysis.
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Analyzer turns job postings into JobAnalysis values.
type Analyzer struct {
	client llm.Client
	fetch  *fetch.Options
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer. fetchOpts configures URL scraping and may
// be nil for defaults.
func NewAnalyzer(client llm.Client, fetchOpts *fetch.Options, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if fetchOpts == nil {
		fetchOpts = fetch.DefaultOptions()
	}
	if fetchOpts.Logger == nil {
		opts := *fetchOpts
		opts.Logger = logger
		fetchOpts = &opts
	}
	return &Analyzer{client: client, fetch: fetchOpts, logger: logger}
}

// JobText returns the posting text for a request: the pasted text when
// present, otherwise the scraped page.
func (a *Analyzer) JobText(ctx context.Context, req *types.JobAnalysisRequest) (string, error) {
	if text := strings.TrimSpace(req.JobText); text != "" {
		return req.JobText, nil
	}
	if strings.TrimSpace(req.JobURL) == "" {
		return "", types.ErrNoJobInput
	}
	return a.Scrape(ctx, req.JobURL)
}

// Scrape fetches a job posting URL and returns its text.
func (a *Analyzer) Scrape(ctx context.Context, url string) (string, error) {
	result, err := fetch.Page(ctx, url, a.fetch)
	if err != nil {
		return "", fmt.Errorf("failed to scrape URL: %w", err)
	}
	a.logger.Info("scraped job posting", "url", url, "chars", len(result.Text), "rendered", result.Rendered)
	return result.Text, nil
}

// Analyze cleans text and extracts a structured analysis. The returned
// analysis has no ID; callers assign one when persisting.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*types.JobAnalysis, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, &AnalysisError{Message: "job text is empty"}
	}

	prompt, err := prompts.Render("jobs.json", "analyze-job", map[string]string{
		"JobText": cleaned,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build job prompt: %w", err)
	}

	responseText, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("job analysis request failed: %w", err)
	}

	analysis, err := decodeAnalysis(responseText)
	if err != nil {
		a.logger.Warn("job analysis parse failed", "error", err)
		return nil, err
	}
	return analysis, nil
}

func decodeAnalysis(responseText string) (*types.JobAnalysis, error) {
	doc, ok := llm.ExtractJSONObject(responseText)
	if !ok {
		return nil, &AnalysisError{Message: "Failed to parse LLM response as JSON"}
	}
	if err := schemas.ValidateJobAnalysis([]byte(doc)); err != nil {
		return nil, &AnalysisError{Message: "job analysis JSON failed validation", Cause: err}
	}

	var analysis types.JobAnalysis
	if err := json.Unmarshal([]byte(doc), &analysis); err != nil {
		return nil, &AnalysisError{Message: "Failed to parse LLM response as JSON", Cause: err}
	}

	analysis.ID = ""
	analysis.Title = strings.TrimSpace(analysis.Title)
	analysis.Company = strings.TrimSpace(analysis.Company)
	if analysis.Company == "" {
		analysis.Company = UnknownCompany
	}
	analysis.ExperienceLevel = strings.TrimSpace(analysis.ExperienceLevel)
	analysis.RequiredSkills = parsing.NormalizeList(analysis.RequiredSkills)
	analysis.PreferredSkills = parsing.NormalizeList(analysis.PreferredSkills)
	analysis.Technologies = parsing.NormalizeList(analysis.Technologies)
	analysis.KeyRequirements = parsing.NormalizeList(analysis.KeyRequirements)
	return &analysis, nil
}
