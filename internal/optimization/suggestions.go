package optimization

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/arete/internal/ats"
	"github.com/jonathan/arete/internal/llm"
	"github.com/jonathan/arete/internal/prompts"
	"github.com/jonathan/arete/internal/types"
)

var errNoJSONArray = errors.New("no JSON array in model response")

var (
	keywordFallback = types.OptimizationSuggestion{
		Section:   "skills",
		Type:      "add_keyword",
		Original:  "Current skills",
		Suggested: "Add missing job-required skills",
		Reason:    "Failed to parse AI suggestions",
		Impact:    "medium",
	}
	experienceFallback = types.OptimizationSuggestion{
		Section:   "experience",
		Type:      "enhance_description",
		Original:  "Current experience description",
		Suggested: "Enhanced description with quantified impact",
		Reason:    "Improve alignment with job requirements",
		Impact:    "high",
	}
)

// KeywordSuggestions proposes skills to add for job requirements the resume
// does not list. Nothing missing means no suggestions and no model call.
func (o *Optimizer) KeywordSuggestions(ctx context.Context, resume *types.ResumeData, job *types.JobAnalysis) []types.OptimizationSuggestion {
	missing := ats.MissingSkills(job, ats.ExistingSkills(resume))
	if missing.Empty() {
		return []types.OptimizationSuggestion{}
	}

	suggestions, err := o.suggest(ctx, "keyword-suggestions", map[string]string{
		"RequiredSkills": strings.Join(missing.RequiredSkills, ", "),
		"Technologies":   strings.Join(missing.Technologies, ", "),
	})
	if err != nil {
		o.logger.Warn("keyword suggestions unavailable, using fallback", "error", err)
		return []types.OptimizationSuggestion{keywordFallback}
	}
	return suggestions
}

// ExperienceSuggestions proposes a rewrite of the most recent position.
func (o *Optimizer) ExperienceSuggestions(ctx context.Context, resume *types.ResumeData, job *types.JobAnalysis) []types.OptimizationSuggestion {
	if len(resume.Experience) == 0 {
		return []types.OptimizationSuggestion{}
	}
	first := resume.Experience[0]

	suggestions, err := o.suggest(ctx, "enhance-experience", map[string]string{
		"JobTitle":        orDefault(job.Title, "Target Role"),
		"KeyRequirements": strings.Join(job.KeyRequirements, ", "),
		"Technologies":    strings.Join(job.Technologies, ", "),
		"Title":           first.Title,
		"Company":         first.Company,
		"Description":     strings.Join(first.Description, "; "),
	})
	if err != nil {
		o.logger.Warn("experience suggestions unavailable, using fallback", "error", err)
		return []types.OptimizationSuggestion{experienceFallback}
	}
	return suggestions
}

func (o *Optimizer) suggest(ctx context.Context, key string, data map[string]string) ([]types.OptimizationSuggestion, error) {
	prompt, err := prompts.Render("optimization.json", key, data)
	if err != nil {
		return nil, err
	}
	response, err := o.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var suggestions []types.OptimizationSuggestion
	if err := decodeArray(response, &suggestions); err != nil {
		return nil, err
	}
	return nonNil(suggestions), nil
}

// decodeArray decodes the first JSON array in a model response into v.
func decodeArray(response string, v any) error {
	arr, ok := llm.ExtractJSONArray(response)
	if !ok {
		return errNoJSONArray
	}
	return json.Unmarshal([]byte(arr), v)
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
