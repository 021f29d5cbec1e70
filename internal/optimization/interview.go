package optimization

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/arete/internal/llm"
	"github.com/jonathan/arete/internal/prompts"
	"github.com/jonathan/arete/internal/types"
)

const maxInterviewQuestions = 5

// InterviewQuestions generates up to five preparation questions for job. If
// the model fails or answers with something unusable, a templated set built
// from the job is returned instead.
func (o *Optimizer) InterviewQuestions(ctx context.Context, job *types.JobAnalysis) []types.InterviewQuestion {
	title := orDefault(job.Title, "Software Engineer")
	company := orDefault(job.Company, "the company")
	technologies := head(job.Technologies, 5)

	prompt, err := prompts.Render("optimization.json", "interview-questions", map[string]string{
		"ExperienceLevel": orDefault(job.ExperienceLevel, "mid-level"),
		"JobTitle":        title,
		"Company":         company,
		"Technologies":    strings.Join(technologies, ", "),
		"KeyRequirements": strings.Join(head(job.KeyRequirements, 3), ", "),
	})
	if err == nil {
		var response string
		response, err = o.client.GenerateJSON(ctx, prompt, llm.TierStandard)
		if err == nil {
			var questions []types.InterviewQuestion
			if err = decodeArray(response, &questions); err == nil {
				return nonNil(head(questions, maxInterviewQuestions))
			}
		}
	}

	o.logger.Warn("interview questions unavailable, using defaults", "error", err)
	return defaultQuestions(title, company, technologies)
}

func defaultQuestions(title, company string, technologies []string) []types.InterviewQuestion {
	tech := "relevant technologies"
	if len(technologies) > 0 {
		tech = technologies[0]
	}
	return []types.InterviewQuestion{
		{
			Category: "technical",
			Question: fmt.Sprintf("Describe your experience with %s.", tech),
			Tips:     "Use specific examples from past projects with metrics.",
		},
		{
			Category: "behavioral",
			Question: "Tell me about a challenging project and how you overcame obstacles.",
			Tips:     "Use the STAR method: Situation, Task, Action, Result.",
		},
		{
			Category: "system_design",
			Question: fmt.Sprintf("How would you design a scalable system for %s responsibilities?", title),
			Tips:     "Start with requirements, then discuss architecture and trade-offs.",
		},
		{
			Category: "role_specific",
			Question: fmt.Sprintf("Why are you interested in the %s role at %s?", title, company),
			Tips:     "Research the company and connect your experience to their mission.",
		},
		{
			Category: "technical",
			Question: "Walk me through how you would debug a production issue.",
			Tips:     "Describe your systematic approach: logs, monitoring, isolation, fix.",
		},
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
