package optimization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/arete/internal/llm"
	"github.com/jonathan/arete/internal/prompts"
	"github.com/jonathan/arete/internal/types"
)

// CoverLetter writes a cover letter for resume aimed at job.
func (o *Optimizer) CoverLetter(ctx context.Context, resume *types.ResumeData, job *types.JobAnalysis) (string, error) {
	currentRole := "Software Engineer"
	if len(resume.Experience) > 0 {
		currentRole = orDefault(resume.Experience[0].Title, currentRole)
	}

	prompt, err := prompts.Render("optimization.json", "cover-letter", map[string]string{
		"Name":           orDefault(resume.PersonalInfo.Name, "Candidate"),
		"CurrentRole":    currentRole,
		"KeySkills":      strings.Join(head(resume.Skills.Technical, 5), ", "),
		"JobTitle":       orDefault(job.Title, "Software Engineer"),
		"Company":        orDefault(job.Company, "Company"),
		"RequiredSkills": strings.Join(head(job.RequiredSkills, 5), ", "),
		"Technologies":   strings.Join(head(job.Technologies, 3), ", "),
	})
	if err != nil {
		return "", fmt.Errorf("failed to build cover letter prompt: %w", err)
	}

	letter, err := o.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("cover letter generation failed: %w", err)
	}
	letter = strings.TrimSpace(letter)
	if letter == "" {
		return "", errors.New("cover letter generation failed: empty response")
	}
	return letter, nil
}
