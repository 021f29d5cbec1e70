// Package parsing turns extracted resume text into structured ResumeData using an LLM.
package parsing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/arete/internal/llm"
	"github.com/jonathan/arete/internal/prompts"
	"github.com/jonathan/arete/internal/schemas"
	"github.com/jonathan/arete/internal/types"
)

// ResumeParser extracts structured resume data from markdown text.
type ResumeParser struct {
	client llm.Client
	logger *slog.Logger
}

// NewResumeParser creates a parser backed by client.
func NewResumeParser(client llm.Client, logger *slog.Logger) *ResumeParser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ResumeParser{client: client, logger: logger}
}

// Parse asks the model for resume JSON, validates it against the resume
// schema and decodes it. githubURL is optional context for the model.
func (p *ResumeParser) Parse(ctx context.Context, text, githubURL string) (*types.ResumeData, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Message: "resume text is empty"}
	}

	prompt, err := buildResumePrompt(text, githubURL)
	if err != nil {
		return nil, err
	}

	// Standard tier: long structured output, little reasoning
	responseText, err := p.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate resume JSON",
			Cause:   err,
		}
	}

	data, err := decodeResume(responseText)
	if err != nil {
		p.logger.Warn("resume parse failed", "error", err, "response_bytes", len(responseText))
		return nil, err
	}

	normalizeResume(data)
	return data, nil
}

func buildResumePrompt(text, githubURL string) (string, error) {
	githubContext := ""
	if githubURL = strings.TrimSpace(githubURL); githubURL != "" {
		githubContext = "\nGitHub Profile: " + githubURL
	}
	prompt, err := prompts.Render("parsing.json", "parse-resume", map[string]string{
		"ResumeText":    text,
		"GitHubContext": githubContext,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build resume prompt: %w", err)
	}
	return prompt, nil
}

// decodeResume validates the model output before decoding so structural
// problems surface as schema errors rather than silent zero values.
func decodeResume(responseText string) (*types.ResumeData, error) {
	doc, ok := llm.ExtractJSONObject(responseText)
	if !ok {
		return nil, &ParseError{Message: "no JSON object in model response"}
	}

	if err := schemas.ValidateResume([]byte(doc)); err != nil {
		return nil, &ParseError{Message: "resume JSON failed validation", Cause: err}
	}

	var data types.ResumeData
	if err := json.Unmarshal([]byte(doc), &data); err != nil {
		return nil, &ParseError{Message: "failed to decode resume JSON", Cause: err}
	}
	return &data, nil
}
