package skills

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jonathan/arete/internal/llm"
	"github.com/jonathan/arete/internal/prompts"
)

// Classifier places skills the quick table does not know. The returned map is
// keyed by category name as the classifier spells it; callers resolve names
// with ResolveCategory.
type Classifier interface {
	Classify(ctx context.Context, skills []string) (map[string][]string, error)
}

// ClassifierError reports that the classifier backend could not be reached or
// failed. Unparseable output is not an error.
type ClassifierError struct {
	Count int
	Cause error
}

func (e *ClassifierError) Error() string {
	return fmt.Sprintf("classify %d skills: %v", e.Count, e.Cause)
}

func (e *ClassifierError) Unwrap() error {
	return e.Cause
}

// LLMClassifier asks a language model to categorize skills.
type LLMClassifier struct {
	client llm.Client
}

// NewLLMClassifier creates a classifier backed by client.
func NewLLMClassifier(client llm.Client) *LLMClassifier {
	return &LLMClassifier{client: client}
}

// Classify sends one prompt for the whole batch. A response that does not
// contain a JSON object puts every skill under Other.
func (c *LLMClassifier) Classify(ctx context.Context, skills []string) (map[string][]string, error) {
	if len(skills) == 0 {
		return map[string][]string{}, nil
	}

	prompt, err := prompts.Render("skills.json", "categorize-skills", map[string]string{
		"Skills": "- " + strings.Join(skills, "\n- "),
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &ClassifierError{Count: len(skills), Cause: err}
	}

	result, ok := parseClassification(resp)
	if !ok {
		return map[string][]string{string(Other): append([]string(nil), skills...)}, nil
	}
	return result, nil
}

// parseClassification reads a {"category": ["skill", ...]} object. Non-array
// values and non-string entries are skipped.
func parseClassification(text string) (map[string][]string, bool) {
	obj, ok := llm.ExtractJSONObject(text)
	if !ok || !gjson.Valid(obj) {
		return nil, false
	}

	result := make(map[string][]string)
	gjson.Parse(obj).ForEach(func(category, members gjson.Result) bool {
		if !members.IsArray() {
			return true
		}
		for _, m := range members.Array() {
			if m.Type == gjson.String && strings.TrimSpace(m.Str) != "" {
				result[category.String()] = append(result[category.String()], m.Str)
			}
		}
		return true
	})
	return result, true
}
