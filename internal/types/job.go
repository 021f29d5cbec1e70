package types

import (
	"errors"
	"strings"
	"time"
)

// JobAnalysisRequest asks for a job posting to be analysed. One of JobText or
// JobURL must be set.
type JobAnalysisRequest struct {
	JobText string `json:"job_text,omitempty"`
	JobURL  string `json:"job_url,omitempty" validate:"omitempty,url"`
}

// ErrNoJobInput is returned when neither job text nor a URL was given.
var ErrNoJobInput = errors.New("Either job_text or job_url must be provided") //nolint:staticcheck // user-facing message

// Validate checks the request fields.
func (r *JobAnalysisRequest) Validate() error {
	if strings.TrimSpace(r.JobText) == "" && strings.TrimSpace(r.JobURL) == "" {
		return ErrNoJobInput
	}
	return validate.Struct(r)
}

// JobAnalysis is the structured form of a job posting.
type JobAnalysis struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Technologies    []string `json:"technologies"`
	ExperienceLevel string   `json:"experience_level"`
	KeyRequirements []string `json:"key_requirements"`
}

// Job is a stored job record.
type Job struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Company   string      `json:"company"`
	JobText   string      `json:"job_text"`
	JobURL    string      `json:"job_url,omitempty"`
	Analysis  JobAnalysis `json:"analysis"`
	CreatedAt time.Time   `json:"created_at"`
}
