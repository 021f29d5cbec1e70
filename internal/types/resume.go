// Package types provides type definitions for structured data used throughout the arete backend.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strconv"
	"time"
)

// ResumeStatusParsed is the status of a resume whose upload was parsed.
const ResumeStatusParsed = "parsed"

// PersonalInfo holds the candidate's contact details.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Experience is one position held by the candidate.
type Experience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Duration     string   `json:"duration"`
	Description  []string `json:"description"`
	Technologies []string `json:"technologies"`
}

// Skills groups the skill lists extracted from a resume.
type Skills struct {
	Technical  []string `json:"technical"`
	Frameworks []string `json:"frameworks"`
	Tools      []string `json:"tools"`
	Languages  []string `json:"languages"`
	SoftSkills []string `json:"soft_skills,omitempty"`
}

// Groups returns the technical skill lists keyed by group name. Soft skills
// are left out; they are not rendered in the categorized skills section.
func (s Skills) Groups() map[string][]string {
	return map[string][]string{
		"technical":  s.Technical,
		"frameworks": s.Frameworks,
		"tools":      s.Tools,
		"languages":  s.Languages,
	}
}

// Empty reports whether no skill list has entries.
func (s Skills) Empty() bool {
	return len(s.Technical)+len(s.Frameworks)+len(s.Tools)+len(s.Languages)+len(s.SoftSkills) == 0
}

// Project is a project listed on the resume.
type Project struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Technologies  []string `json:"technologies"`
	GitHubURL     string   `json:"github_url,omitempty"`
	ImpactMetrics []string `json:"impact_metrics"`
}

// Education is one degree entry.
type Education struct {
	Degree         string `json:"degree,omitempty"`
	Institution    string `json:"institution,omitempty"`
	GraduationYear string `json:"graduation_year,omitempty"`
	GPA            string `json:"gpa,omitempty"`
}

// UnmarshalJSON accepts numeric graduation years and GPAs, which models
// often emit unquoted.
func (e *Education) UnmarshalJSON(data []byte) error {
	var raw struct {
		Degree         string `json:"degree"`
		Institution    string `json:"institution"`
		GraduationYear any    `json:"graduation_year"`
		GPA            any    `json:"gpa"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Education{
		Degree:         raw.Degree,
		Institution:    raw.Institution,
		GraduationYear: scalarString(raw.GraduationYear),
		GPA:            scalarString(raw.GPA),
	}
	return nil
}

func scalarString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// ResumeData is the structured form of a resume produced by the parser.
type ResumeData struct {
	ID           string       `json:"id,omitempty"`
	PersonalInfo PersonalInfo `json:"personal_info"`
	Experience   []Experience `json:"experience"`
	Skills       Skills       `json:"skills"`
	Projects     []Project    `json:"projects"`
	Education    []Education  `json:"education"`
}

// Resume is a stored resume record.
type Resume struct {
	ID            string      `json:"id"`
	Filename      string      `json:"filename"`
	StoragePath   string      `json:"storage_path"`
	GitHubURL     string      `json:"github_url,omitempty"`
	ParsedData    ResumeData  `json:"parsed_data"`
	OptimizedData *ResumeData `json:"optimized_data,omitempty"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Current returns the optimized data when present, else the parsed data.
func (r *Resume) Current() ResumeData {
	if r.OptimizedData != nil {
		return *r.OptimizedData
	}
	return r.ParsedData
}

// ResumeUploadResponse is returned after a successful upload.
type ResumeUploadResponse struct {
	ID      string      `json:"id"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    *ResumeData `json:"data,omitempty"`
}
