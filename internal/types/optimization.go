package types

import "time"

// Optimization step names, in stream order.
const (
	StepAnalyzing  = "analyzing"
	StepKeywords   = "keywords"
	StepExperience = "experience"
	StepInterview  = "interview"
	StepComplete   = "complete"
	StepError      = "error"
)

// OptimizationRequest pairs a stored resume with a stored job analysis.
type OptimizationRequest struct {
	ResumeID string `json:"resume_id" validate:"required"`
	JobID    string `json:"job_id" validate:"required"`
}

// SaveOptimizationRequest stores an edited resume as its optimized version.
type SaveOptimizationRequest struct {
	ResumeID      string     `json:"resume_id" validate:"required"`
	OptimizedData ResumeData `json:"optimized_data"`
}

// CoverLetterRequest asks for a cover letter for a resume and job.
type CoverLetterRequest = OptimizationRequest

// CoverLetterResponse carries a generated cover letter.
type CoverLetterResponse struct {
	CoverLetter string    `json:"cover_letter"`
	GeneratedAt time.Time `json:"generated_at"`
}

// OptimizationSuggestion is one proposed resume edit.
type OptimizationSuggestion struct {
	Section   string `json:"section"`
	Type      string `json:"type"`
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
	Reason    string `json:"reason"`
	Impact    string `json:"impact"`
}

// KeywordMatchScore summarises how many job keywords the resume contains.
type KeywordMatchScore struct {
	Matched         int      `json:"matched"`
	Total           int      `json:"total"`
	Percentage      int      `json:"percentage"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// SectionScore reports whether a resume section is present.
type SectionScore struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
	Score   int    `json:"score"`
}

// ATSScore estimates how well a resume will pass applicant tracking systems.
type ATSScore struct {
	OverallScore        int               `json:"overall_score"`
	KeywordMatch        KeywordMatchScore `json:"keyword_match"`
	SectionCompleteness int               `json:"section_completeness"`
	Sections            []SectionScore    `json:"sections"`
	Recommendations     []string          `json:"recommendations"`
}

// InterviewQuestion is a preparation question with answering tips.
type InterviewQuestion struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Tips     string `json:"tips"`
}

// OptimizationProgress is one frame of the optimization stream.
type OptimizationProgress struct {
	Step               string                   `json:"step"`
	Progress           int                      `json:"progress"`
	Message            string                   `json:"message"`
	Suggestions        []OptimizationSuggestion `json:"suggestions"`
	Completed          bool                     `json:"completed"`
	ATSScore           *ATSScore                `json:"ats_score,omitempty"`
	InterviewQuestions []InterviewQuestion      `json:"interview_questions,omitempty"`
}
