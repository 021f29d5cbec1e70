package types

// GitHubAnalyzeRequest names the GitHub user to analyse.
type GitHubAnalyzeRequest struct {
	Username string `json:"username" validate:"required,max=39"`
}

// Repository is a summarised GitHub repository.
type Repository struct {
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Stars       int            `json:"stars"`
	Forks       int            `json:"forks"`
	Language    *string        `json:"language"`
	Languages   map[string]int `json:"languages"`
	URL         string         `json:"url"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	Size        int            `json:"size"`
}

// ImpactMetrics aggregates a profile's reach.
type ImpactMetrics struct {
	TotalStars            int `json:"total_stars"`
	TotalForks            int `json:"total_forks"`
	TotalRepos            int `json:"total_repos"`
	PublicRepos           int `json:"public_repos"`
	Followers             int `json:"followers"`
	Following             int `json:"following"`
	ContributionsLastYear int `json:"contributions_last_year"`
}

// TechStack lists the languages and related technologies of a profile.
type TechStack struct {
	PrimaryLanguages []string `json:"primary_languages"`
	Frameworks       []string `json:"frameworks"`
	Tools            []string `json:"tools"`
}

// ProjectHighlight is a resume-ready summary of a repository.
type ProjectHighlight struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ImpactMetric string   `json:"impact_metric"`
	TechStack    []string `json:"tech_stack"`
	URL          string   `json:"url"`
}

// GitHubAnalysis is the full analysis of a GitHub profile.
type GitHubAnalysis struct {
	Username           string             `json:"username"`
	ProfileURL         string             `json:"profile_url"`
	ImpactMetrics      ImpactMetrics      `json:"impact_metrics"`
	TechStack          TechStack          `json:"tech_stack"`
	TopRepositories    []Repository       `json:"top_repositories"`
	ProjectHighlights  []ProjectHighlight `json:"project_highlights"`
	ResumeBulletPoints []string           `json:"resume_bullet_points"`
}
