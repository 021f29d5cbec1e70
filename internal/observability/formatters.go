// Package observability provides the structured logger and the formatted
// output used by CLI commands.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/arete/internal/skills"
	"github.com/jonathan/arete/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for CLI commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// writeList writes up to maxItemsToShow entries with a "more" marker.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
	sb.WriteString("\n")
}

// PrintSkillCategories outputs categorized skills in display order.
func (p *Printer) PrintSkillCategories(buckets map[skills.Category][]string) {
	if len(buckets) == 0 {
		p.printBox("SKILL CATEGORIES", "No skills found")
		return
	}

	var sb strings.Builder
	for _, cat := range skills.DisplayOrder() {
		if members := buckets[cat]; len(members) > 0 {
			fmt.Fprintf(&sb, "%s: %s\n", cat, strings.Join(members, ", "))
		}
	}
	p.printBox("SKILL CATEGORIES", sb.String())
}

// PrintResume outputs a summary of parsed resume data.
func (p *Printer) PrintResume(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", data.PersonalInfo.Name)
	if data.PersonalInfo.Email != "" {
		fmt.Fprintf(&sb, "Email:    %s\n", data.PersonalInfo.Email)
	}
	sb.WriteString("\n")

	roles := make([]string, 0, len(data.Experience))
	for _, exp := range data.Experience {
		roles = append(roles, fmt.Sprintf("%s @ %s", exp.Title, exp.Company))
	}
	writeList(&sb, "Experience", roles)
	writeList(&sb, "Technical Skills", data.Skills.Technical)

	projects := make([]string, 0, len(data.Projects))
	for _, proj := range data.Projects {
		projects = append(projects, proj.Name)
	}
	writeList(&sb, "Projects", projects)

	fmt.Fprintf(&sb, "Education entries: %d", len(data.Education))
	p.printBox("PARSED RESUME", sb.String())
}

// PrintJobAnalysis outputs a summary of an analysed job posting.
func (p *Printer) PrintJobAnalysis(job *types.JobAnalysis) {
	if job == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Company:  %s\n", job.Company)
	fmt.Fprintf(&sb, "Role:     %s\n", job.Title)
	if job.ExperienceLevel != "" {
		fmt.Fprintf(&sb, "Level:    %s\n", job.ExperienceLevel)
	}
	sb.WriteString("\n")

	writeList(&sb, "Required Skills", job.RequiredSkills)
	writeList(&sb, "Preferred Skills", job.PreferredSkills)
	writeList(&sb, "Technologies", job.Technologies)
	writeList(&sb, "Key Requirements", job.KeyRequirements)

	p.printBox("JOB ANALYSIS", sb.String())
}

// PrintATSScore outputs an ATS score breakdown.
func (p *Printer) PrintATSScore(score *types.ATSScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:  %d/100\n", score.OverallScore)
	fmt.Fprintf(&sb, "Keywords: %d/%d (%d%%)\n", score.KeywordMatch.Matched, score.KeywordMatch.Total, score.KeywordMatch.Percentage)
	fmt.Fprintf(&sb, "Sections: %d%%\n\n", score.SectionCompleteness)

	for _, s := range score.Sections {
		mark := "✗"
		if s.Present {
			mark = "✓"
		}
		fmt.Fprintf(&sb, "  %s %s\n", mark, s.Name)
	}
	sb.WriteString("\n")
	writeList(&sb, "Missing Keywords", score.KeywordMatch.MissingKeywords)
	writeList(&sb, "Recommendations", score.Recommendations)

	p.printBox("ATS SCORE", sb.String())
}

// PrintGitHubAnalysis outputs a GitHub profile summary.
func (p *Printer) PrintGitHubAnalysis(analysis *types.GitHubAnalysis) {
	if analysis == nil {
		return
	}

	m := analysis.ImpactMetrics
	var sb strings.Builder
	fmt.Fprintf(&sb, "Profile:  %s\n", analysis.ProfileURL)
	fmt.Fprintf(&sb, "Repos:    %d  Stars: %d  Forks: %d\n", m.TotalRepos, m.TotalStars, m.TotalForks)
	fmt.Fprintf(&sb, "Followers: %d\n\n", m.Followers)

	writeList(&sb, "Languages", analysis.TechStack.PrimaryLanguages)

	highlights := make([]string, 0, len(analysis.ProjectHighlights))
	for _, h := range analysis.ProjectHighlights {
		highlights = append(highlights, fmt.Sprintf("%s (%s)", h.Name, h.ImpactMetric))
	}
	writeList(&sb, "Top Projects", highlights)
	writeList(&sb, "Resume Bullets", analysis.ResumeBulletPoints)

	p.printBox("GITHUB ANALYSIS", sb.String())
}
