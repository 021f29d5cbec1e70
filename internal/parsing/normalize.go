package parsing

import (
	"strings"

	"github.com/jonathan/arete/internal/types"
)

// nullish are placeholder strings models copy from the prompt's example
// structure instead of leaving a field empty.
var nullish = map[string]bool{
	"null": true,
	"none": true,
	"n/a":  true,
}

// normalizeResume trims every text field, blanks placeholder values and
// drops empty or duplicate list entries.
func normalizeResume(data *types.ResumeData) {
	info := &data.PersonalInfo
	for _, field := range []*string{&info.Name, &info.Email, &info.Phone, &info.Location, &info.GitHub, &info.LinkedIn} {
		*field = cleanField(*field)
	}

	for i := range data.Experience {
		exp := &data.Experience[i]
		exp.Title = cleanField(exp.Title)
		exp.Company = cleanField(exp.Company)
		exp.Duration = cleanField(exp.Duration)
		exp.Description = NormalizeList(exp.Description)
		exp.Technologies = NormalizeList(exp.Technologies)
	}

	skills := &data.Skills
	skills.Technical = NormalizeList(skills.Technical)
	skills.Frameworks = NormalizeList(skills.Frameworks)
	skills.Tools = NormalizeList(skills.Tools)
	skills.Languages = NormalizeList(skills.Languages)
	skills.SoftSkills = NormalizeList(skills.SoftSkills)

	for i := range data.Projects {
		proj := &data.Projects[i]
		proj.Name = cleanField(proj.Name)
		proj.Description = cleanField(proj.Description)
		proj.GitHubURL = cleanField(proj.GitHubURL)
		proj.Technologies = NormalizeList(proj.Technologies)
		proj.ImpactMetrics = NormalizeList(proj.ImpactMetrics)
	}

	for i := range data.Education {
		edu := &data.Education[i]
		edu.Degree = cleanField(edu.Degree)
		edu.Institution = cleanField(edu.Institution)
		edu.GraduationYear = cleanField(edu.GraduationYear)
		edu.GPA = cleanField(edu.GPA)
	}
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if nullish[strings.ToLower(s)] {
		return ""
	}
	return s
}

// NormalizeList trims entries and removes empty values and case-insensitive
// duplicates, keeping the first spelling seen. The result is never nil.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = cleanField(item)
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
