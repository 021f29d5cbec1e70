// Package ats estimates how well a resume matches a job for applicant
// tracking systems.
package ats

import (
	"fmt"
	"strings"

	"github.com/jonathan/arete/internal/types"
)

// Score weights. The base is awarded to any resume that parsed.
const (
	keywordWeight = 0.5
	sectionWeight = 0.3
	baseScore     = 20

	keywordListLimit    = 10
	recommendationLimit = 5
	lowKeywordThreshold = 60
	wellOptimizedScore  = 80
)

// ExistingSkills returns the lower-cased, trimmed skills listed on a resume.
// Frameworks are not part of the set.
func ExistingSkills(resume *types.ResumeData) map[string]bool {
	existing := make(map[string]bool)
	for _, group := range [][]string{
		resume.Skills.Technical,
		resume.Skills.SoftSkills,
		resume.Skills.Tools,
		resume.Skills.Languages,
	} {
		for _, skill := range group {
			if k := key(skill); k != "" {
				existing[k] = true
			}
		}
	}
	return existing
}

// Missing lists the job skills absent from a resume, per job field.
type Missing struct {
	RequiredSkills []string
	Technologies   []string
}

// Empty reports whether nothing is missing.
func (m Missing) Empty() bool {
	return len(m.RequiredSkills) == 0 && len(m.Technologies) == 0
}

// MissingSkills returns the required skills and technologies of job that are
// not in existing, keeping the job's spelling.
func MissingSkills(job *types.JobAnalysis, existing map[string]bool) Missing {
	var m Missing
	for _, skill := range job.RequiredSkills {
		if !existing[key(skill)] {
			m.RequiredSkills = append(m.RequiredSkills, skill)
		}
	}
	for _, tech := range job.Technologies {
		if !existing[key(tech)] {
			m.Technologies = append(m.Technologies, tech)
		}
	}
	return m
}

// Calculate scores resume against job. Keyword coverage carries half the
// weight, section completeness 30%, and 20 points are awarded as a base.
func Calculate(resume *types.ResumeData, job *types.JobAnalysis) types.ATSScore {
	existing := ExistingSkills(resume)

	keywords := jobKeywords(job)
	matched := make([]string, 0, len(keywords))
	missing := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if existing[kw] {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	total := max(len(keywords), 1)
	keywordPct := percent(len(matched), total)

	sections := []types.SectionScore{
		section("Contact Info", strings.TrimSpace(resume.PersonalInfo.Email) != ""),
		section("Experience", len(resume.Experience) > 0),
		section("Skills", len(existing) > 0),
		section("Education", len(resume.Education) > 0),
		section("Projects", len(resume.Projects) > 0),
	}
	present := 0
	for _, s := range sections {
		if s.Present {
			present++
		}
	}
	completeness := percent(present, len(sections))

	overall := int(float64(keywordPct)*keywordWeight + float64(completeness)*sectionWeight + baseScore)
	overall = min(100, max(0, overall))

	return types.ATSScore{
		OverallScore: overall,
		KeywordMatch: types.KeywordMatchScore{
			Matched:         len(matched),
			Total:           total,
			Percentage:      keywordPct,
			MatchedKeywords: limit(matched, keywordListLimit),
			MissingKeywords: limit(missing, keywordListLimit),
		},
		SectionCompleteness: completeness,
		Sections:            sections,
		Recommendations:     recommendations(resume, keywordPct, completeness, len(missing)),
	}
}

// percent truncates part/whole*100 computed in floating point, so 29 of 50
// scores 57 rather than the exact 58.
func percent(part, whole int) int {
	return int(float64(part) / float64(whole) * 100)
}

func recommendations(resume *types.ResumeData, keywordPct, completeness, missing int) []string {
	var recs []string
	if keywordPct < lowKeywordThreshold {
		recs = append(recs, fmt.Sprintf("Add %d missing keywords to improve ATS matching", missing))
	}
	if strings.TrimSpace(resume.PersonalInfo.Email) == "" {
		recs = append(recs, "Add contact email for recruiter follow-up")
	}
	if len(resume.Experience) == 0 {
		recs = append(recs, "Add work experience section")
	}
	if len(resume.Projects) == 0 {
		recs = append(recs, "Add projects to showcase technical skills")
	}
	if keywordPct >= wellOptimizedScore && completeness >= wellOptimizedScore {
		recs = append(recs, "Resume is well-optimized for ATS systems")
	}
	if recs == nil {
		return []string{}
	}
	return limit(recs, recommendationLimit)
}

// jobKeywords returns the distinct lower-cased required skills and
// technologies in first-seen order.
func jobKeywords(job *types.JobAnalysis) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, group := range [][]string{job.RequiredSkills, job.Technologies} {
		for _, kw := range group {
			kw = key(kw)
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func section(name string, present bool) types.SectionScore {
	score := 0
	if present {
		score = 100
	}
	return types.SectionScore{Name: name, Present: present, Score: score}
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func limit(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
