package export

import (
	"context"
	"strings"

	"github.com/jonathan/arete/internal/skills"
	"github.com/jonathan/arete/internal/types"
)

// Document is a resume laid out for rendering: contact details joined, skills
// categorized and education flattened to display lines.
type Document struct {
	Name       string
	Contact    string
	Experience []types.Experience
	Skills     []SkillLine
	Projects   []types.Project
	Education  []EducationLine
}

// SkillLine is one category of the skills section.
type SkillLine struct {
	Category string
	Skills   []string
}

// String renders the line as "Category: a, b, c".
func (l SkillLine) String() string {
	return l.Category + ": " + l.Joined()
}

// Joined returns the skills separated by commas.
func (l SkillLine) Joined() string {
	return strings.Join(l.Skills, ", ")
}

// EducationLine is one degree, as "degree - institution (year)" plus an
// optional GPA.
type EducationLine struct {
	Heading string
	GPA     string
}

// NewDocument prepares data for rendering. Skills from every technical group
// are categorized together and listed in display order.
func NewDocument(ctx context.Context, data *types.ResumeData, categorizer *skills.Categorizer) (*Document, error) {
	buckets, err := categorizer.Categorize(ctx, data.Skills.Groups())
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Name:       strings.TrimSpace(data.PersonalInfo.Name),
		Contact:    contactLine(data.PersonalInfo),
		Experience: data.Experience,
		Projects:   data.Projects,
	}
	for _, c := range skills.DisplayOrder() {
		if items := buckets[c]; len(items) > 0 {
			doc.Skills = append(doc.Skills, SkillLine{Category: c.String(), Skills: items})
		}
	}
	for _, edu := range data.Education {
		if line, ok := educationLine(edu); ok {
			doc.Education = append(doc.Education, line)
		}
	}
	return doc, nil
}

func contactLine(info types.PersonalInfo) string {
	return joinNonEmpty(" | ", info.Email, info.Phone, info.Location)
}

func educationLine(edu types.Education) (EducationLine, bool) {
	heading := joinNonEmpty(" - ", edu.Degree, edu.Institution)
	if heading == "" {
		return EducationLine{}, false
	}

	if year := strings.TrimSpace(edu.GraduationYear); year != "" {
		heading += " (" + year + ")"
	}
	line := EducationLine{Heading: heading}
	if gpa := strings.TrimSpace(edu.GPA); gpa != "" {
		line.GPA = "GPA: " + gpa
	}
	return line, true
}

// joinNonEmpty joins the trimmed, non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
