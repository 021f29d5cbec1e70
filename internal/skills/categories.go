// Package skills normalizes free-text skill names and groups them into a fixed
// set of resume categories.
//
// Classification is two-tier: a static quick-match table handles well-known
// skills, and anything it cannot place is sent to an external Classifier in a
// single batch. A deterministic correction pass runs afterwards.
package skills

import (
	"slices"
	"strings"
)

// Category is one of the seven resume skill buckets.
type Category string

// Categories in declaration order. The order drives both quick-match passes
// and the order in which exported documents render skill groups.
const (
	Languages   Category = "Languages"
	Frontend    Category = "Frontend"
	Backend     Category = "Backend"
	Databases   Category = "Databases"
	CloudDevOps Category = "Cloud & DevOps"
	Tools       Category = "Tools"
	Other       Category = "Other"
)

var displayOrder = []Category{Languages, Frontend, Backend, Databases, CloudDevOps, Tools, Other}

// DisplayOrder returns all categories in their preferred rendering order.
func DisplayOrder() []Category {
	return slices.Clone(displayOrder)
}

// Valid reports whether c is one of the canonical categories.
func (c Category) Valid() bool {
	return slices.Contains(displayOrder, c)
}

func (c Category) String() string {
	return string(c)
}

// categorySynonyms maps lower-cased names an LLM tends to invent onto the
// canonical categories.
var categorySynonyms = map[string]Category{
	"language":              Languages,
	"programming language":  Languages,
	"programming languages": Languages,
	"front-end":             Frontend,
	"front end":             Frontend,
	"frontend frameworks":   Frontend,
	"back-end":              Backend,
	"back end":              Backend,
	"backend frameworks":    Backend,
	"database":              Databases,
	"data stores":           Databases,
	"datastores":            Databases,
	"cloud":                 CloudDevOps,
	"devops":                CloudDevOps,
	"cloud/devops":          CloudDevOps,
	"cloud and devops":      CloudDevOps,
	"cloud & devops":        CloudDevOps,
	"infrastructure":        CloudDevOps,
	"tool":                  Tools,
	"developer tools":       Tools,
	"misc":                  Other,
	"miscellaneous":         Other,
}

// ResolveCategory maps a free-form category name onto a canonical Category.
// Unrecognized names resolve to Other.
func ResolveCategory(name string) Category {
	trimmed := strings.TrimSpace(name)
	for _, c := range displayOrder {
		if strings.EqualFold(trimmed, string(c)) {
			return c
		}
	}
	if c, ok := categorySynonyms[strings.ToLower(trimmed)]; ok {
		return c
	}
	return Other
}

// tokenSet is an immutable set of lower-cased tokens that remembers its
// declaration order for the substring pass.
type tokenSet struct {
	ordered []string
	members map[string]struct{}
}

func newTokenSet(tokens ...string) tokenSet {
	s := tokenSet{
		ordered: make([]string, 0, len(tokens)),
		members: make(map[string]struct{}, len(tokens)),
	}
	for _, t := range tokens {
		if _, dup := s.members[t]; dup {
			continue
		}
		s.ordered = append(s.ordered, t)
		s.members[t] = struct{}{}
	}
	return s
}

func (s tokenSet) has(token string) bool {
	_, ok := s.members[token]
	return ok
}

// containedIn returns the first token longer than two characters that occurs
// inside text.
func (s tokenSet) containedIn(text string) (string, bool) {
	for _, t := range s.ordered {
		if len(t) > 2 && strings.Contains(text, t) {
			return t, true
		}
	}
	return "", false
}

type categoryRule struct {
	category Category
	tokens   tokenSet
}
