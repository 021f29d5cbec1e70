package skills

// QuickCategorize places a skill using the static table alone.
//
// An exact match in any category wins first. Failing that, the first category
// (in declaration order) holding a token of more than two characters that
// occurs inside the skill wins. The substring pass is order dependent:
// "postgresql-db" lands in Languages because "sql" is checked before the
// Databases tokens.
func QuickCategorize(skill string) (Category, bool) {
	k := key(skill)
	if k == "" {
		return "", false
	}
	if c, ok := exactCategory(k); ok {
		return c, true
	}
	for _, rule := range categoryRules {
		if _, ok := rule.tokens.containedIn(k); ok {
			return rule.category, true
		}
	}
	return "", false
}

// exactCategory looks a lower-cased token up in the table without the
// substring fallback.
func exactCategory(k string) (Category, bool) {
	for _, rule := range categoryRules {
		if rule.tokens.has(k) {
			return rule.category, true
		}
	}
	return "", false
}
