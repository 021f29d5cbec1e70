package skills

import "slices"

// Correct moves skills out of categories that are known to be wrong for them.
// A relocated skill goes to its exact-table category, or to Other when the
// table has no entry. The input is not modified. Applying Correct to its own
// output changes nothing.
func Correct(buckets map[Category][]string) map[Category][]string {
	out := make(map[Category][]string, len(buckets))
	for _, c := range orderedKeys(buckets) {
		excluded, hasExclusions := exclusions[c]
		for _, skill := range buckets[c] {
			target := c
			if hasExclusions && excluded.has(key(skill)) {
				target = relocate(skill)
			}
			out[target] = append(out[target], skill)
		}
	}
	return out
}

func relocate(skill string) Category {
	if c, ok := exactCategory(key(skill)); ok {
		return c
	}
	return Other
}

// orderedKeys returns bucket keys in display order, followed by any
// non-canonical keys in lexical order.
func orderedKeys(buckets map[Category][]string) []Category {
	keys := make([]Category, 0, len(buckets))
	for _, c := range displayOrder {
		if _, ok := buckets[c]; ok {
			keys = append(keys, c)
		}
	}
	var extra []Category
	for c := range buckets {
		if !c.Valid() {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}
