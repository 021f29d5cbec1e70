package skills

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"strings"
)

// Categorizer groups resume skills into categories. It is safe for
// concurrent use.
type Categorizer struct {
	classifier Classifier
	logger     *slog.Logger
}

// NewCategorizer returns a Categorizer. A nil classifier sends every skill the
// quick table cannot place to Other; a nil logger discards log output.
func NewCategorizer(classifier Classifier, logger *slog.Logger) *Categorizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Categorizer{classifier: classifier, logger: logger}
}

// Categorize flattens the skill groups, normalizes and deduplicates them, and
// returns them bucketed by category. Each bucket is sorted case-insensitively
// and empty buckets are omitted.
//
// Classifier failures are logged and the affected skills land in Other; the
// only error returned is ctx's, when the context is done.
func (c *Categorizer) Categorize(ctx context.Context, groups map[string][]string) (map[Category][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unique := flatten(groups)

	buckets := make(map[Category][]string)
	var unknown []string
	for _, skill := range unique {
		if cat, ok := QuickCategorize(skill); ok {
			buckets[cat] = append(buckets[cat], skill)
		} else {
			unknown = append(unknown, skill)
		}
	}

	if len(unknown) > 0 {
		classified, err := c.classify(ctx, unknown)
		if err != nil {
			return nil, err
		}
		for cat, members := range classified {
			buckets[cat] = append(buckets[cat], members...)
		}
	}

	return finalize(Correct(buckets)), nil
}

// classify runs the external classifier over the batch and maps its answer
// back onto the batch. Only a done context is reported as an error.
func (c *Categorizer) classify(ctx context.Context, batch []string) (map[Category][]string, error) {
	if c.classifier == nil {
		return map[Category][]string{Other: batch}, nil
	}

	raw, err := c.classifier.Classify(ctx, batch)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("skill classifier failed, using Other",
			slog.Int("skills", len(batch)),
			slog.String("error", err.Error()))
		return map[Category][]string{Other: batch}, nil
	}

	pending := make(map[string]string, len(batch))
	for _, skill := range batch {
		pending[key(skill)] = skill
	}

	out := make(map[Category][]string)
	for _, name := range sortedKeys(raw) {
		cat := ResolveCategory(name)
		for _, returned := range raw[name] {
			k := key(Normalize(returned))
			skill, ok := pending[k]
			if !ok {
				continue
			}
			delete(pending, k)
			out[cat] = append(out[cat], skill)
		}
	}

	if len(pending) > 0 {
		var omitted []string
		for _, skill := range batch {
			if _, ok := pending[key(skill)]; ok {
				omitted = append(omitted, skill)
			}
		}
		c.logger.Debug("classifier omitted skills", slog.Int("count", len(omitted)))
		out[Other] = append(out[Other], omitted...)
	}
	return out, nil
}

// flatten normalizes every skill and keeps the first occurrence of each
// case-insensitive name. Groups are visited in name order.
func flatten(groups map[string][]string) []string {
	seen := make(map[string]struct{})
	var unique []string
	for _, name := range sortedKeys(groups) {
		for _, raw := range groups[name] {
			skill := Normalize(raw)
			if skill == "" {
				continue
			}
			k := key(skill)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			unique = append(unique, skill)
		}
	}
	return unique
}

func finalize(buckets map[Category][]string) map[Category][]string {
	out := make(map[Category][]string, len(buckets))
	for cat, members := range buckets {
		seen := make(map[string]struct{}, len(members))
		var kept []string
		for _, skill := range members {
			k := key(skill)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			kept = append(kept, skill)
		}
		if len(kept) == 0 {
			continue
		}
		slices.SortStableFunc(kept, func(a, b string) int {
			return strings.Compare(strings.ToLower(a), strings.ToLower(b))
		})
		out[cat] = kept
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
