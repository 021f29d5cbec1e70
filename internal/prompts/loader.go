// Package prompts holds the LLM prompt templates used by resume parsing, job
// analysis, skill classification, optimization and GitHub analysis.
//
// Each JSON file maps a prompt key to a template with {{.Name}} placeholders.
// Files are embedded at compile time and decoded once on first use.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

type catalog struct {
	mu    sync.Mutex
	files map[string]map[string]string
}

var templates = &catalog{files: make(map[string]map[string]string)}

// file returns the decoded prompt file, reading it on first request.
func (c *catalog) file(name string) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entries, ok := c.files[name]; ok {
		return entries, nil
	}
	raw, err := promptFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
	}
	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
	}
	c.files[name] = entries
	return entries, nil
}

// Get returns the raw template stored under key in filename ("jobs.json").
func Get(filename, key string) (string, error) {
	entries, err := templates.file(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return tmpl, nil
}

// Render fills every placeholder of a template. A placeholder with no entry
// in data is an error; values are inserted verbatim and never re-expanded.
func Render(filename, key string, data map[string]string) (string, error) {
	tmpl, err := Get(filename, key)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, name := range Unfilled(tmpl) {
		if _, ok := data[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt %s/%s: no value for %s", filename, key, strings.Join(missing, ", "))
	}
	return Format(tmpl, data), nil
}

// Format substitutes {{.Key}} placeholders in a single pass. Placeholders
// without a value are left as they are.
func Format(tmpl string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for _, name := range sortedKeys(data) {
		pairs = append(pairs, "{{."+name+"}}", data[name])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Unfilled reports the placeholders in s, in order of appearance.
func Unfilled(s string) []string {
	var names []string
	for rest := s; ; {
		start := strings.Index(rest, "{{.")
		if start < 0 {
			return names
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			return names
		}
		names = append(names, rest[start+3:start+end])
		rest = rest[start+end+2:]
	}
}

// List returns the prompt keys in a file, sorted.
func List(filename string) ([]string, error) {
	entries, err := templates.file(filename)
	if err != nil {
		return nil, err
	}
	return sortedKeys(entries), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
