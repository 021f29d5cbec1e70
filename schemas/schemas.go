// Package schemas embeds the JSON Schema documents that LLM output is
// validated against.
package schemas

import "embed"

// Schema file names.
const (
	Resume      = "resume.schema.json"
	JobAnalysis = "job_analysis.schema.json"
)

//go:embed *.schema.json
var FS embed.FS
