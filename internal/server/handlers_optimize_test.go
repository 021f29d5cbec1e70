package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/arete/internal/llm/llmtest"
	"github.com/jonathan/arete/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sseFrames splits an event-stream body into its data payloads.
func sseFrames(t *testing.T, body string) []string {
	t.Helper()
	var frames []string
	for _, chunk := range strings.Split(body, "\n\n") {
		if chunk == "" {
			continue
		}
		payload, ok := strings.CutPrefix(chunk, "data: ")
		require.True(t, ok, "frame without data prefix: %q", chunk)
		frames = append(frames, payload)
	}
	return frames
}

func TestHandleOptimize_Stream(t *testing.T) {
	env := newTestEnv(t)
	env.seedResume(t, "r1")
	env.seedJob(t, "j1")

	w := env.postJSON(t, "/optimize", types.OptimizationRequest{ResumeID: "r1", JobID: "j1"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	frames := sseFrames(t, w.Body.String())
	require.Len(t, frames, 8)
	assert.Equal(t, "[DONE]", frames[7])

	var steps []string
	var progress []int
	var last types.OptimizationProgress
	for _, f := range frames[:7] {
		var p types.OptimizationProgress
		require.NoError(t, json.Unmarshal([]byte(f), &p))
		require.NotNil(t, p.ATSScore, "every frame carries the score")
		steps = append(steps, p.Step)
		progress = append(progress, p.Progress)
		last = p
	}
	assert.Equal(t, []string{"analyzing", "keywords", "keywords", "experience", "experience", "interview", "complete"}, steps)
	assert.Equal(t, []int{10, 30, 50, 70, 85, 92, 100}, progress)

	assert.True(t, last.Completed)
	assert.Len(t, last.Suggestions, 2, "keyword and experience fallbacks")
	assert.Len(t, last.InterviewQuestions, 5)
	assert.Equal(t, "Optimization complete! Generated 2 suggestions and 5 interview questions.", last.Message)
	assert.Equal(t, []string{"go"}, last.ATSScore.KeywordMatch.MatchedKeywords)
}

func TestHandleOptimize_Lookups(t *testing.T) {
	tests := []struct {
		name     string
		seed     func(t *testing.T, env *testEnv)
		expected string
	}{
		{"both missing", func(*testing.T, *testEnv) {}, "Resume not found"},
		{"job missing", func(t *testing.T, env *testEnv) { env.seedResume(t, "r1") }, "Job analysis not found"},
		{"resume missing", func(t *testing.T, env *testEnv) { env.seedJob(t, "j1") }, "Resume not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.seed(t, env)

			w := env.postJSON(t, "/optimize", types.OptimizationRequest{ResumeID: "r1", JobID: "j1"})

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, tt.expected, decodeBody[map[string]string](t, w)["error"])
			assert.Empty(t, env.optimizerLLM.Calls())
		})
	}
}

func TestHandleOptimize_Validation(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON(t, "/optimize", map[string]string{"resume_id": "r1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation error: JobID - required", decodeBody[map[string]string](t, w)["error"])
}

func TestHandleSaveOptimization(t *testing.T) {
	env := newTestEnv(t)
	resume := env.seedResume(t, "r1")

	optimized := resume.ParsedData
	optimized.Skills.Technical = []string{"Go", "Python", "Kubernetes"}
	w := env.postJSON(t, "/optimize/save", types.SaveOptimizationRequest{ResumeID: "r1", OptimizedData: optimized})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, map[string]string{"status": "success", "message": "Optimization saved"}, decodeBody[map[string]string](t, w))

	stored, err := env.store.GetResume(context.Background(), "r1")
	require.NoError(t, err)
	require.NotNil(t, stored.OptimizedData)
	assert.Equal(t, []string{"Go", "Python", "Kubernetes"}, stored.OptimizedData.Skills.Technical)
	assert.Equal(t, []string{"Go", "Python"}, stored.ParsedData.Skills.Technical)

	w = env.postJSON(t, "/optimize/save", types.SaveOptimizationRequest{ResumeID: "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resume not found", decodeBody[map[string]string](t, w)["error"])
}

func TestHandleCoverLetter(t *testing.T) {
	env := newTestEnv(t, func(e *testEnv) {
		e.optimizerLLM = llmtest.New("  Dear Hiring Manager,\n\nI am excited to apply.  ")
	})
	env.seedResume(t, "r1")
	env.seedJob(t, "j1")

	w := env.postJSON(t, "/optimize/cover-letter", types.CoverLetterRequest{ResumeID: "r1", JobID: "j1"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[types.CoverLetterResponse](t, w)
	assert.Equal(t, "Dear Hiring Manager,\n\nI am excited to apply.", resp.CoverLetter)
	assert.True(t, resp.GeneratedAt.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))

	calls := env.optimizerLLM.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Jane Doe")
	assert.Contains(t, calls[0].Prompt, "Backend Engineer")
	assert.Contains(t, calls[0].Prompt, "Globex")
}

func TestHandleCoverLetter_Failures(t *testing.T) {
	env := newTestEnv(t, func(e *testEnv) { e.optimizerLLM = llmtest.New("   ") })
	env.seedResume(t, "r1")
	env.seedJob(t, "j1")

	w := env.postJSON(t, "/optimize/cover-letter", types.CoverLetterRequest{ResumeID: "r1", JobID: "j1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeBody[map[string]string](t, w)["error"], "cover letter generation failed")

	w = env.postJSON(t, "/optimize/cover-letter", types.CoverLetterRequest{ResumeID: "r1", JobID: "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job analysis not found", decodeBody[map[string]string](t, w)["error"])
}
