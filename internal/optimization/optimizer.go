// Package optimization produces the resume optimization stream: an ATS score,
// keyword and experience suggestions, and interview questions. It also
// writes cover letters.
package optimization

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/arete/internal/ats"
	"github.com/jonathan/arete/internal/llm"
	"github.com/jonathan/arete/internal/types"
)

// Emitter receives stream frames in order. An Emitter error aborts the stream.
type Emitter func(types.OptimizationProgress) error

// Optimizer generates optimization suggestions with an LLM.
type Optimizer struct {
	client    llm.Client
	logger    *slog.Logger
	stepDelay time.Duration
}

// NewOptimizer creates an Optimizer. stepDelay paces the stream between
// frames; zero sends frames as soon as they are ready.
func NewOptimizer(client llm.Client, logger *slog.Logger, stepDelay time.Duration) *Optimizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Optimizer{client: client, logger: logger, stepDelay: stepDelay}
}

// Stream runs the optimization steps and emits a progress frame after each.
// Every frame carries the ATS score computed up front. If the context ends
// mid-stream an error frame is emitted and the context error returned.
func (o *Optimizer) Stream(ctx context.Context, resume *types.ResumeData, job *types.JobAnalysis, emit Emitter) error {
	score := ats.Calculate(resume, job)
	s := &stream{ctx: ctx, emit: emit, score: &score, delay: o.stepDelay}

	s.send(types.StepAnalyzing, 10, "Analyzing resume-job alignment...", nil)
	s.send(types.StepKeywords, 30, "Identifying missing keywords...", nil)

	var suggestions []types.OptimizationSuggestion
	if s.ok() {
		suggestions = append(suggestions, o.KeywordSuggestions(ctx, resume, job)...)
	}
	s.send(types.StepKeywords, 50, "Generated keyword suggestions", suggestions)
	s.send(types.StepExperience, 70, "Enhancing experience descriptions...", suggestions)

	if s.ok() {
		suggestions = append(suggestions, o.ExperienceSuggestions(ctx, resume, job)...)
	}
	s.send(types.StepExperience, 85, "Enhanced experience descriptions", suggestions)
	s.send(types.StepInterview, 92, "Generating interview preparation questions...", suggestions)

	var questions []types.InterviewQuestion
	if s.ok() {
		questions = o.InterviewQuestions(ctx, job)
	}
	s.finish(suggestions, questions)

	if s.err != nil {
		o.logger.Warn("optimization stream stopped", "error", s.err)
	}
	return s.err
}

// stream tracks the first failure so later steps become no-ops.
type stream struct {
	ctx     context.Context
	emit    Emitter
	score   *types.ATSScore
	delay   time.Duration
	sent    int
	err     error
	emitErr bool
}

func (s *stream) ok() bool {
	if s.err == nil {
		if err := s.ctx.Err(); err != nil {
			s.fail(err)
		}
	}
	return s.err == nil
}

func (s *stream) send(step string, progress int, message string, suggestions []types.OptimizationSuggestion) {
	s.write(types.OptimizationProgress{
		Step:        step,
		Progress:    progress,
		Message:     message,
		Suggestions: nonNil(suggestions),
		ATSScore:    s.score,
	})
}

func (s *stream) finish(suggestions []types.OptimizationSuggestion, questions []types.InterviewQuestion) {
	s.write(types.OptimizationProgress{
		Step:     types.StepComplete,
		Progress: 100,
		Message: fmt.Sprintf("Optimization complete! Generated %d suggestions and %d interview questions.",
			len(suggestions), len(questions)),
		Suggestions:        nonNil(suggestions),
		Completed:          true,
		ATSScore:           s.score,
		InterviewQuestions: nonNil(questions),
	})
}

func (s *stream) write(frame types.OptimizationProgress) {
	if s.sent > 0 && !s.pause() {
		return
	}
	if !s.ok() {
		return
	}
	if err := s.emit(frame); err != nil {
		s.emitErr = true
		s.fail(err)
		return
	}
	s.sent++
}

func (s *stream) pause() bool {
	if s.delay <= 0 {
		return true
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-s.ctx.Done():
		return s.ok()
	case <-timer.C:
		return true
	}
}

// fail records err and, unless the emitter itself failed, tells the client.
func (s *stream) fail(err error) {
	if s.err != nil {
		return
	}
	s.err = err
	if s.emitErr {
		return
	}
	_ = s.emit(types.OptimizationProgress{
		Step:        types.StepError,
		Message:     fmt.Sprintf("Optimization failed: %v", err),
		Suggestions: []types.OptimizationSuggestion{},
		ATSScore:    s.score,
	})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
