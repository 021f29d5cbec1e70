// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/arete/internal/llm"
)

// Call records one request made against a Client.
type Call struct {
	Prompt string
	Tier   llm.ModelTier
	JSON   bool
}

// Client replays Responses in order. Once they run out the last response is
// repeated. Err, when set, is returned from every call instead.
type Client struct {
	Responses []string
	Err       error

	mu    sync.Mutex
	calls []Call
}

var _ llm.Client = (*Client)(nil)

// New returns a Client that answers with the given responses.
func New(responses ...string) *Client {
	return &Client{Responses: responses}
}

// Failing returns a Client whose every call fails with err.
func Failing(err error) *Client {
	return &Client{Err: err}
}

func (c *Client) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.next(ctx, Call{Prompt: prompt, Tier: tier})
}

func (c *Client) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	text, err := c.next(ctx, Call{Prompt: prompt, Tier: tier, JSON: true})
	if err != nil {
		return "", err
	}
	return llm.CleanJSONBlock(text), nil
}

func (c *Client) GetModel(tier llm.ModelTier) string {
	return "fake-" + string(tier)
}

func (c *Client) Close() error { return nil }

// Calls returns a copy of the recorded calls.
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

func (c *Client) next(ctx context.Context, call Call) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := len(c.calls)
	c.calls = append(c.calls, call)

	if c.Err != nil {
		return "", c.Err
	}
	if len(c.Responses) == 0 {
		return "", fmt.Errorf("llmtest: no scripted response for call %d", idx)
	}
	if idx >= len(c.Responses) {
		idx = len(c.Responses) - 1
	}
	return c.Responses[idx], nil
}
