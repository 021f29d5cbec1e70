package llm

import (
	"context"
	"fmt"
)

// Client is the provider-neutral model API used by every service.
type Client interface {
	// GenerateContent returns the model's free-text answer.
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON asks for JSON and strips code fences and surrounding
	// chatter from the answer. The result is not validated.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	GetModel(tier ModelTier) string
	Close() error
}

// temperature is shared by every provider; extraction wants repeatable output.
const temperature = 0.1

// NewClient builds the client for config.Provider. A nil config selects
// DefaultConfig.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderAnthropic:
		return NewAnthropicClient(config, apiKey)
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, config.Provider)
	}
}
