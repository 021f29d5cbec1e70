// Package llm hides the model providers behind one Client interface.
// Callers ask for a capability tier; the provider configuration decides which
// concrete model serves it.
package llm

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// ModelTier selects how capable (and expensive) a model a call needs.
type ModelTier string

const (
	// TierLite serves short classification calls: skill buckets, tech stack guesses.
	TierLite ModelTier = "lite"
	// TierStandard serves structured extraction: resumes, job postings, suggestions.
	TierStandard ModelTier = "standard"
	// TierAdvanced serves long-form writing such as cover letters.
	TierAdvanced ModelTier = "advanced"
)

// Provider names a model vendor.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// ErrUnknownProvider is returned for provider names with no client.
var ErrUnknownProvider = errors.New("unknown llm provider")

var defaultModels = map[Provider]map[ModelTier]string{
	ProviderAnthropic: {
		TierLite:     "claude-haiku-4-5",
		TierStandard: "claude-sonnet-4-5",
		TierAdvanced: "claude-sonnet-4-5",
	},
	ProviderGemini: {
		TierLite:     "gemini-2.5-flash-lite",
		TierStandard: "gemini-2.5-flash",
		TierAdvanced: "gemini-2.5-pro",
	},
}

// Config maps tiers to model names for one provider.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// ParseProvider accepts "anthropic" (or "claude") and "gemini", in any case.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case ProviderAnthropic, "claude":
		return ProviderAnthropic, nil
	case ProviderGemini:
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// DefaultConfig is the Claude configuration.
func DefaultConfig() *Config {
	return providerConfig(ProviderAnthropic)
}

// ConfigFor returns the default models for a provider name. Names that
// ParseProvider rejects get DefaultConfig.
func ConfigFor(name string) *Config {
	p, err := ParseProvider(name)
	if err != nil {
		return DefaultConfig()
	}
	return providerConfig(p)
}

func providerConfig(p Provider) *Config {
	return &Config{Provider: p, Models: maps.Clone(defaultModels[p])}
}

// GetModel returns the model for tier. A tier without an entry falls back to
// the standard model and then the lite one; "" means nothing is configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model := c.Models[t]; model != "" {
			return model
		}
	}
	return ""
}
