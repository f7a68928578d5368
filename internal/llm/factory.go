package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a new provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "", "none":
		// No provider configured - deterministic fallbacks only
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
