package llm

import (
	"fmt"
	"strings"

	"github.com/mkarpov/rolefinder/internal/model"
)

// NewProvider builds the configured summary provider. An empty provider
// name returns (nil, nil): summaries disabled.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)

	case "ollama":
		// Ollama exposes an OpenAI-compatible endpoint; reuse the
		// OpenAI client pointed at the local base URL.
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:11434/v1"
		}
		if cfg.APIKey == "" {
			cfg.APIKey = "ollama"
		}
		return NewOpenAIProvider(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown llm provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}
