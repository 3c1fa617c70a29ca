package llm

import (
	"context"
	"fmt"

	"github.com/sant0-9/answergpt/internal/config"
)

// NewProvider creates a provider from config
func NewProvider(ctx context.Context, cfg *config.Config, opts ...Option) (Provider, error) {
	opts = append([]Option{WithTimeout(cfg.Timeout())}, opts...)
	if cfg.BaseURL != "" && cfg.Provider != "ollama" && cfg.Provider != "custom" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}

	if config.KeyRequired(cfg.Provider) && cfg.APIKey == "" && config.GetProvider(cfg.Provider) != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrMissingAPIKey)
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, opts...), nil

	case "groq":
		return NewGroqProvider(cfg.APIKey, cfg.Model, opts...), nil

	case "openrouter":
		return NewOpenRouterProvider(cfg.APIKey, cfg.Model, opts...), nil

	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey, cfg.Model, opts...), nil

	case "gemini":
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, opts...)

	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, cfg.Model, opts...), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCustomProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, opts...), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
