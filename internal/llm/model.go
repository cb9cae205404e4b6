package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"betsense/internal/config"
)

// Model completes one prompt and returns the raw text of the reply.
type Model interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	Name() string
}

const (
	ProviderHeuristic = "heuristic"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

var ErrEmptyCompletion = errors.New("model returned no text")

// Credentials are read from the environment only.
type Credentials struct {
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
}

func LoadCredentials() (Credentials, error) {
	var c Credentials
	if err := env.Parse(&c); err != nil {
		return Credentials{}, fmt.Errorf("parse llm credentials: %w", err)
	}
	return c, nil
}

// New returns the configured model, or nil for the heuristic provider.
func New(cfg config.LLMConfig, creds Credentials) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderHeuristic:
		return nil, nil
	case ProviderAnthropic:
		if creds.AnthropicAPIKey == "" {
			return nil, errors.New("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
		return NewAnthropic(cfg, creds.AnthropicAPIKey), nil
	case ProviderOpenAI:
		if creds.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is required for the openai provider")
		}
		return NewOpenAI(cfg, creds.OpenAIAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func maxTokens(cfg config.LLMConfig) int64 {
	if cfg.MaxTokens <= 0 {
		return 1024
	}
	return cfg.MaxTokens
}
