// Package textgen talks to the large-language-model providers that write plans
// and chat answers.
package textgen

import (
	"context"
	"errors"
	"fmt"

	"aifitness/planner/internal/config"
)

var (
	ErrGeneration      = errors.New("text generation failed")
	ErrEmptyResponse   = errors.New("model returned an empty response")
	ErrUnknownProvider = errors.New("unknown llm provider")
	ErrMissingAPIKey   = errors.New("llm api key is not configured")
)

// Generator produces a single completion for prompt, capped at maxTokens of output.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	groqBaseURL = "https://api.groq.com/openai/v1"
	groqModel   = "llama-3.3-70b-versatile"
	openAIModel = "gpt-4o-mini"
	geminiModel = "gemini-2.5-flash"
)

// New builds the generator configured in cfg, wrapped with retries.
func New(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var (
		gen Generator
		err error
	)
	switch cfg.Provider {
	case ProviderGroq, "":
		gen = NewOpenAIGenerator(cfg.APIKey, firstNonEmpty(cfg.BaseURL, groqBaseURL), firstNonEmpty(cfg.Model, groqModel))
	case ProviderOpenAI:
		gen = NewOpenAIGenerator(cfg.APIKey, cfg.BaseURL, firstNonEmpty(cfg.Model, openAIModel))
	case ProviderGemini:
		gen, err = NewGeminiGenerator(ctx, cfg.APIKey, firstNonEmpty(cfg.Model, geminiModel))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithRetry(gen, cfg.MaxRetries, cfg.Timeout, cfg.TotalTimeout), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
