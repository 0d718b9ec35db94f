package factory

import (
	"fmt"
	"strings"

	"docassist/pkg/llm"
	"docassist/pkg/llm/ollama"
	"docassist/pkg/llm/openai"
)

const ProviderNone = "none"

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

// NewLLMProvider returns nil, nil when no provider is configured; callers then
// answer extractively.
func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderNone:
		return nil, nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, orDefault(cfg.Model, "llama3")), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewProvider(cfg.APIKey, cfg.BaseURL, orDefault(cfg.Model, "gpt-3.5-turbo")), nil
	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("groq provider requires an API key")
		}
		return openai.NewProvider(cfg.APIKey, orDefault(cfg.BaseURL, openai.GroqBaseURL), orDefault(cfg.Model, "llama-3.1-8b-instant")), nil
	case "huggingface":
		return openai.NewProvider(cfg.APIKey, orDefault(cfg.BaseURL, openai.HuggingFaceBaseURL), cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
