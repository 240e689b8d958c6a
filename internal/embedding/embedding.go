package embedding

import (
	"fmt"
	"os"

	"github.com/chuimeng/vecdex/internal/config"
)

// NewBackend creates an embedding backend client from configuration.
// API keys are read from the environment variable named in the config so
// secrets never live in the config file itself.
func NewBackend(cfg config.EmbeddingConfig) (Backend, error) {
	apiKey := ""
	if cfg.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
	}

	switch cfg.Provider {
	case "ollama":
		return NewOllamaBackend(cfg.Model, cfg.BaseURL)
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai backend requires an API key in $%s", cfg.APIKeyEnv)
		}
		return NewOpenAIBackend(apiKey, cfg.Model), nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini backend requires an API key in $%s", cfg.APIKeyEnv)
		}
		return NewGoogleBackend(apiKey, cfg.Model)
	case "huggingface":
		return NewHuggingFaceBackend(apiKey, cfg.Model, cfg.BaseURL), nil
	case "mock":
		return NewMockBackend(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
