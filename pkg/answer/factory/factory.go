package factory

import (
	"fmt"
	"time"

	"askn7-backend/pkg/answer"
	"askn7-backend/pkg/answer/ollama"
)

func NewProvider(providerType, defaultModel, baseURL string, timeout time.Duration) (answer.Provider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, defaultModel, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported answer provider: %s", providerType)
	}
}
