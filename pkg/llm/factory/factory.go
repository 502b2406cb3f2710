package factory

import (
	"fmt"

	"mathclicks-be/pkg/llm"
	"mathclicks-be/pkg/llm/gemini"
	"mathclicks-be/pkg/llm/ollama"
)

// NewProvider builds the configured LLM backend.
func NewProvider(providerName, modelName, ollamaBaseURL, geminiAPIKey string) (llm.Provider, error) {
	switch providerName {
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(geminiAPIKey, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", providerName)
	}
}
