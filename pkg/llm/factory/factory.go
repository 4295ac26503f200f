package factory

import (
	"fmt"

	"swift-assist-be/pkg/llm"
	"swift-assist-be/pkg/llm/huggingface"
	"swift-assist-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, apiKey, modelName, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
