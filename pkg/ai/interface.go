package ai

import "context"

// ChatProvider is the single contract every LLM backend implements.
// Implement this interface to add new providers (OpenAI, DeepSeek,
// OpenRouter, Ollama, ...); the orchestrator only ever sees this.
type ChatProvider interface {
	// CompleteChat sends a system+user prompt pair and returns the raw
	// response text. Expected failures come back as *ProviderError.
	CompleteChat(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

// ProviderType identifies an LLM backend
type ProviderType string

const (
	ProviderOpenAI     ProviderType = "openai"
	ProviderDeepSeek   ProviderType = "deepseek"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderOllama     ProviderType = "ollama"
	ProviderDemo       ProviderType = "demo"
)

// ProviderConfig is the resolved configuration for one provider instance
type ProviderConfig struct {
	Type    ProviderType
	APIKey  string
	BaseURL string // override; empty means the provider default
	Model   string // user-pinned default model, wins over routing remap
}
