package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseDSN string

	// Provider credentials (environment-level fallback when no provider
	// settings row is active)
	OpenAIAPIKey     string
	DeepSeekAPIKey   string
	OpenRouterAPIKey string
	OllamaBaseURL    string
	OllamaModel      string

	// DefaultProvider is used when no routing override or active provider
	// setting exists
	DefaultProvider string

	// DemoMode forces the deterministic offline provider regardless of keys
	DemoMode bool

	AnalysisWorkers int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=mailpilot port=5432 sslmode=disable"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		DeepSeekAPIKey:   getEnv("DEEPSEEK_API_KEY", ""),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "llama3"),
		DefaultProvider:  getEnv("AI_PROVIDER", ""),
		DemoMode:         getEnv("DEMO_MODE", "") == "true",
		AnalysisWorkers:  3,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
