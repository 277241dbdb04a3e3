package ai

import (
	"log"
	"strings"
)

// NewChatProvider creates the ChatProvider for a resolved configuration.
// Unknown or empty provider types resolve to the deterministic demo client
// rather than failing: the catch-all path must never be silent.
func NewChatProvider(cfg ProviderConfig) ChatProvider {
	switch cfg.Type {
	case ProviderOpenAI, ProviderDeepSeek, ProviderOpenRouter:
		return NewOpenAICompatibleClient(cfg.Type, cfg.APIKey, cfg.BaseURL)
	case ProviderOllama:
		return NewOllamaClient(cfg.BaseURL)
	case ProviderDemo:
		return NewDemoClient()
	default:
		log.Printf("[ProviderFactory] Unknown provider %q, using demo client", cfg.Type)
		return NewDemoClient()
	}
}

// budgetNameMarkers flag budget-tier models across provider namespaces
var budgetNameMarkers = []string{"mini", "flash", "haiku", "lite", "llama"}

// ResolveModel remaps a recommended model into the active provider's
// namespace. A user-pinned default model always wins; a recommendation
// already belonging to the provider passes through; anything else is
// remapped by role (premium vs budget).
func ResolveModel(recommended string, cfg ProviderConfig) string {
	if cfg.Model != "" {
		return cfg.Model
	}

	info, known := LookupModel(recommended)
	if known && info.Provider == cfg.Type {
		return recommended
	}

	budget := known && info.BudgetTier
	if !budget {
		lower := strings.ToLower(recommended)
		for _, marker := range budgetNameMarkers {
			if strings.Contains(lower, marker) {
				budget = true
				break
			}
		}
	}

	if budget {
		if model, ok := budgetModelByProvider[cfg.Type]; ok {
			return model
		}
	} else {
		if model, ok := premiumModelByProvider[cfg.Type]; ok {
			return model
		}
	}

	return recommended
}
