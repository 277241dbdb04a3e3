package ai

import "log"

// ModelInfo holds the static catalog entry for one model
type ModelInfo struct {
	Provider       ProviderType
	InputPerToken  float64 // USD per input token
	OutputPerToken float64 // USD per output token
	BudgetTier     bool
}

// PremiumModel is the fixed baseline used for savings estimates
const PremiumModel = "gpt-4o"

// DefaultBudgetModel is the fallback for unmatched routing combinations
const DefaultBudgetModel = "gpt-4o-mini"

// modelCatalog is the static model registry. Prices are per token.
var modelCatalog = map[string]ModelInfo{
	"gpt-4o":             {Provider: ProviderOpenAI, InputPerToken: 0.0000025, OutputPerToken: 0.00001},
	"gpt-4o-mini":        {Provider: ProviderOpenAI, InputPerToken: 0.00000015, OutputPerToken: 0.0000006, BudgetTier: true},
	"deepseek-chat":      {Provider: ProviderDeepSeek, InputPerToken: 0.00000027, OutputPerToken: 0.0000011, BudgetTier: true},
	"deepseek-reasoner":  {Provider: ProviderDeepSeek, InputPerToken: 0.00000055, OutputPerToken: 0.00000219},
	"openai/gpt-4o":      {Provider: ProviderOpenRouter, InputPerToken: 0.0000025, OutputPerToken: 0.00001},
	"openai/gpt-4o-mini": {Provider: ProviderOpenRouter, InputPerToken: 0.00000015, OutputPerToken: 0.0000006, BudgetTier: true},
	"llama3":             {Provider: ProviderOllama, InputPerToken: 0, OutputPerToken: 0, BudgetTier: true},
}

// premiumModelByProvider and budgetModelByProvider define the role mapping
// used when a recommended model has to be remapped into the active
// provider's namespace.
var premiumModelByProvider = map[ProviderType]string{
	ProviderOpenAI:     "gpt-4o",
	ProviderDeepSeek:   "deepseek-reasoner",
	ProviderOpenRouter: "openai/gpt-4o",
	ProviderOllama:     "llama3",
}

var budgetModelByProvider = map[ProviderType]string{
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderDeepSeek:   "deepseek-chat",
	ProviderOpenRouter: "openai/gpt-4o-mini",
	ProviderOllama:     "llama3",
}

// LookupModel returns the catalog entry for a model name
func LookupModel(model string) (ModelInfo, bool) {
	info, ok := modelCatalog[model]
	return info, ok
}

// RegisteredModels returns all model names in the catalog
func RegisteredModels() []string {
	names := make([]string, 0, len(modelCatalog))
	for name := range modelCatalog {
		names = append(names, name)
	}
	return names
}

// CalculateCost returns the USD cost of a usage record. Unknown models never
// error: they cost 0 and log a warning so billing stays conservative.
func CalculateCost(model string, inputTokens, outputTokens int) float64 {
	info, ok := modelCatalog[model]
	if !ok {
		log.Printf("[ModelRegistry] Unknown model %q, assuming zero cost", model)
		return 0
	}
	return float64(inputTokens)*info.InputPerToken + float64(outputTokens)*info.OutputPerToken
}
