package ai

import "strings"

// Complexity is the classifier output bucket driving model choice
type Complexity string

const (
	ComplexitySimple      Complexity = "simple"
	ComplexityMedium      Complexity = "medium"
	ComplexityComplex     Complexity = "complex"
	ComplexityVeryComplex Complexity = "very_complex"
)

// BudgetMode is the user policy biasing routing toward quality or cost
type BudgetMode string

const (
	BudgetPremium  BudgetMode = "premium"
	BudgetBalanced BudgetMode = "balanced"
	BudgetEconomy  BudgetMode = "economy"
)

// complexityKeywords mark reasoning-heavy requests
var complexityKeywords = []string{
	"analyze", "why", "how does", "reasoning", "consequence",
	"risk", "compare", "evaluate", "justify", "implication",
}

// simpleExtractionKeywords mark plain lookup/extraction requests
var simpleExtractionKeywords = []string{
	"extract", "list", "find", "identify", "what is",
}

// ClassifyComplexity scores a content+instructions pair. The rules form a
// priority chain: short content is always simple, then keyword density,
// then raw length, then extraction keywords.
func ClassifyComplexity(content, instructions string) Complexity {
	if len(content) < 300 {
		return ComplexitySimple
	}

	combined := strings.ToLower(content + " " + instructions)

	matches := 0
	for _, kw := range complexityKeywords {
		matches += strings.Count(combined, kw)
	}

	if matches >= 3 {
		return ComplexityVeryComplex
	}
	if matches >= 1 || len(content) > 2000 {
		return ComplexityComplex
	}

	for _, kw := range simpleExtractionKeywords {
		if strings.Contains(combined, kw) {
			return ComplexitySimple
		}
	}

	return ComplexityMedium
}

// routingTable maps (complexity, budget mode) to a model name.
// Premium always gets the top-tier model; economy degrades everything
// except very-complex work, which is never downgraded.
var routingTable = map[BudgetMode]map[Complexity]string{
	BudgetPremium: {
		ComplexitySimple:      PremiumModel,
		ComplexityMedium:      PremiumModel,
		ComplexityComplex:     PremiumModel,
		ComplexityVeryComplex: PremiumModel,
	},
	BudgetBalanced: {
		ComplexitySimple:      "gpt-4o-mini",
		ComplexityMedium:      "deepseek-chat",
		ComplexityComplex:     "deepseek-reasoner",
		ComplexityVeryComplex: PremiumModel,
	},
	BudgetEconomy: {
		ComplexitySimple:      "gpt-4o-mini",
		ComplexityMedium:      "gpt-4o-mini",
		ComplexityComplex:     "deepseek-chat",
		ComplexityVeryComplex: PremiumModel,
	},
}

// RecommendModel picks a model for a complexity under a budget policy.
// Unmatched combinations fall back to the default budget model.
func RecommendModel(complexity Complexity, mode BudgetMode) string {
	if byComplexity, ok := routingTable[mode]; ok {
		if model, ok := byComplexity[complexity]; ok {
			return model
		}
	}
	return DefaultBudgetModel
}

// EstimateSavings returns the cost difference between always using the
// premium baseline and using the recommended model, for a fixed token
// estimate. Side-effect free.
func EstimateSavings(recommendedModel string, inputTokens, outputTokens int) float64 {
	baseline := CalculateCost(PremiumModel, inputTokens, outputTokens)
	actual := CalculateCost(recommendedModel, inputTokens, outputTokens)
	return baseline - actual
}
