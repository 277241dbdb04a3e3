package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyComplexityShortContentIsSimple(t *testing.T) {
	cases := []string{
		"",
		"Please find attached the Q4 report, review by Friday.",
		"analyze the risk and compare implications", // keywords don't matter under 300 chars
	}
	for _, content := range cases {
		assert.Equal(t, ComplexitySimple, ClassifyComplexity(content, ""), "content: %q", content)
	}
}

func TestClassifyComplexityKeywordDensity(t *testing.T) {
	padding := strings.Repeat("The quarterly statement is enclosed. ", 13) // ~480 chars

	veryComplex := padding + "Please analyze the risk and compare both offers."
	assert.Equal(t, ComplexityVeryComplex, ClassifyComplexity(veryComplex, ""))

	complex := padding + "Please evaluate the enclosed offer."
	assert.Equal(t, ComplexityComplex, ClassifyComplexity(complex, ""))
}

func TestClassifyComplexityInstructionsCountTowardKeywords(t *testing.T) {
	content := strings.Repeat("Routine notice about your account. ", 10)
	got := ClassifyComplexity(content, "analyze this, explain why, and compare with last year")
	assert.Equal(t, ComplexityVeryComplex, got)
}

func TestClassifyComplexityLongContentWithoutKeywords(t *testing.T) {
	content := strings.Repeat("Lorem ipsum dolor sit amet. ", 80) // > 2000 chars
	assert.Equal(t, ComplexityComplex, ClassifyComplexity(content, ""))
}

func TestClassifyComplexityExtractionKeywordIsSimple(t *testing.T) {
	content := strings.Repeat("Monthly newsletter content here. ", 10) + "Please list the enclosed items."
	assert.Equal(t, ComplexitySimple, ClassifyComplexity(content, ""))
}

func TestClassifyComplexityDefaultsToMedium(t *testing.T) {
	content := strings.Repeat("Ordinary correspondence without trigger words. ", 8)
	assert.Equal(t, ComplexityMedium, ClassifyComplexity(content, ""))
}

func TestRecommendModelPremiumAlwaysTopTier(t *testing.T) {
	for _, complexity := range []Complexity{ComplexitySimple, ComplexityMedium, ComplexityComplex, ComplexityVeryComplex} {
		assert.Equal(t, PremiumModel, RecommendModel(complexity, BudgetPremium))
	}
}

func TestRecommendModelEconomyNeverDowngradesVeryComplex(t *testing.T) {
	assert.Equal(t, PremiumModel, RecommendModel(ComplexityVeryComplex, BudgetEconomy))
	assert.Equal(t, "gpt-4o-mini", RecommendModel(ComplexitySimple, BudgetEconomy))
}

func TestRecommendModelBalancedScalesWithComplexity(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", RecommendModel(ComplexitySimple, BudgetBalanced))
	assert.Equal(t, "deepseek-chat", RecommendModel(ComplexityMedium, BudgetBalanced))
	assert.Equal(t, "deepseek-reasoner", RecommendModel(ComplexityComplex, BudgetBalanced))
	assert.Equal(t, PremiumModel, RecommendModel(ComplexityVeryComplex, BudgetBalanced))
}

func TestRecommendModelUnknownCombinationFallsBack(t *testing.T) {
	assert.Equal(t, DefaultBudgetModel, RecommendModel(ComplexityMedium, BudgetMode("turbo")))
	assert.Equal(t, DefaultBudgetModel, RecommendModel(Complexity("weird"), BudgetBalanced))
}

func TestEstimateSavings(t *testing.T) {
	assert.Equal(t, 0.0, EstimateSavings(PremiumModel, 1000, 500))

	savings := EstimateSavings("gpt-4o-mini", 1000, 500)
	assert.Greater(t, savings, 0.0)
	assert.InDelta(t, CalculateCost(PremiumModel, 1000, 500)-CalculateCost("gpt-4o-mini", 1000, 500), savings, 1e-12)
}
