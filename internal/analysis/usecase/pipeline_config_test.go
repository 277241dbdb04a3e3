package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settingsdomain "mailpilot-backend/internal/settings/domain"
	"mailpilot-backend/pkg/ai"
)

func TestResolvePipelineConfigDefaults(t *testing.T) {
	f := newFixture(t)
	f.useOpenAI()

	pc, err := f.usecase.resolvePipelineConfig("analysis")
	require.NoError(t, err)

	assert.Equal(t, ai.BudgetBalanced, pc.BudgetMode)
	assert.True(t, pc.AutoTasks)
	assert.False(t, pc.DemoMode)
	assert.Equal(t, ai.ProviderOpenAI, pc.Provider.Type)
	assert.Equal(t, "test-key", pc.Provider.APIKey)
}

func TestResolvePipelineConfigBudgetSetting(t *testing.T) {
	f := newFixture(t)
	f.useOpenAI()
	f.settings.values[settingsdomain.KeyAiBudgetMode] = "economy"

	pc, err := f.usecase.resolvePipelineConfig("analysis")
	require.NoError(t, err)
	assert.Equal(t, ai.BudgetEconomy, pc.BudgetMode)
}

func TestResolvePipelineConfigTaskOverrideBeatsActiveProvider(t *testing.T) {
	f := newFixture(t)
	f.useOpenAI()
	f.settings.values[settingsdomain.KeyAnalysisProvider] = "deepseek"
	f.usecase.cfg.DeepSeekAPIKey = "env-deepseek-key"

	pc, err := f.usecase.resolvePipelineConfig("analysis")
	require.NoError(t, err)

	assert.Equal(t, ai.ProviderDeepSeek, pc.Provider.Type)
	assert.Equal(t, "env-deepseek-key", pc.Provider.APIKey, "env key backfills a provider without a settings row")
}

func TestResolvePipelineConfigChatOverrideKey(t *testing.T) {
	f := newFixture(t)
	f.useOpenAI()
	f.settings.values[settingsdomain.KeyChatProvider] = "ollama"
	f.usecase.cfg.OllamaBaseURL = "http://inference-box:11434"
	f.usecase.cfg.OllamaModel = "llama3"

	pc, err := f.usecase.resolvePipelineConfig("chat")
	require.NoError(t, err)

	assert.Equal(t, ai.ProviderOllama, pc.Provider.Type)
	assert.Equal(t, "http://inference-box:11434", pc.Provider.BaseURL)
	assert.Equal(t, "llama3", pc.Provider.Model)
}

func TestResolvePipelineConfigSettingsRowWinsOverEnv(t *testing.T) {
	f := newFixture(t)
	f.providers.rows = append(f.providers.rows, &settingsdomain.ProviderSetting{
		Provider: "openai",
		APIKey:   "row-key",
		Model:    "gpt-4o",
		IsActive: true,
	})
	f.usecase.cfg.OpenAIAPIKey = "env-key"

	pc, err := f.usecase.resolvePipelineConfig("analysis")
	require.NoError(t, err)

	assert.Equal(t, "row-key", pc.Provider.APIKey)
	assert.Equal(t, "gpt-4o", pc.Provider.Model)
}

func TestResolvePipelineConfigNoProviderErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.usecase.resolvePipelineConfig("analysis")
	require.Error(t, err)

	pe, ok := ai.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, ai.ErrConfigMissing, pe.Kind)
}

func TestResolvePipelineConfigDemoWithoutProvider(t *testing.T) {
	f := newFixture(t)
	f.settings.values[settingsdomain.KeyDemoMode] = "true"

	pc, err := f.usecase.resolvePipelineConfig("analysis")
	require.NoError(t, err)
	assert.True(t, pc.DemoMode)
	assert.Equal(t, ai.ProviderDemo, pc.Provider.Type)
}

func TestResolvePipelineConfigEnvDemoMode(t *testing.T) {
	f := newFixture(t)
	f.usecase.cfg.DemoMode = true

	pc, err := f.usecase.resolvePipelineConfig("analysis")
	require.NoError(t, err)
	assert.True(t, pc.DemoMode)
}

func TestResolvePipelineConfigEnvDefaultProvider(t *testing.T) {
	f := newFixture(t)
	f.usecase.cfg.DefaultProvider = "openai"
	f.usecase.cfg.OpenAIAPIKey = "env-key"

	pc, err := f.usecase.resolvePipelineConfig("analysis")
	require.NoError(t, err)
	assert.Equal(t, ai.ProviderOpenAI, pc.Provider.Type)
	assert.Equal(t, "env-key", pc.Provider.APIKey)
}
