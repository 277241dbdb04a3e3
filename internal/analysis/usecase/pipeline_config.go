package usecase

import (
	settingsdomain "mailpilot-backend/internal/settings/domain"
	"mailpilot-backend/pkg/ai"
)

// PipelineConfig is resolved once per analysis invocation and passed down,
// instead of each sub-step re-querying the settings store
type PipelineConfig struct {
	Provider   ai.ProviderConfig
	BudgetMode ai.BudgetMode
	DemoMode   bool
	AutoTasks  bool
}

// resolvePipelineConfig reads settings and environment config into one
// immutable snapshot. Resolution order for the provider: task-specific
// routing override, then the active provider row, then environment config.
func (u *AnalysisUsecase) resolvePipelineConfig(taskType string) (*PipelineConfig, error) {
	pc := &PipelineConfig{
		BudgetMode: ai.BudgetBalanced,
		AutoTasks:  true,
		DemoMode:   u.cfg.DemoMode,
	}

	if mode, err := u.settings.Get(settingsdomain.KeyAiBudgetMode); err == nil && mode != "" {
		pc.BudgetMode = ai.BudgetMode(mode)
	}
	if demo, err := u.settings.Get(settingsdomain.KeyDemoMode); err == nil && demo == "true" {
		pc.DemoMode = true
	}
	// Auto-task creation is on unless explicitly disabled
	if auto, err := u.settings.Get(settingsdomain.KeyAutoTaskCreation); err == nil && auto == "false" {
		pc.AutoTasks = false
	}

	providerName, err := u.resolveProviderName(taskType)
	if err != nil {
		return nil, err
	}
	if providerName == "" {
		if pc.DemoMode {
			pc.Provider = ai.ProviderConfig{Type: ai.ProviderDemo}
			return pc, nil
		}
		return nil, &ai.ProviderError{
			Kind:    ai.ErrConfigMissing,
			Message: "no AI provider is configured",
		}
	}

	pc.Provider = u.resolveProviderConfig(providerName)
	return pc, nil
}

// resolveProviderName prefers the task-specific routing override over the
// globally active provider, then the environment default
func (u *AnalysisUsecase) resolveProviderName(taskType string) (string, error) {
	overrideKey := settingsdomain.KeyAnalysisProvider
	if taskType == "chat" {
		overrideKey = settingsdomain.KeyChatProvider
	}

	if name, err := u.settings.Get(overrideKey); err == nil && name != "" {
		return name, nil
	}

	active, err := u.providers.FindActive()
	if err != nil {
		return "", err
	}
	if active != nil {
		return active.Provider, nil
	}

	return u.cfg.DefaultProvider, nil
}

// resolveProviderConfig merges the provider's settings row with
// environment-level fallbacks
func (u *AnalysisUsecase) resolveProviderConfig(name string) ai.ProviderConfig {
	pc := ai.ProviderConfig{Type: ai.ProviderType(name)}

	var row *settingsdomain.ProviderSetting
	if found, err := u.providers.FindByName(name); err == nil {
		row = found
	}
	if row != nil {
		pc.APIKey = row.APIKey
		pc.Model = row.Model
		pc.BaseURL = row.APIEndpoint
	}

	if pc.APIKey == "" {
		switch pc.Type {
		case ai.ProviderOpenAI:
			pc.APIKey = u.cfg.OpenAIAPIKey
		case ai.ProviderDeepSeek:
			pc.APIKey = u.cfg.DeepSeekAPIKey
		case ai.ProviderOpenRouter:
			pc.APIKey = u.cfg.OpenRouterAPIKey
		}
	}
	if pc.Type == ai.ProviderOllama {
		if pc.BaseURL == "" {
			pc.BaseURL = u.cfg.OllamaBaseURL
		}
		if pc.Model == "" {
			pc.Model = u.cfg.OllamaModel
		}
	}

	return pc
}
