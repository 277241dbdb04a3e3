package domain

import "time"

// Well-known application setting keys
const (
	KeyChatProvider     = "ChatProvider"     // routing override for chat tasks
	KeyAnalysisProvider = "AnalysisProvider" // routing override for analysis tasks
	KeyDemoMode         = "DemoMode"
	KeyAiBudgetMode     = "AiBudgetMode"
	KeyAutoTaskCreation = "AutoTaskCreation"
)

// AppSetting is one key/value application setting row
type AppSetting struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProviderSetting holds per-provider credentials and routing defaults
type ProviderSetting struct {
	Provider    string    `json:"provider" gorm:"primaryKey"`
	APIKey      string    `json:"api_key"`
	Model       string    `json:"model"`        // pinned default model, wins over remap
	APIEndpoint string    `json:"api_endpoint"` // base URL override
	IsActive    bool      `json:"is_active"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserProfile is the single-row free-text identity context concatenated
// verbatim into analysis prompts
type UserProfile struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Biography  string    `json:"biography" gorm:"type:text"`
	Career     string    `json:"career" gorm:"type:text"`
	Household  string    `json:"household" gorm:"type:text"`
	Exclusions string    `json:"exclusions" gorm:"type:text"`
	Directives string    `json:"directives" gorm:"type:text"`
	UpdatedAt  time.Time `json:"updated_at"`
}
