package delivery

import (
	"net/http"

	"mailpilot-backend/internal/settings/domain"
	"mailpilot-backend/internal/settings/repository"

	"github.com/gin-gonic/gin"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsRepo repository.SettingsRepository
	providerRepo repository.ProviderSettingsRepository
	profileRepo  repository.UserProfileRepository
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsRepo repository.SettingsRepository, providerRepo repository.ProviderSettingsRepository, profileRepo repository.UserProfileRepository) *SettingsHandler {
	return &SettingsHandler{
		settingsRepo: settingsRepo,
		providerRepo: providerRepo,
		profileRepo:  profileRepo,
	}
}

// GetSettings returns the well-known application settings
// GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	keys := []string{
		domain.KeyChatProvider,
		domain.KeyAnalysisProvider,
		domain.KeyDemoMode,
		domain.KeyAiBudgetMode,
		domain.KeyAutoTaskCreation,
	}

	values := make(map[string]string, len(keys))
	for _, key := range keys {
		value, err := h.settingsRepo.Get(key)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		values[key] = value
	}
	c.JSON(http.StatusOK, values)
}

// UpdateSettingRequest sets one key/value pair
type UpdateSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// UpdateSetting sets one application setting
// PUT /api/settings
func (h *SettingsHandler) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.settingsRepo.Set(req.Key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Setting updated", "key": req.Key})
}

// GetProviders lists all provider settings
// GET /api/settings/providers
func (h *SettingsHandler) GetProviders(c *gin.Context) {
	providers, err := h.providerRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// Never echo stored keys back to the client
	for _, p := range providers {
		if p.APIKey != "" {
			p.APIKey = "configured"
		}
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// UpsertProvider creates or updates one provider's settings
// PUT /api/settings/providers
func (h *SettingsHandler) UpsertProvider(c *gin.Context) {
	var setting domain.ProviderSetting
	if err := c.ShouldBindJSON(&setting); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if setting.Provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider is required"})
		return
	}
	if err := h.providerRepo.Upsert(&setting); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Provider settings updated", "provider": setting.Provider})
}

// GetProfile returns the user identity profile
// GET /api/settings/profile
func (h *SettingsHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileRepo.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		profile = &domain.UserProfile{}
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfile saves the user identity profile
// PUT /api/settings/profile
func (h *SettingsHandler) SaveProfile(c *gin.Context) {
	var profile domain.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.profileRepo.Save(&profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
