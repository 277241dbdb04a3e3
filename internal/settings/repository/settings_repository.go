package repository

import (
	"time"

	"mailpilot-backend/internal/settings/domain"

	"gorm.io/gorm"
)

// SettingsRepository is the key/value settings lookup contract
type SettingsRepository interface {
	// Get returns the value for a key, empty string when unset
	Get(key string) (string, error)
	Set(key, value string) error
}

// ProviderSettingsRepository stores per-provider configuration
type ProviderSettingsRepository interface {
	// FindByName returns the setting row for a provider, nil if absent
	FindByName(provider string) (*domain.ProviderSetting, error)
	// FindActive returns the currently active provider, nil when none is
	FindActive() (*domain.ProviderSetting, error)
	Upsert(setting *domain.ProviderSetting) error
	List() ([]*domain.ProviderSetting, error)
}

// UserProfileRepository returns the single-row user identity profile
type UserProfileRepository interface {
	// Get returns the profile, nil when none has been created yet
	Get() (*domain.UserProfile, error)
	Save(profile *domain.UserProfile) error
}

type gormSettingsRepository struct{ db *gorm.DB }

// NewGormSettingsRepository creates a new GORM-based SettingsRepository
func NewGormSettingsRepository(db *gorm.DB) SettingsRepository {
	db.AutoMigrate(&domain.AppSetting{})
	return &gormSettingsRepository{db: db}
}

func (r *gormSettingsRepository) Get(key string) (string, error) {
	var setting domain.AppSetting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

func (r *gormSettingsRepository) Set(key, value string) error {
	setting := domain.AppSetting{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.db.Save(&setting).Error
}

type gormProviderSettingsRepository struct{ db *gorm.DB }

// NewGormProviderSettingsRepository creates a new GORM-based ProviderSettingsRepository
func NewGormProviderSettingsRepository(db *gorm.DB) ProviderSettingsRepository {
	db.AutoMigrate(&domain.ProviderSetting{})
	return &gormProviderSettingsRepository{db: db}
}

func (r *gormProviderSettingsRepository) FindByName(provider string) (*domain.ProviderSetting, error) {
	var setting domain.ProviderSetting
	err := r.db.Where("provider = ?", provider).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *gormProviderSettingsRepository) FindActive() (*domain.ProviderSetting, error) {
	var setting domain.ProviderSetting
	err := r.db.Where("is_active = ?", true).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *gormProviderSettingsRepository) Upsert(setting *domain.ProviderSetting) error {
	setting.UpdatedAt = time.Now()
	return r.db.Save(setting).Error
}

func (r *gormProviderSettingsRepository) List() ([]*domain.ProviderSetting, error) {
	var settings []*domain.ProviderSetting
	err := r.db.Order("provider ASC").Find(&settings).Error
	return settings, err
}

type gormUserProfileRepository struct{ db *gorm.DB }

// NewGormUserProfileRepository creates a new GORM-based UserProfileRepository
func NewGormUserProfileRepository(db *gorm.DB) UserProfileRepository {
	db.AutoMigrate(&domain.UserProfile{})
	return &gormUserProfileRepository{db: db}
}

func (r *gormUserProfileRepository) Get() (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.db.First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *gormUserProfileRepository) Save(profile *domain.UserProfile) error {
	if profile.ID == "" {
		profile.ID = "default"
	}
	profile.UpdatedAt = time.Now()
	return r.db.Save(profile).Error
}
