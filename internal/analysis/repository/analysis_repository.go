package repository

import (
	"time"

	"mailpilot-backend/internal/analysis/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalysisRepository defines data access for analysis attempts
type AnalysisRepository interface {
	// Create stores a new analysis attempt
	Create(analysis *domain.AiAnalysis) error

	// FindByID finds an analysis by ID, nil if absent
	FindByID(id string) (*domain.AiAnalysis, error)

	// FindLatestByMessageID returns the newest analysis for a message
	FindLatestByMessageID(messageID string) (*domain.AiAnalysis, error)

	// Update saves the full analysis row
	Update(analysis *domain.AiAnalysis) error

	// FailStuck force-fails every "processing" analysis created before the
	// cutoff. Returns the number of reaped rows.
	FailStuck(cutoff time.Time, reason string) (int64, error)
}

// gormAnalysisRepository implements AnalysisRepository using GORM
type gormAnalysisRepository struct {
	db *gorm.DB
}

// NewGormAnalysisRepository creates a new GORM-based AnalysisRepository
func NewGormAnalysisRepository(db *gorm.DB) AnalysisRepository {
	db.AutoMigrate(&domain.AiAnalysis{})
	return &gormAnalysisRepository{db: db}
}

func (r *gormAnalysisRepository) Create(analysis *domain.AiAnalysis) error {
	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	if analysis.Status == "" {
		analysis.Status = domain.AnalysisProcessing
	}
	analysis.CreatedAt = time.Now()
	return r.db.Create(analysis).Error
}

func (r *gormAnalysisRepository) FindByID(id string) (*domain.AiAnalysis, error) {
	var analysis domain.AiAnalysis
	err := r.db.Where("id = ?", id).First(&analysis).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *gormAnalysisRepository) FindLatestByMessageID(messageID string) (*domain.AiAnalysis, error) {
	var analysis domain.AiAnalysis
	err := r.db.Where("message_id = ?", messageID).Order("created_at DESC").First(&analysis).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *gormAnalysisRepository) Update(analysis *domain.AiAnalysis) error {
	return r.db.Save(analysis).Error
}

func (r *gormAnalysisRepository) FailStuck(cutoff time.Time, reason string) (int64, error) {
	result := r.db.Model(&domain.AiAnalysis{}).
		Where("status = ? AND created_at < ?", domain.AnalysisProcessing, cutoff).
		Updates(map[string]interface{}{
			"status":        domain.AnalysisFailed,
			"error_kind":    "timeout",
			"error_message": reason,
		})
	return result.RowsAffected, result.Error
}
