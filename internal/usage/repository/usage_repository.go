package repository

import (
	"time"

	"mailpilot-backend/internal/usage/domain"
	"mailpilot-backend/pkg/ai"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsageRepository stores append-only usage logs and derives aggregates
type UsageRepository interface {
	Create(entry *domain.UsageLog) error
	Stats() (*domain.UsageStats, error)
}

type gormUsageRepository struct{ db *gorm.DB }

// NewGormUsageRepository creates a new GORM-based UsageRepository
func NewGormUsageRepository(db *gorm.DB) UsageRepository {
	db.AutoMigrate(&domain.UsageLog{})
	return &gormUsageRepository{db: db}
}

func (r *gormUsageRepository) Create(entry *domain.UsageLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	return r.db.Create(entry).Error
}

// Stats sums tokens and cost, then prices the same token volume at the
// premium baseline. Pricing is linear per token, so summing before pricing
// is exact.
func (r *gormUsageRepository) Stats() (*domain.UsageStats, error) {
	var row struct {
		TotalRequests     int64
		TotalInputTokens  int64
		TotalOutputTokens int64
		TotalCost         float64
	}

	err := r.db.Model(&domain.UsageLog{}).
		Select("COUNT(*) AS total_requests, COALESCE(SUM(input_tokens),0) AS total_input_tokens, COALESCE(SUM(output_tokens),0) AS total_output_tokens, COALESCE(SUM(cost),0) AS total_cost").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	baseline := ai.CalculateCost(ai.PremiumModel, int(row.TotalInputTokens), int(row.TotalOutputTokens))

	return &domain.UsageStats{
		TotalRequests:     row.TotalRequests,
		TotalInputTokens:  row.TotalInputTokens,
		TotalOutputTokens: row.TotalOutputTokens,
		TotalCost:         row.TotalCost,
		BaselineCost:      baseline,
		EstimatedSavings:  baseline - row.TotalCost,
	}, nil
}
