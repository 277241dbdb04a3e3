package repository

import (
	"time"

	"mailpilot-backend/internal/message/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepository defines the narrow message-store contract the analysis
// pipeline consumes
type MessageRepository interface {
	// Create stores a new message (used by ingestion and tests)
	Create(message *domain.Message) error

	// FindByID finds a message by its ID, nil if absent
	FindByID(id string) (*domain.Message, error)

	// List returns messages newest first
	List(limit, offset int) ([]*domain.Message, int64, error)

	// UpdateTags sets the derived importance/life-domain tags
	UpdateTags(id, importance, lifeDomain string) error
}

// gormMessageRepository implements MessageRepository using GORM
type gormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-based MessageRepository
func NewGormMessageRepository(db *gorm.DB) MessageRepository {
	db.AutoMigrate(&domain.Message{})
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(message *domain.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	message.UpdatedAt = time.Now()
	return r.db.Create(message).Error
}

func (r *gormMessageRepository) FindByID(id string) (*domain.Message, error) {
	var message domain.Message
	err := r.db.Where("id = ?", id).First(&message).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *gormMessageRepository) List(limit, offset int) ([]*domain.Message, int64, error) {
	var messages []*domain.Message
	var total int64

	query := r.db.Model(&domain.Message{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("received_at DESC").Limit(limit).Offset(offset).Find(&messages).Error
	return messages, total, err
}

func (r *gormMessageRepository) UpdateTags(id, importance, lifeDomain string) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if importance != "" {
		updates["importance"] = importance
	}
	if lifeDomain != "" {
		updates["life_domain"] = lifeDomain
	}
	return r.db.Model(&domain.Message{}).Where("id = ?", id).Updates(updates).Error
}
