package repository

import (
	"strings"
	"time"

	"mailpilot-backend/internal/analysis/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ObligationRepository stores extracted obligations
type ObligationRepository interface {
	Create(obligation *domain.Obligation) error
	FindByMessageID(messageID string) ([]*domain.Obligation, error)
}

// DeadlineRepository stores extracted deadlines
type DeadlineRepository interface {
	Create(deadline *domain.Deadline) error
	FindByMessageID(messageID string) ([]*domain.Deadline, error)
}

// ContactRepository stores extracted contacts with global dedup
type ContactRepository interface {
	Create(contact *domain.Contact) error
	// FindByDedupKey matches lower-cased email when present, else
	// lower-cased name. Nil when no contact matches.
	FindByDedupKey(email, name string) (*domain.Contact, error)
}

// EventRepository stores extracted calendar events
type EventRepository interface {
	Create(event *domain.CalendarEvent) error
	Exists(messageID, title string, startTime time.Time) (bool, error)
}

// AttachmentRepository stores inferred documents and links
type AttachmentRepository interface {
	Create(attachment *domain.Attachment) error
	Exists(messageID, filename, path string) (bool, error)
}

type gormObligationRepository struct{ db *gorm.DB }

// NewGormObligationRepository creates a new GORM-based ObligationRepository
func NewGormObligationRepository(db *gorm.DB) ObligationRepository {
	db.AutoMigrate(&domain.Obligation{})
	return &gormObligationRepository{db: db}
}

func (r *gormObligationRepository) Create(obligation *domain.Obligation) error {
	if obligation.ID == "" {
		obligation.ID = uuid.New().String()
	}
	obligation.CreatedAt = time.Now()
	return r.db.Create(obligation).Error
}

func (r *gormObligationRepository) FindByMessageID(messageID string) ([]*domain.Obligation, error) {
	var obligations []*domain.Obligation
	err := r.db.Where("message_id = ?", messageID).Order("created_at ASC").Find(&obligations).Error
	return obligations, err
}

type gormDeadlineRepository struct{ db *gorm.DB }

// NewGormDeadlineRepository creates a new GORM-based DeadlineRepository
func NewGormDeadlineRepository(db *gorm.DB) DeadlineRepository {
	db.AutoMigrate(&domain.Deadline{})
	return &gormDeadlineRepository{db: db}
}

func (r *gormDeadlineRepository) Create(deadline *domain.Deadline) error {
	if deadline.ID == "" {
		deadline.ID = uuid.New().String()
	}
	deadline.CreatedAt = time.Now()
	return r.db.Create(deadline).Error
}

func (r *gormDeadlineRepository) FindByMessageID(messageID string) ([]*domain.Deadline, error) {
	var deadlines []*domain.Deadline
	err := r.db.Where("message_id = ?", messageID).Order("created_at ASC").Find(&deadlines).Error
	return deadlines, err
}

type gormContactRepository struct{ db *gorm.DB }

// NewGormContactRepository creates a new GORM-based ContactRepository
func NewGormContactRepository(db *gorm.DB) ContactRepository {
	db.AutoMigrate(&domain.Contact{})
	return &gormContactRepository{db: db}
}

func (r *gormContactRepository) Create(contact *domain.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	contact.CreatedAt = time.Now()
	return r.db.Create(contact).Error
}

func (r *gormContactRepository) FindByDedupKey(email, name string) (*domain.Contact, error) {
	var contact domain.Contact
	var err error
	if email != "" {
		err = r.db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&contact).Error
	} else {
		err = r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&contact).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

type gormEventRepository struct{ db *gorm.DB }

// NewGormEventRepository creates a new GORM-based EventRepository
func NewGormEventRepository(db *gorm.DB) EventRepository {
	db.AutoMigrate(&domain.CalendarEvent{})
	return &gormEventRepository{db: db}
}

func (r *gormEventRepository) Create(event *domain.CalendarEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()
	return r.db.Create(event).Error
}

func (r *gormEventRepository) Exists(messageID, title string, startTime time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&domain.CalendarEvent{}).
		Where("message_id = ? AND title = ? AND start_time = ?", messageID, title, startTime).
		Count(&count).Error
	return count > 0, err
}

type gormAttachmentRepository struct{ db *gorm.DB }

// NewGormAttachmentRepository creates a new GORM-based AttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) AttachmentRepository {
	db.AutoMigrate(&domain.Attachment{})
	return &gormAttachmentRepository{db: db}
}

func (r *gormAttachmentRepository) Create(attachment *domain.Attachment) error {
	if attachment.ID == "" {
		attachment.ID = uuid.New().String()
	}
	attachment.CreatedAt = time.Now()
	return r.db.Create(attachment).Error
}

func (r *gormAttachmentRepository) Exists(messageID, filename, path string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Attachment{}).
		Where("message_id = ? AND filename = ? AND path = ?", messageID, filename, path).
		Count(&count).Error
	return count > 0, err
}
