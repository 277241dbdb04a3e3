package domain

import "time"

// Obligation is an extracted action the user is expected to take
type Obligation struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	MessageID   string    `json:"message_id" gorm:"index;not null"`
	Action      string    `json:"action" gorm:"not null"`
	TriggerText string    `json:"trigger_text"`
	Mandatory   bool      `json:"mandatory"`
	Consequence string    `json:"consequence"`
	Priority    int       `json:"priority" gorm:"default:2"` // 1=high .. 5=low
	Confidence  *float64  `json:"confidence,omitempty"`      // 0..1, nullable
	Status      string    `json:"status" gorm:"default:pending"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeadlineType distinguishes dated deadlines from relative triggers
type DeadlineType string

const (
	DeadlineAbsolute DeadlineType = "absolute"
	DeadlineRelative DeadlineType = "relative"
)

// Deadline is an extracted time constraint. Date stays nil when the model
// gave no parseable date; a date is never fabricated.
type Deadline struct {
	ID              string       `json:"id" gorm:"primaryKey"`
	MessageID       string       `json:"message_id" gorm:"index;not null"`
	Description     string       `json:"description" gorm:"not null"`
	Type            DeadlineType `json:"type"`
	Date            *time.Time   `json:"date,omitempty"` // UTC
	RelativeTrigger string       `json:"relative_trigger"`
	Critical        bool         `json:"critical"`
	Status          string       `json:"status" gorm:"default:active"`
	ObligationID    *string      `json:"obligation_id,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Contact is an extracted person or organization contact.
// Dedup key: lower-cased email when present, else lower-cased name.
type Contact struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	MessageID    string    `json:"message_id" gorm:"index"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Organization string    `json:"organization"`
	Title        string    `json:"title"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

// CalendarEvent is an extracted schedulable event.
// Dedup key: (message, title, start time).
type CalendarEvent struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	MessageID   string     `json:"message_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time"` // UTC, required
	EndTime     *time.Time `json:"end_time,omitempty"`
	Location    string     `json:"location"`
	AllDay      bool       `json:"all_day"`
	Status      string     `json:"status" gorm:"default:confirmed"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LinkMimeType marks attachments that are scraped links rather than
// physically inferred documents; the URL lives in Path.
const LinkMimeType = "text/uri-list"

// Attachment merges two provenances into one table: inferred documents
// (no URL) and links (URL in Path, MIME set to LinkMimeType).
// Dedup key: (message, filename, path).
type Attachment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	MessageID string    `json:"message_id" gorm:"index;not null"`
	Filename  string    `json:"filename" gorm:"not null"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}
