package domain

import "time"

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Task priority levels, 1=critical .. 4=low
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
)

// Task is an actionable to-do derived from an extracted obligation or
// created manually
type Task struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	MessageID    string     `json:"message_id,omitempty" gorm:"index"` // context link to source message
	ObligationID *string    `json:"obligation_id,omitempty" gorm:"uniqueIndex"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description,omitempty" gorm:"type:text"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Priority     int        `json:"priority" gorm:"default:3"`
	Status       TaskStatus `json:"status" gorm:"default:pending"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
