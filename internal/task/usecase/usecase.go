package usecase

import "mailpilot-backend/internal/task/domain"

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// CreateTask creates a new task manually
	CreateTask(title, description string, dueDate *string, priority int) (*domain.Task, error)

	// GetTaskByID retrieves a task by ID
	GetTaskByID(taskID string) (*domain.Task, error)

	// GetTasks retrieves tasks with optional status filter
	GetTasks(status *string, limit, offset int) ([]*domain.Task, int64, error)

	// UpdateTask updates an existing task
	UpdateTask(taskID string, updates TaskUpdateRequest) (*domain.Task, error)

	// DeleteTask deletes a task
	DeleteTask(taskID string) error
}

// TaskUpdateRequest represents the fields that can be updated
type TaskUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
}
