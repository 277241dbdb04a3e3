package repository

import "mailpilot-backend/internal/task/domain"

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *domain.Task) error

	// FindByID finds a task by its ID, nil if absent
	FindByID(id string) (*domain.Task, error)

	// FindByObligationID finds the task created for an obligation, nil if
	// none exists (at most one task per obligation)
	FindByObligationID(obligationID string) (*domain.Task, error)

	// List returns tasks with optional status filter and pagination
	List(status *domain.TaskStatus, limit, offset int) ([]*domain.Task, int64, error)

	// Update updates an existing task
	Update(task *domain.Task) error

	// Delete deletes a task by ID
	Delete(id string) error
}
