package usecase

import (
	"fmt"
	"log"
	"strings"
	"time"

	analysisdomain "mailpilot-backend/internal/analysis/domain"
	messagedomain "mailpilot-backend/internal/message/domain"
	"mailpilot-backend/internal/task/domain"
	"mailpilot-backend/internal/task/repository"

	"github.com/google/uuid"
)

// ConfidenceFloor excludes low-confidence obligations from task creation.
// Configuration constant, not a protocol guarantee.
const ConfidenceFloor = 0.5

const maxTitleLength = 200

// AutoTaskPipeline derives actionable to-dos from extracted obligations,
// matching each to the most relevant deadline
type AutoTaskPipeline struct {
	taskRepo repository.TaskRepository
}

// NewAutoTaskPipeline creates a new AutoTaskPipeline
func NewAutoTaskPipeline(taskRepo repository.TaskRepository) *AutoTaskPipeline {
	return &AutoTaskPipeline{taskRepo: taskRepo}
}

// CreateTasksFromObligations processes obligations in input order and
// returns the tasks it created. A task already existing for an obligation
// makes the call idempotent on retry.
func (p *AutoTaskPipeline) CreateTasksFromObligations(
	obligations []*analysisdomain.Obligation,
	deadlines []*analysisdomain.Deadline,
	message *messagedomain.Message,
) []*domain.Task {
	var created []*domain.Task

	for _, obligation := range obligations {
		if obligation.Confidence != nil && *obligation.Confidence < ConfidenceFloor {
			log.Printf("[AutoTask] Skipping obligation %s: confidence %.2f below floor", obligation.ID, *obligation.Confidence)
			continue
		}

		existing, err := p.taskRepo.FindByObligationID(obligation.ID)
		if err != nil {
			log.Printf("[AutoTask] Failed to check existing task for obligation %s: %v", obligation.ID, err)
			continue
		}
		if existing != nil {
			continue
		}

		obligationID := obligation.ID
		task := &domain.Task{
			ID:           uuid.New().String(),
			MessageID:    message.ID,
			ObligationID: &obligationID,
			Title:        truncateTitle(obligation.Action),
			Description:  buildTaskDescription(obligation, message),
			DueDate:      matchDeadline(obligation, deadlines),
			Priority:     mapTaskPriority(obligation.Priority, obligation.Mandatory),
			Status:       domain.TaskStatusPending,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		if err := p.taskRepo.Create(task); err != nil {
			log.Printf("[AutoTask] Failed to create task for obligation %s: %v", obligation.ID, err)
			continue
		}
		created = append(created, task)
	}

	return created
}

// matchDeadline picks a due date for an obligation:
//  1. a deadline whose description contains any obligation-action word
//     longer than 3 characters (first match in extracted-list order wins;
//     no tie-break on match quality)
//  2. for high-priority or mandatory obligations, the earliest dated
//     deadline
//  3. otherwise no due date
func matchDeadline(obligation *analysisdomain.Obligation, deadlines []*analysisdomain.Deadline) *time.Time {
	words := strings.Fields(strings.ToLower(obligation.Action))

	for _, deadline := range deadlines {
		description := strings.ToLower(deadline.Description)
		for _, word := range words {
			if len(word) > 3 && strings.Contains(description, word) {
				return deadline.Date
			}
		}
	}

	if obligation.Priority <= 2 || obligation.Mandatory {
		return earliestDatedDeadline(deadlines)
	}

	return nil
}

func earliestDatedDeadline(deadlines []*analysisdomain.Deadline) *time.Time {
	var earliest *time.Time
	for _, deadline := range deadlines {
		if deadline.Date == nil {
			continue
		}
		if earliest == nil || deadline.Date.Before(*earliest) {
			earliest = deadline.Date
		}
	}
	return earliest
}

// mapTaskPriority maps obligation priority (1=high..5=low) to task priority
// (1=critical..4=low), escalating mandatory obligations by one level
func mapTaskPriority(obligationPriority int, mandatory bool) int {
	var priority int
	switch obligationPriority {
	case 1:
		priority = 1
	case 2:
		priority = 2
	case 3:
		priority = 3
	case 4, 5:
		priority = 4
	default:
		priority = 3
	}

	if mandatory && priority > 1 {
		priority--
	}
	return priority
}

func buildTaskDescription(obligation *analysisdomain.Obligation, message *messagedomain.Message) string {
	var lines []string
	if obligation.Consequence != "" {
		lines = append(lines, "Risk: "+obligation.Consequence)
	}
	if obligation.TriggerText != "" {
		lines = append(lines, "Trigger: "+obligation.TriggerText)
	}
	lines = append(lines, "Source: "+message.Subject)
	lines = append(lines, fmt.Sprintf("From: %s <%s>", message.SenderName, message.SenderAddress))
	return strings.Join(lines, "\n")
}

func truncateTitle(action string) string {
	if len(action) <= maxTitleLength {
		return action
	}
	return action[:maxTitleLength] + "..."
}
