package usecase

import (
	"context"

	"todovault-backend/internal/task/domain"
)

// TaskUsecase defines the presentation-layer contract for task management.
// Every operation is scoped to the authenticated user's partition.
type TaskUsecase interface {
	// ListTasks returns the user's tasks in display order with the
	// read-time expired projection attached.
	ListTasks(ctx context.Context, userID string) ([]TaskView, error)

	// CreateTask validates the draft and stores a new task.
	CreateTask(ctx context.Context, userID string, draft domain.Draft) (*domain.Task, error)

	// EditTask validates the draft and replaces the task's editable fields.
	// Completion state is untouched by an edit.
	EditTask(ctx context.Context, userID, taskID string, draft domain.Draft) (*domain.Task, error)

	// ToggleComplete marks a task completed. Rejected with AlreadyExpired
	// once the task's due date has passed. Completing an already-completed
	// task is a no-op.
	ToggleComplete(ctx context.Context, userID, taskID string) (*domain.Task, error)

	// RemoveTask deletes a task permanently, regardless of expiration or
	// completion. There is no recovery path.
	RemoveTask(ctx context.Context, userID, taskID string) error
}

// TaskView is a task plus its derived expired flag, computed fresh on every
// read.
type TaskView struct {
	domain.Task
	Expired bool `json:"expired"`
}
