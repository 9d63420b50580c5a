package repository

import (
	"context"

	"todovault-backend/internal/task/domain"
)

// TaskRepository defines the interface for task data access. Tasks live in
// per-user partitions; no operation crosses user boundaries.
type TaskRepository interface {
	// Add assigns a fresh id and creation time to the draft, appends it to
	// the user's collection and persists the whole collection.
	Add(ctx context.Context, userID string, draft domain.Draft) (*domain.Task, error)

	// GetAll returns every task in the user's partition in insertion order.
	// A missing collection yields an empty slice, not an error.
	GetAll(ctx context.Context, userID string) ([]domain.Task, error)

	// Update merges the non-nil fields into the task with the given id and
	// persists the collection. Returns domain.ErrTaskNotFound when the id is
	// absent; the stored collection is left byte-for-byte unchanged then.
	Update(ctx context.Context, userID, id string, fields domain.TaskUpdate) (*domain.Task, error)

	// Delete removes the task with the given id if present and persists the
	// filtered collection. An absent id is a no-op, not an error.
	Delete(ctx context.Context, userID, id string) error
}
