package domain

import "errors"

// ValidationReason identifies which task rule a rejected draft or operation
// violated. Reasons are stable strings so the frontend can key messages off
// them.
type ValidationReason string

const (
	ReasonTitleEmpty       ValidationReason = "title_empty"
	ReasonTitleTooLong     ValidationReason = "title_too_long"
	ReasonDueDateNotFuture ValidationReason = "due_date_not_future"
	ReasonAlreadyExpired   ValidationReason = "already_expired"
)

// ValidationError is returned when a draft or operation violates the task
// acceptance rules. It never reaches the store.
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonTitleEmpty:
		return "title must not be empty"
	case ReasonTitleTooLong:
		return "title cannot exceed 15 characters"
	case ReasonDueDateNotFuture:
		return "due date must be in the future"
	case ReasonAlreadyExpired:
		return "task has already expired"
	default:
		return "invalid task"
	}
}

// ErrTaskNotFound is returned when an update or toggle targets an id that
// does not exist in the user's collection.
var ErrTaskNotFound = errors.New("task not found")

// StorageError wraps a failure of the key-value backend. The stored
// collection is guaranteed unchanged when one is returned from a write.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "task storage " + e.Op + " failed: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }
