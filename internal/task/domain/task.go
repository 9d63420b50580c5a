package domain

import "time"

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the display ordering rank: high sorts before medium before low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// ParsePriority maps a raw string to a Priority, defaulting to medium.
func ParsePriority(s string) Priority {
	switch s {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Task represents a single time-boxed to-do record owned by one user.
// The JSON tags define the stored form: a serialized array of these records
// under the user's collection key.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Expired reports whether the task's due date has passed. It is evaluated at
// read time and never stored, so a task can transition to expired without
// any write occurring.
func (t *Task) Expired(now time.Time) bool {
	return t.DueDate.Before(now)
}

// Draft is the input payload for creating or editing a task, pre-validation.
type Draft struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    Priority
}

// TaskUpdate carries the fields a write may change. Nil fields keep their
// stored value. Completed is monotonic: the store raises it but never clears
// it, so a false value here is ignored.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *Priority
	Completed   *bool
}
