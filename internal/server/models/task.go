package models

import "time"

// Task is the owned resource. UserID is set from the creator's token subject
// and is immutable afterwards; every store operation filters on it.
type Task struct {
	ID          int64
	UserID      string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskUpdate carries a partial update: nil fields stay unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Status filter values accepted by task listing. Anything else means "all".
const (
	StatusFilterCompleted = "completed"
	StatusFilterPending   = "pending"
)
