// Package assignment provides assignment domain models and repository interfaces.
package assignment

import "time"

// Status is the lifecycle state of an assignment. Transitions are requested
// by the orchestration layer; the planning packages only read it.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOverdue    Status = "overdue"
)

// Priority is a coarse urgency label attached to assignments and rollover
// suggestions.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultEstimatedMinutes is assumed when an assignment is added without an
// estimate.
const DefaultEstimatedMinutes = 30

// Assignment represents a single piece of homework.
//
// DueDate stays in its YYYY-MM-DD wire form rather than a parsed type so the
// ranking and rollover contracts can surface an unparseable date as a
// validation error at call time.
type Assignment struct {
	ID               string     `db:"id" json:"assignment_id"`
	UserID           string     `db:"user_id" json:"user_id"`
	ClassName        string     `db:"class_name" json:"class_name,omitempty"`
	Title            string     `db:"title" json:"title"`
	Description      string     `db:"description" json:"description,omitempty"`
	DueDate          string     `db:"due_date" json:"due_date"`
	DueTime          string     `db:"due_time" json:"due_time,omitempty"`
	EstimatedMinutes int        `db:"estimated_minutes" json:"estimated_minutes"`
	Status           Status     `db:"status" json:"status"`
	Priority         Priority   `db:"priority" json:"priority,omitempty"`
	CompletedAt      *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
