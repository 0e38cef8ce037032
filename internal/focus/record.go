package focus

import "time"

// Kind classifies a finished study record. Only pomodoro records count
// toward the recap's pomodoro total; every kind counts toward study minutes.
type Kind string

const (
	KindPomodoro Kind = "pomodoro"
	KindReview   Kind = "review"
	KindFreeform Kind = "freeform"
)

// Record is one finished study interval, kept for the end-of-day recap.
type Record struct {
	ID              int64     `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	Kind            Kind      `db:"kind" json:"kind"`
	Subject         string    `db:"subject" json:"subject,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Interruptions   int       `db:"interruptions" json:"interruptions"`
	RecordedAt      time.Time `db:"recorded_at" json:"recorded_at"`
}
