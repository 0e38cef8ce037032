package review

import (
	"github.com/studycoach/studycoach/internal/dates"
)

// State is the per-(user, item) spaced repetition state.
// Invariants: EaseFactor >= 1.3, IntervalDays >= 1, Repetitions >= 0.
type State struct {
	UserID         string      `db:"user_id" json:"user_id"`
	ItemID         string      `db:"item_id" json:"item_id"`
	EaseFactor     float64     `db:"ease_factor" json:"ease_factor"`
	IntervalDays   int         `db:"interval_days" json:"interval_days"`
	Repetitions    int         `db:"repetitions" json:"repetitions"`
	NextReviewDate dates.Date  `db:"next_review_date" json:"next_review_date"`
	LastReviewDate *dates.Date `db:"last_review_date" json:"last_review_date,omitempty"`
	LastResult     Result      `db:"last_result" json:"last_result,omitempty"`
}

// NewState seeds the state for an item's first exposure: due immediately,
// default ease, one-day interval, no streak.
func NewState(userID, itemID string, today dates.Date) State {
	return State{
		UserID:         userID,
		ItemID:         itemID,
		EaseFactor:     DefaultEaseFactor,
		IntervalDays:   1,
		Repetitions:    0,
		NextReviewDate: today,
	}
}

// Advance applies one review outcome to a state and returns the updated
// snapshot with its next review date recomputed from today.
func Advance(state State, result Result, today dates.Date) State {
	interval, ease, repetitions := Update(state.EaseFactor, state.IntervalDays, state.Repetitions, result)

	state.IntervalDays = interval
	state.EaseFactor = ease
	state.Repetitions = repetitions
	state.NextReviewDate = today.AddDays(interval)
	last := today
	state.LastReviewDate = &last
	state.LastResult = result
	return state
}

// DueForReview returns the item IDs whose next review date is today or
// earlier. The result preserves the input order of states; it is not
// re-sorted by urgency. States without a next review date are skipped.
func DueForReview(states []State, today dates.Date) []string {
	var due []string
	for _, state := range states {
		if state.NextReviewDate.IsZero() {
			continue
		}
		if !state.NextReviewDate.After(today.Time) {
			due = append(due, state.ItemID)
		}
	}
	return due
}
