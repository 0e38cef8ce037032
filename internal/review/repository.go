package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines operations for managing per-item review states.
type Repository interface {
	Get(ctx context.Context, userID, itemID string) (*State, error)
	Save(ctx context.Context, state State) error
	FindByUser(ctx context.Context, userID string) ([]State, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Get returns the review state for an item, or nil if the item has not been
// seen before.
func (r *DBRepository) Get(ctx context.Context, userID, itemID string) (*State, error) {
	var state State
	err := r.db.GetContext(ctx, &state,
		`SELECT user_id, item_id, ease_factor, interval_days, repetitions, next_review_date, last_review_date, last_result
		FROM review_states WHERE user_id = ? AND item_id = ?`, userID, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(review_state) > %w", err)
	}
	return &state, nil
}

// Save upserts a review state.
func (r *DBRepository) Save(ctx context.Context, state State) error {
	var lastReview interface{}
	if state.LastReviewDate != nil {
		lastReview = state.LastReviewDate.String()
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO review_states (user_id, item_id, ease_factor, interval_days, repetitions, next_review_date, last_review_date, last_result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			ease_factor = VALUES(ease_factor),
			interval_days = VALUES(interval_days),
			repetitions = VALUES(repetitions),
			next_review_date = VALUES(next_review_date),
			last_review_date = VALUES(last_review_date),
			last_result = VALUES(last_result)`,
		state.UserID, state.ItemID, state.EaseFactor, state.IntervalDays,
		state.Repetitions, state.NextReviewDate.String(), lastReview,
		state.LastResult); err != nil {
		return fmt.Errorf("db.ExecContext(upsert review_state) > %w", err)
	}
	return nil
}

// FindByUser returns all review states for a user in creation order, so
// DueForReview over the result keeps a stable, reproducible order.
func (r *DBRepository) FindByUser(ctx context.Context, userID string) ([]State, error) {
	var states []State
	if err := r.db.SelectContext(ctx, &states,
		`SELECT user_id, item_id, ease_factor, interval_days, repetitions, next_review_date, last_review_date, last_result
		FROM review_states WHERE user_id = ? ORDER BY created_at, item_id`,
		userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_states) > %w", err)
	}
	return states, nil
}
