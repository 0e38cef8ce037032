package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studycoach/studycoach/internal/dates"
)

// Repository defines operations for managing assignments.
type Repository interface {
	Create(ctx context.Context, a *Assignment) error
	FindByID(ctx context.Context, userID, id string) (*Assignment, error)
	FindActiveByUser(ctx context.Context, userID string) ([]Assignment, error)
	FindByUserAndDueDate(ctx context.Context, userID string, dueDate dates.Date) ([]Assignment, error)
	FindCompletedOn(ctx context.Context, userID string, day dates.Date) ([]Assignment, error)
	UpdateStatus(ctx context.Context, userID, id string, status Status) error
	MarkCompleted(ctx context.Context, userID, id string, completedAt time.Time) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create inserts a new assignment.
func (r *DBRepository) Create(ctx context.Context, a *Assignment) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO assignments (id, user_id, class_name, title, description, due_date, due_time, estimated_minutes, status, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.ClassName, a.Title, a.Description, a.DueDate, a.DueTime,
		a.EstimatedMinutes, a.Status, a.Priority); err != nil {
		return fmt.Errorf("db.ExecContext(insert assignment) > %w", err)
	}
	return nil
}

// FindByID returns an assignment by ID, or nil if not found.
func (r *DBRepository) FindByID(ctx context.Context, userID, id string) (*Assignment, error) {
	var a Assignment
	err := r.db.GetContext(ctx, &a,
		"SELECT * FROM assignments WHERE user_id = ? AND id = ?", userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(assignment) > %w", err)
	}
	return &a, nil
}

// FindActiveByUser returns all assignments for a user that are not completed,
// ordered by due date.
func (r *DBRepository) FindActiveByUser(ctx context.Context, userID string) ([]Assignment, error) {
	var assignments []Assignment
	if err := r.db.SelectContext(ctx, &assignments,
		"SELECT * FROM assignments WHERE user_id = ? AND status != ? ORDER BY due_date, id",
		userID, StatusCompleted); err != nil {
		return nil, fmt.Errorf("db.SelectContext(active assignments) > %w", err)
	}
	return assignments, nil
}

// FindByUserAndDueDate returns all assignments for a user due on a given date.
func (r *DBRepository) FindByUserAndDueDate(ctx context.Context, userID string, dueDate dates.Date) ([]Assignment, error) {
	var assignments []Assignment
	if err := r.db.SelectContext(ctx, &assignments,
		"SELECT * FROM assignments WHERE user_id = ? AND due_date = ? ORDER BY id",
		userID, dueDate.String()); err != nil {
		return nil, fmt.Errorf("db.SelectContext(assignments by due date) > %w", err)
	}
	return assignments, nil
}

// FindCompletedOn returns assignments completed on a given calendar day.
func (r *DBRepository) FindCompletedOn(ctx context.Context, userID string, day dates.Date) ([]Assignment, error) {
	var assignments []Assignment
	if err := r.db.SelectContext(ctx, &assignments,
		`SELECT * FROM assignments
		WHERE user_id = ? AND status = ? AND completed_at >= ? AND completed_at < ?
		ORDER BY completed_at`,
		userID, StatusCompleted, day.Time, day.AddDays(1).Time); err != nil {
		return nil, fmt.Errorf("db.SelectContext(completed assignments) > %w", err)
	}
	return assignments, nil
}

// UpdateStatus sets the status of an assignment.
func (r *DBRepository) UpdateStatus(ctx context.Context, userID, id string, status Status) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE assignments SET status = ? WHERE user_id = ? AND id = ?",
		status, userID, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update assignment status) > %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("assignment %s not found for user %s", id, userID)
	}
	return nil
}

// MarkCompleted sets an assignment to completed with a completion timestamp.
func (r *DBRepository) MarkCompleted(ctx context.Context, userID, id string, completedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE assignments SET status = ?, completed_at = ? WHERE user_id = ? AND id = ?",
		StatusCompleted, completedAt, userID, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(mark assignment completed) > %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("assignment %s not found for user %s", id, userID)
	}
	return nil
}
