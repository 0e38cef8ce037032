package focus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studycoach/studycoach/internal/dates"
)

// SessionRepository stores the single active session snapshot per user.
// Serializing read-modify-write cycles on a user's snapshot is the caller's
// responsibility.
type SessionRepository interface {
	Get(ctx context.Context, userID string) (*Session, error)
	Save(ctx context.Context, userID string, session Session) error
	Clear(ctx context.Context, userID string) error
}

// RecordRepository stores finished study records.
type RecordRepository interface {
	Create(ctx context.Context, record *Record) error
	FindByUserAndDay(ctx context.Context, userID string, day dates.Date) ([]Record, error)
}

// sessionRow is the storage shape of a Session snapshot.
type sessionRow struct {
	UserID          string     `db:"user_id"`
	Subject         string     `db:"subject"`
	StartTime       time.Time  `db:"start_time"`
	DurationMinutes int        `db:"duration_minutes"`
	ElapsedMinutes  float64    `db:"elapsed_minutes"`
	IsPaused        bool       `db:"is_paused"`
	PausedAt        *time.Time `db:"paused_at"`
	Interruptions   int        `db:"interruptions"`
}

// DBSessionRepository implements SessionRepository using MySQL.
type DBSessionRepository struct {
	db *sqlx.DB
}

// NewDBSessionRepository creates a new DBSessionRepository.
func NewDBSessionRepository(db *sqlx.DB) *DBSessionRepository {
	return &DBSessionRepository{db: db}
}

// Get returns the user's active session snapshot, or nil if none exists.
func (r *DBSessionRepository) Get(ctx context.Context, userID string) (*Session, error) {
	var row sessionRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM focus_sessions WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(focus_session) > %w", err)
	}
	return &Session{
		Subject:         row.Subject,
		StartTime:       row.StartTime,
		DurationMinutes: row.DurationMinutes,
		ElapsedMinutes:  row.ElapsedMinutes,
		IsPaused:        row.IsPaused,
		PausedAt:        row.PausedAt,
		Interruptions:   row.Interruptions,
	}, nil
}

// Save upserts the user's session snapshot.
func (r *DBSessionRepository) Save(ctx context.Context, userID string, session Session) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO focus_sessions (user_id, subject, start_time, duration_minutes, elapsed_minutes, is_paused, paused_at, interruptions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			subject = VALUES(subject),
			start_time = VALUES(start_time),
			duration_minutes = VALUES(duration_minutes),
			elapsed_minutes = VALUES(elapsed_minutes),
			is_paused = VALUES(is_paused),
			paused_at = VALUES(paused_at),
			interruptions = VALUES(interruptions)`,
		userID, session.Subject, session.StartTime, session.DurationMinutes,
		session.ElapsedMinutes, session.IsPaused, session.PausedAt,
		session.Interruptions); err != nil {
		return fmt.Errorf("db.ExecContext(upsert focus_session) > %w", err)
	}
	return nil
}

// Clear removes the user's session snapshot, if any.
func (r *DBSessionRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM focus_sessions WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("db.ExecContext(delete focus_session) > %w", err)
	}
	return nil
}

// DBRecordRepository implements RecordRepository using MySQL.
type DBRecordRepository struct {
	db *sqlx.DB
}

// NewDBRecordRepository creates a new DBRecordRepository.
func NewDBRecordRepository(db *sqlx.DB) *DBRecordRepository {
	return &DBRecordRepository{db: db}
}

// Create inserts a finished study record.
func (r *DBRecordRepository) Create(ctx context.Context, record *Record) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO study_records (user_id, kind, subject, duration_minutes, interruptions, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.UserID, record.Kind, record.Subject, record.DurationMinutes,
		record.Interruptions, record.RecordedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert study_record) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	record.ID = id
	return nil
}

// FindByUserAndDay returns the user's study records for one calendar day in
// recording order.
func (r *DBRecordRepository) FindByUserAndDay(ctx context.Context, userID string, day dates.Date) ([]Record, error) {
	var records []Record
	if err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM study_records
		WHERE user_id = ? AND recorded_at >= ? AND recorded_at < ?
		ORDER BY recorded_at, id`,
		userID, day.Time, day.AddDays(1).Time); err != nil {
		return nil, fmt.Errorf("db.SelectContext(study_records) > %w", err)
	}
	return records, nil
}
