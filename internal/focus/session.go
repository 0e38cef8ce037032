// Package focus manages timed study sessions and their day-level records.
package focus

import (
	"errors"
	"time"
)

// DefaultDurationMinutes is the standard length of a focus session.
const DefaultDurationMinutes = 25

// ErrInconsistentSession reports a session snapshot that is marked paused but
// carries no pause timestamp. This is a contract violation by the caller, not
// a recoverable state.
var ErrInconsistentSession = errors.New("session is paused but has no pause timestamp")

// Session is a snapshot of one timed focus interval. It is created by
// Manager.Start, transformed by the other Manager methods, and discarded when
// the caller ends the session. PausedAt is non-nil iff IsPaused is true.
type Session struct {
	Subject         string     `json:"subject,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	DurationMinutes int        `json:"duration_minutes"`
	ElapsedMinutes  float64    `json:"elapsed_minutes"`
	IsPaused        bool       `json:"is_paused"`
	PausedAt        *time.Time `json:"paused_at,omitempty"`
	Interruptions   int        `json:"interruptions"`
}

// Manager implements the focus session state machine. All methods are pure
// transformations of the session value; the only ambient input is the clock,
// which is injectable so the transitions stay deterministic under test.
type Manager struct {
	now func() time.Time
}

// NewManager returns a Manager on the system clock.
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// NewManagerWithClock returns a Manager that reads "now" from the given
// function.
func NewManagerWithClock(now func() time.Time) *Manager {
	return &Manager{now: now}
}

// Start creates a new running session.
func (m *Manager) Start(subject string, durationMinutes int) Session {
	return Session{
		Subject:         subject,
		StartTime:       m.now(),
		DurationMinutes: durationMinutes,
		ElapsedMinutes:  0,
		IsPaused:        false,
		PausedAt:        nil,
		Interruptions:   0,
	}
}

// Pause transitions a running session to paused. Pausing an already paused
// session is a no-op.
func (m *Manager) Pause(session Session) Session {
	if session.IsPaused {
		return session
	}
	pausedAt := m.now()
	session.IsPaused = true
	session.PausedAt = &pausedAt
	return session
}

// Resume transitions a paused session back to running, counting the completed
// pause as an interruption. Resuming a running session is a no-op.
//
// The pause gap is added to ElapsedMinutes even though that field otherwise
// reads as time studied. Downstream consumers rely on this accounting, so it
// is kept as is; see the package tests.
func (m *Manager) Resume(session Session) (Session, error) {
	if !session.IsPaused {
		return session, nil
	}
	if session.PausedAt == nil {
		return session, ErrInconsistentSession
	}

	gap := m.now().Sub(*session.PausedAt).Minutes()
	session.ElapsedMinutes += gap
	session.Interruptions++
	session.IsPaused = false
	session.PausedAt = nil
	return session, nil
}

// RemainingMinutes returns the whole minutes left in the session's budget,
// floored at zero. Time spent in a still-open pause does not count against
// the budget.
func (m *Manager) RemainingMinutes(session Session) (int, error) {
	now := m.now()
	elapsed := now.Sub(session.StartTime).Minutes()
	if session.IsPaused {
		if session.PausedAt == nil {
			return 0, ErrInconsistentSession
		}
		elapsed -= now.Sub(*session.PausedAt).Minutes()
	}

	remaining := float64(session.DurationMinutes) - elapsed
	if remaining < 0 {
		return 0, nil
	}
	return int(remaining), nil
}

// Extend adds minutes to the session's budget. No upper bound is enforced.
func (m *Manager) Extend(session Session, additionalMinutes int) Session {
	session.DurationMinutes += additionalMinutes
	return session
}
