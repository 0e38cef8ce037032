// Package testutil provides shared test helpers for config files, fixed
// clocks, and assignment fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studycoach/studycoach/internal/assignment"
)

// SetupTestConfig creates a minimal config file for testing and returns its
// path.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := `database:
  host: 127.0.0.1
  port: 3306
  database: studycoach_test
  username: studycoach
reminders:
  service_url: http://127.0.0.1:18080
  lead_minutes: 1440
  timezone: America/New_York
coach:
  pomodoro_minutes: 25
  break_minutes: 5
  plan_horizon_days: 7
`

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// FixedClock returns a clock function frozen at the given time.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// AdvancingClock returns a clock and a step function that moves it forward.
func AdvancingClock(start time.Time) (func() time.Time, func(d time.Duration)) {
	current := start
	clock := func() time.Time { return current }
	advance := func(d time.Duration) { current = current.Add(d) }
	return clock, advance
}

// NewAssignment builds an assignment fixture with sensible defaults.
func NewAssignment(id, dueDate string, estimatedMinutes int, status assignment.Status) assignment.Assignment {
	return assignment.Assignment{
		ID:               id,
		UserID:           "user-1",
		Title:            "Assignment " + id,
		DueDate:          dueDate,
		EstimatedMinutes: estimatedMinutes,
		Status:           status,
	}
}
