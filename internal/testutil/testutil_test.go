package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studycoach/studycoach/internal/assignment"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "studycoach_test")
	assert.Contains(t, string(content), "pomodoro_minutes: 25")
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2026, 1, 22, 15, 0, 0, 0, time.UTC)
	clock := FixedClock(at)

	assert.Equal(t, at, clock())
	assert.Equal(t, at, clock())
}

func TestAdvancingClock(t *testing.T) {
	start := time.Date(2026, 1, 22, 15, 0, 0, 0, time.UTC)
	clock, advance := AdvancingClock(start)

	assert.Equal(t, start, clock())
	advance(10 * time.Minute)
	assert.Equal(t, start.Add(10*time.Minute), clock())
	advance(5 * time.Second)
	assert.Equal(t, start.Add(10*time.Minute+5*time.Second), clock())
}

func TestNewAssignment(t *testing.T) {
	a := NewAssignment("a1", "2026-01-23", 45, assignment.StatusInProgress)

	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "user-1", a.UserID)
	assert.Equal(t, "Assignment a1", a.Title)
	assert.Equal(t, "2026-01-23", a.DueDate)
	assert.Equal(t, 45, a.EstimatedMinutes)
	assert.Equal(t, assignment.StatusInProgress, a.Status)
}
