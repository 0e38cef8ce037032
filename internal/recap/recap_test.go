package recap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studycoach/studycoach/internal/assignment"
	"github.com/studycoach/studycoach/internal/dates"
	"github.com/studycoach/studycoach/internal/focus"
)

func record(kind focus.Kind, minutes int) focus.Record {
	return focus.Record{Kind: kind, DurationMinutes: minutes}
}

func incompleteAssignment(id, title, dueDate string) assignment.Assignment {
	return assignment.Assignment{
		ID:      id,
		Title:   title,
		DueDate: dueDate,
		Status:  assignment.StatusInProgress,
	}
}

func TestBuild(t *testing.T) {
	records := []focus.Record{
		record(focus.KindPomodoro, 25),
		record(focus.KindPomodoro, 25),
		record(focus.KindReview, 30),
	}
	completed := []assignment.Assignment{
		{ID: "a1", Status: assignment.StatusCompleted},
		{ID: "a2", Status: assignment.StatusCompleted},
	}
	incomplete := []assignment.Assignment{
		incompleteAssignment("a3", "Read chapter 4", "2026-01-23"),
	}

	summary := Build(records, completed, incomplete)

	assert.Equal(t, 3, summary.StudySessionsCount)
	assert.Equal(t, 2, summary.PomodorosCount)
	assert.Equal(t, 80, summary.TotalStudyMinutes)
	assert.Equal(t, 2, summary.AssignmentsCompleted)
	assert.Equal(t, 1, summary.AssignmentsRemaining)
	assert.Equal(t, "Keep building those study habits!", summary.MotivationalMessage)
}

func TestBuild_GroupsIncompleteByDueDate(t *testing.T) {
	incomplete := []assignment.Assignment{
		incompleteAssignment("a1", "Essay draft", "2026-01-25"),
		incompleteAssignment("a2", "Problem set", "2026-01-23"),
		incompleteAssignment("a3", "Essay outline", "2026-01-25"),
	}

	summary := Build(nil, nil, incomplete)

	// Groups are keyed by first occurrence, not sorted by date.
	require.Len(t, summary.IncompleteByDueDate, 2)
	assert.Equal(t, "2026-01-25", summary.IncompleteByDueDate[0].DueDate)
	assert.Equal(t, "2026-01-23", summary.IncompleteByDueDate[1].DueDate)
	require.Len(t, summary.IncompleteByDueDate[0].Assignments, 2)
	assert.Equal(t, "a1", summary.IncompleteByDueDate[0].Assignments[0].ID)
	assert.Equal(t, "a3", summary.IncompleteByDueDate[0].Assignments[1].ID)
}

func TestBuild_MotivationalMessage(t *testing.T) {
	tests := []struct {
		name      string
		pomodoros int
		completed int
		expected  string
	}{
		{
			name:      "no pomodoros gets the nudge",
			pomodoros: 0,
			completed: 0,
			expected:  "Consider adding a Pomodoro session tomorrow!",
		},
		{
			name:      "the nudge wins even over many completions",
			pomodoros: 0,
			completed: 6,
			expected:  "Consider adding a Pomodoro session tomorrow!",
		},
		{
			name:      "five or more pomodoros",
			pomodoros: 5,
			completed: 6,
			expected:  "Incredible focus! 5 Pomodoros is a major accomplishment!",
		},
		{
			name:      "three or more completions",
			pomodoros: 2,
			completed: 3,
			expected:  "Great job getting 3 assignments done today!",
		},
		{
			name:      "the generic fallback",
			pomodoros: 1,
			completed: 1,
			expected:  "Keep building those study habits!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []focus.Record
			for i := 0; i < tt.pomodoros; i++ {
				records = append(records, record(focus.KindPomodoro, 25))
			}
			completed := make([]assignment.Assignment, tt.completed)

			summary := Build(records, completed, nil)
			assert.Equal(t, tt.expected, summary.MotivationalMessage)
		})
	}
}

func TestRollover(t *testing.T) {
	today, err := dates.Parse("2026-01-22")
	require.NoError(t, err)

	incomplete := []assignment.Assignment{
		incompleteAssignment("a1", "Lab report", "2026-01-23"),
		incompleteAssignment("a2", "Reading quiz", "2026-01-25"),
		incompleteAssignment("a3", "Term paper", "2026-02-10"),
		incompleteAssignment("a4", "Worksheet", "2026-01-20"),
	}

	items, err := Rollover(incomplete, today)
	require.NoError(t, err)

	assert.Equal(t, []RolloverItem{
		{AssignmentID: "a1", Title: "Lab report", Priority: assignment.PriorityHigh, DaysUntilDue: 1},
		{AssignmentID: "a2", Title: "Reading quiz", Priority: assignment.PriorityMedium, DaysUntilDue: 3},
		{AssignmentID: "a3", Title: "Term paper", Priority: assignment.PriorityLow, DaysUntilDue: 19},
		{AssignmentID: "a4", Title: "Worksheet", Priority: assignment.PriorityHigh, DaysUntilDue: -2},
	}, items)
}

func TestRollover_InvalidDueDate(t *testing.T) {
	today, err := dates.Parse("2026-01-22")
	require.NoError(t, err)

	_, err = Rollover([]assignment.Assignment{
		incompleteAssignment("a1", "Lab report", "soonish"),
	}, today)
	require.Error(t, err)
	assert.ErrorIs(t, err, dates.ErrInvalidDate)
	assert.Contains(t, err.Error(), "a1")
}

func TestRollover_Empty(t *testing.T) {
	today, err := dates.Parse("2026-01-22")
	require.NoError(t, err)

	items, err := Rollover(nil, today)
	require.NoError(t, err)
	assert.Empty(t, items)
}
