package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studycoach/studycoach/internal/assignment"
	"github.com/studycoach/studycoach/internal/dates"
)

func mustDate(t *testing.T, value string) dates.Date {
	t.Helper()
	d, err := dates.Parse(value)
	require.NoError(t, err)
	return d
}

func newAssignment(id, dueDate string, estimatedMinutes int, status assignment.Status) assignment.Assignment {
	return assignment.Assignment{
		ID:               id,
		Title:            "Assignment " + id,
		DueDate:          dueDate,
		EstimatedMinutes: estimatedMinutes,
		Status:           status,
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		name        string
		assignments []assignment.Assignment
		today       string
		expectedIDs []string
		expected    []Item
	}{
		{
			name: "overdue before today before soon",
			assignments: []assignment.Assignment{
				newAssignment("a1", "2026-01-20", 30, assignment.StatusOverdue),
				newAssignment("a2", "2026-01-22", 60, assignment.StatusNotStarted),
				newAssignment("a3", "2026-01-24", 45, assignment.StatusNotStarted),
			},
			today: "2026-01-22",
			expected: []Item{
				{AssignmentID: "a1", Rank: 1, Reason: "Overdue (30 min)"},
				{AssignmentID: "a2", Rank: 2, Reason: "Due today (60 min)"},
				{AssignmentID: "a3", Rank: 3, Reason: "Due in 2 days (45 min)"},
			},
		},
		{
			name: "completed assignments are dropped",
			assignments: []assignment.Assignment{
				newAssignment("a1", "2026-01-22", 30, assignment.StatusCompleted),
				newAssignment("a2", "2026-01-22", 60, assignment.StatusInProgress),
			},
			today: "2026-01-22",
			expected: []Item{
				{AssignmentID: "a2", Rank: 1, Reason: "Due today (60 min)"},
			},
		},
		{
			name: "shorter assignments rank first within a tier",
			assignments: []assignment.Assignment{
				newAssignment("a1", "2026-01-22", 90, assignment.StatusNotStarted),
				newAssignment("a2", "2026-01-22", 15, assignment.StatusNotStarted),
				newAssignment("a3", "2026-01-22", 45, assignment.StatusNotStarted),
			},
			today: "2026-01-22",
			expected: []Item{
				{AssignmentID: "a2", Rank: 1, Reason: "Due today (15 min)"},
				{AssignmentID: "a3", Rank: 2, Reason: "Due today (45 min)"},
				{AssignmentID: "a1", Rank: 3, Reason: "Due today (90 min)"},
			},
		},
		{
			name: "equal estimates break ties by due date",
			assignments: []assignment.Assignment{
				newAssignment("a1", "2026-01-25", 30, assignment.StatusNotStarted),
				newAssignment("a2", "2026-01-24", 30, assignment.StatusNotStarted),
			},
			today: "2026-01-22",
			expected: []Item{
				{AssignmentID: "a2", Rank: 1, Reason: "Due in 2 days (30 min)"},
				{AssignmentID: "a1", Rank: 2, Reason: "Due in 3 days (30 min)"},
			},
		},
		{
			name: "beyond three days reports the due date",
			assignments: []assignment.Assignment{
				newAssignment("a1", "2026-02-10", 120, assignment.StatusNotStarted),
			},
			today: "2026-01-22",
			expected: []Item{
				{AssignmentID: "a1", Rank: 1, Reason: "Due 2026-02-10 (120 min)"},
			},
		},
		{
			name: "due tomorrow keeps plural phrasing",
			assignments: []assignment.Assignment{
				newAssignment("a1", "2026-01-23", 20, assignment.StatusNotStarted),
			},
			today: "2026-01-22",
			expected: []Item{
				{AssignmentID: "a1", Rank: 1, Reason: "Due in 1 days (20 min)"},
			},
		},
		{
			name:        "empty input yields empty plan",
			assignments: nil,
			today:       "2026-01-22",
			expected:    []Item{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Rank(tt.assignments, mustDate(t, tt.today))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, items)
		})
	}
}

func TestRank_TierOrderingProperty(t *testing.T) {
	assignments := []assignment.Assignment{
		newAssignment("later", "2026-02-15", 5, assignment.StatusNotStarted),
		newAssignment("soon", "2026-01-24", 200, assignment.StatusNotStarted),
		newAssignment("today", "2026-01-22", 500, assignment.StatusNotStarted),
		newAssignment("overdue", "2026-01-01", 999, assignment.StatusNotStarted),
	}

	items, err := Rank(assignments, mustDate(t, "2026-01-22"))
	require.NoError(t, err)
	require.Len(t, items, 4)

	// Tier beats estimated minutes: the overdue 999-minute assignment
	// still outranks the 5-minute one due weeks out.
	assert.Equal(t, "overdue", items[0].AssignmentID)
	assert.Equal(t, "today", items[1].AssignmentID)
	assert.Equal(t, "soon", items[2].AssignmentID)
	assert.Equal(t, "later", items[3].AssignmentID)
	for i, item := range items {
		assert.Equal(t, i+1, item.Rank)
	}
}

func TestRank_InvalidDueDate(t *testing.T) {
	assignments := []assignment.Assignment{
		newAssignment("a1", "next tuesday", 30, assignment.StatusNotStarted),
	}

	_, err := Rank(assignments, mustDate(t, "2026-01-22"))
	require.Error(t, err)
	assert.ErrorIs(t, err, dates.ErrInvalidDate)
	assert.Contains(t, err.Error(), "a1")
}
