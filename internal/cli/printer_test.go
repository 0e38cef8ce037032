package cli

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studycoach/studycoach/internal/assignment"
	"github.com/studycoach/studycoach/internal/dates"
	"github.com/studycoach/studycoach/internal/planner"
	"github.com/studycoach/studycoach/internal/recap"
	"github.com/studycoach/studycoach/internal/review"
)

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		answer   string
		expected review.Result
	}{
		{answer: "mitochondria", expected: review.ResultPass},
		{answer: "  The Treaty of Versailles  ", expected: review.ResultPass},
		{answer: "pass", expected: review.ResultFail},
		{answer: "skip", expected: review.ResultFail},
		{answer: "SKIP", expected: review.ResultFail},
		{answer: "don't know", expected: review.ResultFail},
		{answer: "I don't know", expected: review.ResultFail},
		{answer: "i don't know\n", expected: review.ResultFail},
		{answer: "", expected: review.ResultFail},
		{answer: "   ", expected: review.ResultFail},
		{answer: "i really don't know much", expected: review.ResultPass},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAnswer(tt.answer))
		})
	}
}

func TestPrintPlan(t *testing.T) {
	color.NoColor = true

	assignments := []assignment.Assignment{
		{ID: "a1", Title: "Worksheet", ClassName: "Math"},
		{ID: "a2", Title: "Essay draft"},
	}
	items := []planner.Item{
		{AssignmentID: "a1", Rank: 1, Reason: "Due today (30 min)"},
		{AssignmentID: "a2", Rank: 2, Reason: "Due in 2 days (60 min)"},
		{AssignmentID: "gone", Rank: 3, Reason: "Due in 3 days (15 min)"},
	}

	var buf bytes.Buffer
	PrintPlan(&buf, items, assignments)

	out := buf.String()
	assert.Contains(t, out, "Here's your study plan for today:")
	assert.Contains(t, out, "1. Worksheet in Math — Due today (30 min)")
	assert.Contains(t, out, "2. Essay draft — Due in 2 days (60 min)")
	// Unknown IDs fall back to the raw ID instead of being dropped.
	assert.Contains(t, out, "3. gone — Due in 3 days (15 min)")
}

func TestPrintPlan_Empty(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintPlan(&buf, nil, nil)

	assert.Equal(t, "You don't have any upcoming assignments. Great job staying on top of things!\n", buf.String())
}

func TestPrintRecap(t *testing.T) {
	color.NoColor = true

	day, err := dates.Parse("2026-01-22")
	require.NoError(t, err)

	summary := recap.Recap{
		StudySessionsCount:   3,
		PomodorosCount:       2,
		TotalStudyMinutes:    80,
		AssignmentsCompleted: 1,
		AssignmentsRemaining: 2,
		IncompleteByDueDate: []recap.DueDateGroup{
			{DueDate: "2026-01-23", Assignments: []assignment.Assignment{
				{ID: "a1", Title: "Lab report", EstimatedMinutes: 45},
			}},
		},
		MotivationalMessage: "Keep building those study habits!",
	}
	rollover := []recap.RolloverItem{
		{AssignmentID: "a1", Title: "Lab report", Priority: assignment.PriorityHigh, DaysUntilDue: 1},
	}

	var buf bytes.Buffer
	PrintRecap(&buf, day, summary, rollover)

	out := buf.String()
	assert.Contains(t, out, "Recap for 2026-01-22")
	assert.Contains(t, out, "Study sessions: 3 (2 pomodoros, 80 min total)")
	assert.Contains(t, out, "Assignments: 1 completed, 2 remaining")
	assert.Contains(t, out, "Due 2026-01-23:")
	assert.Contains(t, out, "- Lab report (45 min)")
	assert.Contains(t, out, "Tomorrow's priorities:")
	assert.Contains(t, out, "[high] Lab report (due in 1 days)")
	assert.Contains(t, out, "Keep building those study habits!")
}
