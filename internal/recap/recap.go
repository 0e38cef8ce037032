// Package recap aggregates a day's study activity into an end-of-day summary
// and computes next-day rollover priorities for unfinished assignments.
package recap

import (
	"fmt"

	"github.com/studycoach/studycoach/internal/assignment"
	"github.com/studycoach/studycoach/internal/dates"
	"github.com/studycoach/studycoach/internal/focus"
)

// Thresholds for the motivational message and rollover priorities.
const (
	manyPomodoros      = 5
	manyCompletions    = 3
	highPriorityDays   = 1
	mediumPriorityDays = 3
)

// DueDateGroup holds the incomplete assignments sharing one due date. Groups
// are ordered by first occurrence in the input, and each group keeps the
// relative input order of its assignments.
type DueDateGroup struct {
	DueDate     string                  `json:"due_date"`
	Assignments []assignment.Assignment `json:"assignments"`
}

// Recap is the end-of-day summary. It is computed fresh per request and
// never persisted.
type Recap struct {
	StudySessionsCount   int            `json:"study_sessions_count"`
	PomodorosCount       int            `json:"pomodoros_count"`
	TotalStudyMinutes    int            `json:"total_study_minutes"`
	AssignmentsCompleted int            `json:"assignments_completed"`
	AssignmentsRemaining int            `json:"assignments_remaining"`
	IncompleteByDueDate  []DueDateGroup `json:"incomplete_by_due_date"`
	MotivationalMessage  string         `json:"motivational_message"`
}

// RolloverItem is a next-day priority suggestion for one incomplete
// assignment. It suggests a priority; it does not change the assignment.
type RolloverItem struct {
	AssignmentID string              `json:"assignment_id"`
	Title        string              `json:"title"`
	Priority     assignment.Priority `json:"priority"`
	DaysUntilDue int                 `json:"days_until_due"`
}

// Build aggregates the day's study records and assignment activity.
// Pomodoro records alone drive the pomodoro count, but every record's
// minutes count toward the study total.
func Build(sessionsToday []focus.Record, completedToday, incomplete []assignment.Assignment) Recap {
	pomodoros := 0
	totalMinutes := 0
	for _, record := range sessionsToday {
		if record.Kind == focus.KindPomodoro {
			pomodoros++
		}
		totalMinutes += record.DurationMinutes
	}

	return Recap{
		StudySessionsCount:   len(sessionsToday),
		PomodorosCount:       pomodoros,
		TotalStudyMinutes:    totalMinutes,
		AssignmentsCompleted: len(completedToday),
		AssignmentsRemaining: len(incomplete),
		IncompleteByDueDate:  groupByDueDate(incomplete),
		MotivationalMessage:  message(pomodoros, len(completedToday)),
	}
}

func groupByDueDate(incomplete []assignment.Assignment) []DueDateGroup {
	indexByDate := make(map[string]int)
	var groups []DueDateGroup
	for _, a := range incomplete {
		i, ok := indexByDate[a.DueDate]
		if !ok {
			i = len(groups)
			indexByDate[a.DueDate] = i
			groups = append(groups, DueDateGroup{DueDate: a.DueDate})
		}
		groups[i].Assignments = append(groups[i].Assignments, a)
	}
	return groups
}

// message picks the motivational line. The rules are checked in strict
// order: a day without pomodoros always gets the nudge, even when many
// assignments were completed.
func message(pomodoros, completed int) string {
	switch {
	case pomodoros == 0:
		return "Consider adding a Pomodoro session tomorrow!"
	case pomodoros >= manyPomodoros:
		return fmt.Sprintf("Incredible focus! %d Pomodoros is a major accomplishment!", pomodoros)
	case completed >= manyCompletions:
		return fmt.Sprintf("Great job getting %d assignments done today!", completed)
	default:
		return "Keep building those study habits!"
	}
}

// Rollover computes a next-day priority suggestion for each incomplete
// assignment. DaysUntilDue is negative for overdue assignments. The output
// preserves the input order. Returns an error wrapping dates.ErrInvalidDate
// if any due date is not a parseable calendar date.
func Rollover(incomplete []assignment.Assignment, today dates.Date) ([]RolloverItem, error) {
	items := make([]RolloverItem, 0, len(incomplete))
	for _, a := range incomplete {
		due, err := dates.Parse(a.DueDate)
		if err != nil {
			return nil, fmt.Errorf("assignment %s: %w", a.ID, err)
		}
		daysUntil := today.DaysUntil(due)

		priority := assignment.PriorityLow
		switch {
		case daysUntil <= highPriorityDays:
			priority = assignment.PriorityHigh
		case daysUntil <= mediumPriorityDays:
			priority = assignment.PriorityMedium
		}

		items = append(items, RolloverItem{
			AssignmentID: a.ID,
			Title:        a.Title,
			Priority:     priority,
			DaysUntilDue: daysUntil,
		})
	}
	return items, nil
}
