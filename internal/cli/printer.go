package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/studycoach/studycoach/internal/assignment"
	"github.com/studycoach/studycoach/internal/dates"
	"github.com/studycoach/studycoach/internal/planner"
	"github.com/studycoach/studycoach/internal/recap"
)

// PrintPlan writes the daily plan in rank order, resolving each item back to
// its assignment title.
func PrintPlan(w io.Writer, items []planner.Item, assignments []assignment.Assignment) {
	if len(items) == 0 {
		fmt.Fprintln(w, "You don't have any upcoming assignments. Great job staying on top of things!")
		return
	}

	titles := make(map[string]string, len(assignments))
	for _, a := range assignments {
		title := a.Title
		if a.ClassName != "" {
			title = fmt.Sprintf("%s in %s", a.Title, a.ClassName)
		}
		titles[a.ID] = title
	}

	bold := color.New(color.Bold)
	bold.Fprintln(w, "Here's your study plan for today:")
	for _, item := range items {
		title, ok := titles[item.AssignmentID]
		if !ok {
			title = item.AssignmentID
		}
		fmt.Fprintf(w, "  %d. %s — %s\n", item.Rank, title, item.Reason)
	}
}

// PrintRecap writes the end-of-day summary and next-day priorities.
func PrintRecap(w io.Writer, day dates.Date, r recap.Recap, rollover []recap.RolloverItem) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Recap for %s\n", day)
	fmt.Fprintf(w, "  Study sessions: %d (%d pomodoros, %d min total)\n",
		r.StudySessionsCount, r.PomodorosCount, r.TotalStudyMinutes)
	fmt.Fprintf(w, "  Assignments: %d completed, %d remaining\n",
		r.AssignmentsCompleted, r.AssignmentsRemaining)

	for _, group := range r.IncompleteByDueDate {
		fmt.Fprintf(w, "  Due %s:\n", group.DueDate)
		for _, a := range group.Assignments {
			fmt.Fprintf(w, "    - %s (%d min)\n", a.Title, a.EstimatedMinutes)
		}
	}

	if len(rollover) > 0 {
		bold.Fprintln(w, "Tomorrow's priorities:")
		for _, item := range rollover {
			fmt.Fprintf(w, "  [%s] %s (due in %d days)\n", item.Priority, item.Title, item.DaysUntilDue)
		}
	}

	fmt.Fprintln(w, r.MotivationalMessage)
}
