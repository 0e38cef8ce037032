// Package planner turns outstanding assignments into a prioritized daily plan.
package planner

import (
	"fmt"
	"sort"

	"github.com/studycoach/studycoach/internal/assignment"
	"github.com/studycoach/studycoach/internal/dates"
)

// Urgency tiers, from most to least pressing. The tier is the primary sort
// key of the daily plan.
const (
	tierOverdue = iota
	tierDueToday
	tierDueSoon
	tierDueLater
)

// dueSoonDays is the inclusive window, in days, for the "due soon" tier.
const dueSoonDays = 3

// Item is one entry of a computed daily plan. Items are derived fresh on
// every Rank call and never persisted.
type Item struct {
	AssignmentID string `json:"assignment_id"`
	Rank         int    `json:"rank"`
	Reason       string `json:"reason"`
}

// Rank drops completed assignments, buckets the rest into urgency tiers, and
// returns them in priority order with 1-based ranks.
//
// Within a tier, shorter assignments come first; remaining ties are broken by
// due date, which is deterministic because due dates are zero-padded
// YYYY-MM-DD strings. Returns an error wrapping dates.ErrInvalidDate if any
// due date is not a parseable calendar date.
func Rank(assignments []assignment.Assignment, today dates.Date) ([]Item, error) {
	type candidate struct {
		assignment assignment.Assignment
		tier       int
		daysUntil  int
	}

	candidates := make([]candidate, 0, len(assignments))
	for _, a := range assignments {
		if a.Status == assignment.StatusCompleted {
			continue
		}
		due, err := dates.Parse(a.DueDate)
		if err != nil {
			return nil, fmt.Errorf("assignment %s: %w", a.ID, err)
		}
		days := today.DaysUntil(due)
		candidates = append(candidates, candidate{
			assignment: a,
			tier:       tierFor(days),
			daysUntil:  days,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].tier != candidates[j].tier {
			return candidates[i].tier < candidates[j].tier
		}
		if candidates[i].assignment.EstimatedMinutes != candidates[j].assignment.EstimatedMinutes {
			return candidates[i].assignment.EstimatedMinutes < candidates[j].assignment.EstimatedMinutes
		}
		return candidates[i].assignment.DueDate < candidates[j].assignment.DueDate
	})

	items := make([]Item, 0, len(candidates))
	for i, c := range candidates {
		items = append(items, Item{
			AssignmentID: c.assignment.ID,
			Rank:         i + 1,
			Reason:       reason(c.daysUntil, c.assignment.DueDate, c.assignment.EstimatedMinutes),
		})
	}
	return items, nil
}

func tierFor(daysUntil int) int {
	switch {
	case daysUntil < 0:
		return tierOverdue
	case daysUntil == 0:
		return tierDueToday
	case daysUntil <= dueSoonDays:
		return tierDueSoon
	default:
		return tierDueLater
	}
}

func reason(daysUntil int, dueDate string, estimatedMinutes int) string {
	var text string
	switch {
	case daysUntil < 0:
		text = "Overdue"
	case daysUntil == 0:
		text = "Due today"
	case daysUntil <= dueSoonDays:
		// Kept as "1 days" for parity with the voice front-end's phrasing.
		text = fmt.Sprintf("Due in %d days", daysUntil)
	default:
		text = fmt.Sprintf("Due %s", dueDate)
	}
	return fmt.Sprintf("%s (%d min)", text, estimatedMinutes)
}
