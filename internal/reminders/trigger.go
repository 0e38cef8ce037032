package reminders

import (
	"fmt"
	"time"

	"github.com/studycoach/studycoach/internal/dates"
)

// defaultDueTime applies when an assignment has a due date but no due time.
const defaultDueTime = "09:00"

// TriggerAt computes the absolute moment a reminder should fire: the due
// date at the due time (9 AM when none is given) in the user's timezone,
// minus the lead time.
func TriggerAt(dueDate, dueTime, timezone string, leadMinutes int) (time.Time, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.LoadLocation(%s) > %w", timezone, err)
	}

	due, err := dates.Parse(dueDate)
	if err != nil {
		return time.Time{}, err
	}

	if dueTime == "" {
		dueTime = defaultDueTime
	}
	clock, err := time.Parse("15:04", dueTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due time %q: expected HH:MM format", dueTime)
	}

	dueMoment := time.Date(due.Year(), due.Month(), due.Day(),
		clock.Hour(), clock.Minute(), 0, 0, location)
	return dueMoment.Add(-time.Duration(leadMinutes) * time.Minute), nil
}
