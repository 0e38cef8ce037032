// Package dates provides a calendar-date value type shared by the planning
// and scheduling packages. A Date carries no time-of-day and no timezone.
package dates

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// ErrInvalidDate is wrapped by Parse when a value is not a calendar date.
var ErrInvalidDate = fmt.Errorf("invalid calendar date")

// Date represents a date in YYYY-MM-DD form, normalized to midnight UTC.
type Date struct {
	time.Time
}

// Parse parses a YYYY-MM-DD string into a Date.
func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: expected YYYY-MM-DD format", ErrInvalidDate, value)
	}
	return Date{Time: t}, nil
}

// Today returns the current local calendar date.
func Today() Date {
	return New(time.Now())
}

// New truncates a time.Time to its calendar date.
func New(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(Layout)
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to other.
// Negative when other is before d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

// MarshalYAML implements the yaml.Marshaler interface.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w %s: expected a quoted YYYY-MM-DD string", ErrInvalidDate, data)
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements the driver.Valuer interface for DATE columns.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements the sql.Scanner interface. MySQL returns DATE columns as
// time.Time when parseTime is enabled, and as bytes otherwise.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = New(v)
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T into Date", ErrInvalidDate, src)
	}
}
