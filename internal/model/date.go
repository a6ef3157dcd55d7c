package model

import (
	"fmt"
	"strconv"
	"time"
)

// DateFormat is the ISO-8601 calendar date layout used everywhere dates are
// persisted or displayed.
const DateFormat = "2006-01-02"

// MonthFormat is the layout for calendar-month bucket keys.
const MonthFormat = "2006-01"

// Date is a calendar date with day granularity, serialized as "2006-01-02".
type Date struct {
	t time.Time
}

// NewDate returns a normalized Date (midnight UTC).
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date.
func Today() Date {
	return NewDate(time.Now().Date())
}

// ParseDate parses an ISO calendar date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

func (d Date) String() string     { return d.t.Format(DateFormat) }
func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) Year() int          { return d.t.Year() }
func (d Date) Month() time.Month  { return d.t.Month() }
func (d Date) Before(x Date) bool { return d.t.Before(x.t) }
func (d Date) After(x Date) bool  { return d.t.After(x.t) }

// MonthKey returns the calendar-month bucket key, e.g. "2025-03".
func (d Date) MonthKey() string { return d.t.Format(MonthFormat) }

// MarshalJSON emits the date as an ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON parses an ISO date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
