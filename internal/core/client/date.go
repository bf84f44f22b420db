package client

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format accepted on input.
const DateLayout = "2006-01-02"

// civilDate is a calendar day with no time-of-day or zone.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

// dateOf takes the calendar day of t in t's own location.
func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{year: y, month: m, day: d}
}

func (d civilDate) before(o civilDate) bool {
	if d.year != o.year {
		return d.year < o.year
	}
	if d.month != o.month {
		return d.month < o.month
	}
	return d.day < o.day
}

func (d civilDate) after(o civilDate) bool {
	return o.before(d)
}

func (d civilDate) midnightUTC() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// DaysUntil counts calendar days from the day of from to the day of to, each
// taken in its own location as the validation rules do. It is negative when
// to falls on an earlier day.
func DaysUntil(from, to time.Time) int {
	diff := dateOf(to).midnightUTC().Sub(dateOf(from).midnightUTC())
	return int(diff.Hours() / 24)
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate renders an optional date, or "" when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
