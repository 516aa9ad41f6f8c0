// Package clock abstracts "today" so every date computation in the billing
// engine is deterministic under test.
package clock

import "time"

type Clock interface {
	// Today returns the current date truncated to midnight UTC.
	Today() time.Time
}

type System struct{}

func (System) Today() time.Time {
	now := time.Now().UTC()
	return Date(now.Year(), now.Month(), now.Day())
}

// Fixed is a Clock pinned to one date. Tests advance it by replacing the value.
type Fixed struct{ Day time.Time }

func (f Fixed) Today() time.Time { return f.Day }

func At(year int, month time.Month, day int) Fixed {
	return Fixed{Day: Date(year, month, day)}
}

// Date builds a midnight-UTC date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole days from a to b (negative when b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(truncate(b).Sub(truncate(a)).Hours() / 24)
}

// AddMonths advances d by n calendar months, clamping to the last day of the
// target month (Jan 31 + 1 month = Feb 28/29, not Mar 2).
func AddMonths(d time.Time, n int) time.Time {
	d = truncate(d)
	y, m, day := d.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
