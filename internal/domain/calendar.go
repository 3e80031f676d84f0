package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DateOf truncates t to a UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return &t, nil
}

// FormatDate renders a nullable date, using "-" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(DateLayout)
}

// WeekdaysBetween counts Monday-Friday days in (from, to]. It is negative
// when to is before from.
func WeekdaysBetween(from, to time.Time) int {
	from, to = DateOf(from), DateOf(to)
	sign := 1
	if to.Before(from) {
		from, to = to, from
		sign = -1
	}
	n := 0
	for d := from.AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return sign * n
}

// DaysLeft is the number of weekdays from now until end. Nil end yields
// ok=false.
func DaysLeft(now time.Time, end *time.Time) (days int, ok bool) {
	if end == nil {
		return 0, false
	}
	return WeekdaysBetween(now, *end), true
}

// SameDate compares nullable dates.
func SameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// EarliestDate returns the earliest non-nil date, or nil.
func EarliestDate(dates ...*time.Time) *time.Time {
	var out *time.Time
	for _, d := range dates {
		if d != nil && (out == nil || d.Before(*out)) {
			out = d
		}
	}
	return cloneDate(out)
}

// LatestDate returns the latest non-nil date, or nil.
func LatestDate(dates ...*time.Time) *time.Time {
	var out *time.Time
	for _, d := range dates {
		if d != nil && (out == nil || d.After(*out)) {
			out = d
		}
	}
	return cloneDate(out)
}

func cloneDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
