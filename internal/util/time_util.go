package util

import (
	"commodityforecast/internal/domain"
	"fmt"
	"strings"
	"time"
)

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Day truncates t to midnight UTC on its calendar day
func Day(t time.Time) time.Time {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD request date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", domain.ErrParse, s)
	}
	return t, nil
}

// DateRange returns n consecutive days starting at start, inclusive
func DateRange(start time.Time, n int) []time.Time {
	if n <= 0 {
		return []time.Time{}
	}
	start = Day(start)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}
