package clock

import (
	"fmt"
	"time"
)

// DateKeyLayout is the canonical YYYY-MM-DD layout of a date key.
const DateKeyLayout = "2006-01-02"

// Day is one calendar day.
const Day = 24 * time.Hour

// DateKey returns the local calendar day of t as YYYY-MM-DD.
// A nil location means time.Local.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateKeyLayout)
}

// ParseDateKey returns local midnight of the day named by key.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// DaysBetween returns the number of calendar days from one key to another.
// The result is negative when to precedes from. Civil dates are compared in
// UTC so DST transitions never shorten or lengthen a day.
func DaysBetween(from, to string) (int, error) {
	a, err := time.Parse(DateKeyLayout, from)
	if err != nil {
		return 0, fmt.Errorf("invalid date key %q: %w", from, err)
	}
	b, err := time.Parse(DateKeyLayout, to)
	if err != nil {
		return 0, fmt.Errorf("invalid date key %q: %w", to, err)
	}
	return int(b.Sub(a) / Day), nil
}

// AddDays shifts a date key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return "", fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t.AddDate(0, 0, n).Format(DateKeyLayout), nil
}
