package models

import "time"

// TimeRange represents the selected history time range.
type TimeRange int

const (
	// TimeRange7Days shows the last 7 days.
	TimeRange7Days TimeRange = iota
	// TimeRange30Days shows the last 30 days.
	TimeRange30Days
	// TimeRange90Days shows the last 90 days.
	TimeRange90Days
	// TimeRangeAllTime shows everything archived.
	TimeRangeAllTime
)

// String returns the display name for a time range.
func (t TimeRange) String() string {
	switch t {
	case TimeRange7Days:
		return "7 Days"
	case TimeRange30Days:
		return "30 Days"
	case TimeRange90Days:
		return "90 Days"
	case TimeRangeAllTime:
		return "All Time"
	default:
		return "Unknown"
	}
}

// Days returns the number of days for the time range (0 = unlimited).
func (t TimeRange) Days() int {
	switch t {
	case TimeRange7Days:
		return 7
	case TimeRange30Days:
		return 30
	case TimeRange90Days:
		return 90
	case TimeRangeAllTime:
		return 0
	default:
		return 30
	}
}

// Next cycles to the next time range.
func (t TimeRange) Next() TimeRange {
	return (t + 1) % 4
}

// DailyCount is the number of focus sessions completed on one local day.
type DailyCount struct {
	Date     time.Time
	DateKey  string
	Sessions int
}

// DailySeries is an ordered, gap-free run of daily counts ending today.
type DailySeries []DailyCount

// Values returns the session counts as chart input.
func (d DailySeries) Values() []float64 {
	values := make([]float64, len(d))
	for i, c := range d {
		values[i] = float64(c.Sessions)
	}
	return values
}

// Total returns the sum of sessions in the series.
func (d DailySeries) Total() int {
	total := 0
	for _, c := range d {
		total += c.Sessions
	}
	return total
}

// ActiveDays returns the number of days with at least one session.
func (d DailySeries) ActiveDays() int {
	n := 0
	for _, c := range d {
		if c.Sessions > 0 {
			n++
		}
	}
	return n
}

// Best returns the day with the most sessions; ok is false for an empty series.
func (d DailySeries) Best() (best DailyCount, ok bool) {
	for _, c := range d {
		if !ok || c.Sessions > best.Sessions {
			best = c
			ok = true
		}
	}
	return best, ok
}

// Average returns mean sessions per day.
func (d DailySeries) Average() float64 {
	if len(d) == 0 {
		return 0
	}
	return float64(d.Total()) / float64(len(d))
}

// HasData reports whether any day in the series had a session.
func (d DailySeries) HasData() bool {
	return d.ActiveDays() > 0
}
