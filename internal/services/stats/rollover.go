package stats

import (
	"time"

	"github.com/j-veylop/focus-tui/internal/clock"
	"github.com/j-veylop/focus-tui/internal/models"
)

// weekLength is the elapsed time after which weekly counters reset.
const weekLength = 7 * clock.Day

// Rollover archives the previous day's count and resets daily and weekly
// counters when a local-day or week boundary has been crossed. It returns a
// new record and whether anything changed. Applying it twice at the same
// instant is a no-op the second time.
func Rollover(st models.UserStats, now time.Time, loc *time.Location) (models.UserStats, bool) {
	out := st.Clone()
	changed := false

	todayKey := clock.DateKey(now, loc)
	lastKey := clock.DateKey(out.LastUpdate, loc)

	// Keys are zero padded, so lexical order is calendar order. A clock that
	// moved backwards never rolls over.
	if todayKey > lastKey {
		out.History[lastKey] = out.TodaySessions

		gap, err := clock.DaysBetween(lastKey, todayKey)
		if err != nil {
			gap = 2
		}

		switch {
		case gap <= 1 && out.TodaySessions > 0:
			out.CurrentStreak++
		default:
			out.CurrentStreak = 0
		}

		if out.CurrentStreak > out.LongestStreak {
			out.LongestStreak = out.CurrentStreak
		}

		out.TodaySessions = 0
		out.TotalMinutesToday = 0
		out.LastUpdate = now
		changed = true
	}

	if now.Sub(out.WeekStartDate) >= weekLength {
		out.WeekSessions = 0
		out.TotalMinutesWeek = 0
		out.WeekStartDate = now
		changed = true
	}

	return out, changed
}

// Migrate normalises a record written by an older version or edited by hand.
// Missing history stays empty; nothing is synthesised.
func Migrate(st models.UserStats, now time.Time) models.UserStats {
	out := st.Clone()

	if out.LastUpdate.IsZero() {
		out.LastUpdate = now
	}
	if out.WeekStartDate.IsZero() {
		out.WeekStartDate = now
	}
	if out.DailyGoal < 1 {
		out.DailyGoal = models.DefaultDailyGoal
	}

	for _, n := range []*int{
		&out.TodaySessions,
		&out.WeekSessions,
		&out.TotalMinutesToday,
		&out.TotalMinutesWeek,
		&out.CurrentStreak,
		&out.LongestStreak,
	} {
		if *n < 0 {
			*n = 0
		}
	}

	for key, n := range out.History {
		if _, err := clock.ParseDateKey(key, time.UTC); err != nil || n < 0 {
			delete(out.History, key)
		}
	}

	if out.LongestStreak < out.CurrentStreak {
		out.LongestStreak = out.CurrentStreak
	}

	return out
}
