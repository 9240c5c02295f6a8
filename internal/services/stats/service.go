// Package stats persists the user's session statistics and applies the
// local-day and weekly rollover rules.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/j-veylop/focus-tui/internal/clock"
	"github.com/j-veylop/focus-tui/internal/logger"
	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/storage"
)

// Service reads and writes the statistics record through a Store.
type Service struct {
	store storage.Store
	clock clock.Clock
	loc   *time.Location
}

// New creates a statistics service. A nil clock means the wall clock and a
// nil location means time.Local.
func New(store storage.Store, clk clock.Clock, loc *time.Location) *Service {
	if clk == nil {
		clk = clock.System()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store: store,
		clock: clk,
		loc:   loc,
	}
}

// Location returns the zone that defines local days.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now returns the current instant from the service clock.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// TodayKey returns the date key of the current local day.
func (s *Service) TodayKey() string {
	return clock.DateKey(s.clock.Now(), s.loc)
}

// Load returns the stored statistics after migration and rollover, creating
// a default record on first run. Unreadable data is replaced by defaults.
// The result is persisted; a failed write is logged and does not affect the
// returned record.
func (s *Service) Load(ctx context.Context) models.UserStats {
	now := s.clock.Now()

	st := s.read(ctx, now)
	st = Migrate(st, now)
	st, _ = Rollover(st, now, s.loc)

	// Today's count lives in TodaySessions until it is archived. A record
	// from a later day keeps its history untouched.
	if todayKey := clock.DateKey(now, s.loc); clock.DateKey(st.LastUpdate, s.loc) == todayKey {
		delete(st.History, todayKey)
	}

	if err := s.Save(ctx, st); err != nil {
		logger.Warn("failed to persist statistics", "error", err)
	}

	return st
}

func (s *Service) read(ctx context.Context, now time.Time) models.UserStats {
	data, err := s.store.Get(ctx, storage.KeyUserStats)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("failed to read statistics, using defaults", "error", err)
		}
		return models.NewUserStats(now)
	}

	var st models.UserStats
	if err := json.Unmarshal(data, &st); err != nil {
		logger.Warn("stored statistics are corrupt, using defaults", "error", err)
		return models.NewUserStats(now)
	}
	st.LastUpdate = st.LastUpdate.In(s.loc)
	st.WeekStartDate = st.WeekStartDate.In(s.loc)
	return st
}

// Save persists st verbatim.
func (s *Service) Save(ctx context.Context, st models.UserStats) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	if err := s.store.Put(ctx, storage.KeyUserStats, data); err != nil {
		return fmt.Errorf("failed to save statistics: %w", err)
	}
	return nil
}

// RecordSession counts one completed focus session of the given length.
// The caller persists the result.
func (s *Service) RecordSession(st models.UserStats, minutes int) models.UserStats {
	out := st.Clone()
	out.TodaySessions++
	out.WeekSessions++
	out.TotalMinutesToday += minutes
	out.TotalMinutesWeek += minutes
	out.LastUpdate = s.clock.Now()
	return out
}

// Refresh applies rollover at the current instant, for long-running
// processes that cross midnight without reloading.
func (s *Service) Refresh(st models.UserStats) (models.UserStats, bool) {
	return Rollover(st, s.clock.Now(), s.loc)
}

// SetDailyGoal changes the goal, never below one, and saves the record.
func (s *Service) SetDailyGoal(ctx context.Context, st models.UserStats, goal int) (models.UserStats, error) {
	if goal < 1 {
		goal = 1
	}
	out := st.Clone()
	out.DailyGoal = goal
	return out, s.Save(ctx, out)
}

// DailySeries returns one entry per local day for the last days days,
// ending today. days <= 0 starts at the oldest archived day.
func (s *Service) DailySeries(st models.UserStats, days int) models.DailySeries {
	todayKey := s.TodayKey()

	startKey := todayKey
	if days > 0 {
		if k, err := clock.AddDays(todayKey, -(days - 1)); err == nil {
			startKey = k
		}
	} else if oldest, ok := oldestKey(st.History); ok && oldest < todayKey {
		startKey = oldest
	}

	var series models.DailySeries
	for key := startKey; key <= todayKey; {
		count := st.History[key]
		if key == todayKey {
			count = st.TodaySessions
		}
		date, _ := clock.ParseDateKey(key, s.loc)
		series = append(series, models.DailyCount{
			Date:     date,
			DateKey:  key,
			Sessions: count,
		})

		next, err := clock.AddDays(key, 1)
		if err != nil {
			break
		}
		key = next
	}

	return series
}

// Week returns the last seven local days including today.
func (s *Service) Week(st models.UserStats) models.DailySeries {
	return s.DailySeries(st, 7)
}

func oldestKey(history map[string]int) (string, bool) {
	if len(history) == 0 {
		return "", false
	}
	keys := make([]string, 0, len(history))
	for k := range history {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0], true
}
