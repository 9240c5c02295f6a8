// Package models defines data structures and domain types.
package models

import "time"

// DefaultDailyGoal is the session target given to a fresh installation.
const DefaultDailyGoal = 4

// UserStats is the single persisted statistics record of an installation.
// Today's count lives in TodaySessions until the next local-day rollover
// archives it into History.
type UserStats struct {
	LastUpdate        time.Time      `json:"lastUpdate" yaml:"lastUpdate"`
	WeekStartDate     time.Time      `json:"weekStartDate" yaml:"weekStartDate"`
	History           map[string]int `json:"history" yaml:"history"`
	TodaySessions     int            `json:"todaySessions" yaml:"todaySessions"`
	WeekSessions      int            `json:"weekSessions" yaml:"weekSessions"`
	DailyGoal         int            `json:"dailyGoal" yaml:"dailyGoal"`
	TotalMinutesToday int            `json:"totalMinutesToday" yaml:"totalMinutesToday"`
	TotalMinutesWeek  int            `json:"totalMinutesWeek" yaml:"totalMinutesWeek"`
	LongestStreak     int            `json:"longestStreak" yaml:"longestStreak"`
	CurrentStreak     int            `json:"currentStreak" yaml:"currentStreak"`
}

// NewUserStats returns the record created on first run.
func NewUserStats(now time.Time) UserStats {
	return UserStats{
		DailyGoal:     DefaultDailyGoal,
		LastUpdate:    now,
		WeekStartDate: now,
		History:       make(map[string]int),
	}
}

// Clone returns a deep copy so callers never share the history map.
func (s UserStats) Clone() UserStats {
	c := s
	c.History = make(map[string]int, len(s.History))
	for k, v := range s.History {
		c.History[k] = v
	}
	return c
}

// GoalProgress returns today's sessions as a percentage of the daily goal.
func (s UserStats) GoalProgress() float64 {
	if s.DailyGoal <= 0 {
		return 0
	}
	return float64(s.TodaySessions) / float64(s.DailyGoal) * 100
}

// GoalReached reports whether today's goal is met.
func (s UserStats) GoalReached() bool {
	return s.DailyGoal > 0 && s.TodaySessions >= s.DailyGoal
}

// TotalSessions returns every archived session plus today's.
func (s UserStats) TotalSessions() int {
	total := s.TodaySessions
	for _, n := range s.History {
		total += n
	}
	return total
}
