package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/j-veylop/focus-tui/internal/models"
)

// Output formats accepted by the stats command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// statsReport is what the stats command prints: the statistics record plus
// totals read from the session log.
type statsReport struct {
	models.UserStats  `yaml:",inline"`
	FocusMinutesTotal int `json:"focusMinutesTotal" yaml:"focusMinutesTotal"`
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML, "":
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

// runStats prints the rolled-over statistics without starting the TUI.
func runStats(w io.Writer, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	_, mgr, cleanup, err := openServices()
	if err != nil {
		return err
	}
	defer cleanup()

	mgr.RefreshStats()
	return writeStats(w, statsReport{
		UserStats:         mgr.Stats(),
		FocusMinutesTotal: mgr.FocusMinutesTotal(),
	}, format)
}

// writeStats renders r in the requested format.
func writeStats(w io.Writer, r statsReport, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeStatsText(w, r)
	}
}

func writeStatsText(w io.Writer, r statsReport) error {
	s := r.UserStats
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	goal := "in progress"
	if s.GoalReached() {
		goal = "reached"
	}

	rows := [][2]string{
		{"Today", fmt.Sprintf("%d/%d sessions (%s)", s.TodaySessions, s.DailyGoal, goal)},
		{"Minutes today", fmt.Sprintf("%d", s.TotalMinutesToday)},
		{"This week", fmt.Sprintf("%d sessions, %d minutes", s.WeekSessions, s.TotalMinutesWeek)},
		{"Week started", s.WeekStartDate.Format("2006-01-02")},
		{"Current streak", fmt.Sprintf("%d days", s.CurrentStreak)},
		{"Longest streak", fmt.Sprintf("%d days", s.LongestStreak)},
		{"All sessions", fmt.Sprintf("%d", s.TotalSessions())},
		{"Focus minutes", fmt.Sprintf("%d", r.FocusMinutesTotal)},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}
