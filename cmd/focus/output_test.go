package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/j-veylop/focus-tui/internal/models"
)

func sampleReport() statsReport {
	return statsReport{UserStats: sampleStats(), FocusMinutesTotal: 1250}
}

func sampleStats() models.UserStats {
	s := models.NewUserStats(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	s.TodaySessions = 4
	s.TotalMinutesToday = 100
	s.WeekSessions = 9
	s.TotalMinutesWeek = 225
	s.CurrentStreak = 3
	s.LongestStreak = 7
	s.History["2026-03-01"] = 5
	return s
}

func TestWriteStats_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStats(&buf, sampleReport(), formatText))

	out := buf.String()
	assert.Contains(t, out, "4/4 sessions (reached)")
	assert.Contains(t, out, "9 sessions, 225 minutes")
	assert.Contains(t, out, "2026-03-02")
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "7 days")
	assert.Contains(t, out, "All sessions:")
	assert.Contains(t, out, "1250")
}

func TestWriteStats_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStats(&buf, sampleReport(), formatJSON))

	var got models.UserStats
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 4, got.TodaySessions)
	assert.Equal(t, 5, got.History["2026-03-01"])

	var report statsReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, 1250, report.FocusMinutesTotal)
}

func TestWriteStats_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStats(&buf, sampleReport(), formatYAML))

	assert.Contains(t, buf.String(), "dailyGoal: 4")

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 7, got["longestStreak"])
	assert.Equal(t, 1250, got["focusMinutesTotal"])
}

func TestWriteStats_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeStats(&buf, sampleReport(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestRunStats_UnknownFormatTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOCUS_DATA_DIR", dir)
	t.Setenv("HOME", dir)

	var buf bytes.Buffer
	err := runStats(&buf, "xml")
	require.Error(t, err)
	assert.Empty(t, buf.String())

	_, statErr := os.Stat(filepath.Join(dir, "focus.db"))
	assert.True(t, os.IsNotExist(statErr), "store should not be opened")
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOCUS_DATA_DIR", dir)
	t.Setenv("HOME", dir)

	dbFlag, storeFlag = dir+"/custom.db", "file"
	t.Cleanup(func() { dbFlag, storeFlag = "", "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir+"/custom.db", cfg.DatabasePath)
	assert.Equal(t, "file", cfg.Store)

	storeFlag = "postgres"
	_, err = loadConfig()
	assert.Error(t, err)
}
