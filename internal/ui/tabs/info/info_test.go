package info

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focus-tui/internal/app"
	"github.com/j-veylop/focus-tui/internal/config"
	"github.com/j-veylop/focus-tui/internal/version"
)

func TestNew(t *testing.T) {
	m := New(app.NewState(), &config.Config{})
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_Update(t *testing.T) {
	m := New(app.NewState(), &config.Config{})

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if updated == nil {
		t.Error("Update returned nil model on key")
	}
}

func TestModel_View(t *testing.T) {
	version.Reset()
	version.Version = "v1.2.3"
	version.Commit = "abc1234"
	version.Date = "2026-01-02"
	t.Cleanup(version.Reset)

	state := app.NewState()
	state.SetStorePath("/tmp/focus/store")
	cfg := &config.Config{
		DataDir:       "/tmp/focus",
		Store:         config.StoreFile,
		DatabasePath:  "/tmp/focus/focus.db",
		LogLevel:      "debug",
		TickInterval:  time.Second,
		Notifications: true,
	}
	m := New(state, cfg)
	m.SetSize(100, 60)

	view := m.View()
	for _, want := range []string{"/tmp/focus/store", "focus.db", "debug", "1s", "v1.2.3", "Sessions recorded"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
}

func TestModel_ViewWithoutConfig(t *testing.T) {
	m := New(app.NewState(), nil)
	m.SetSize(80, 40)

	if !strings.Contains(m.View(), "Configuration not loaded") {
		t.Error("View should note missing configuration")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), &config.Config{})
	if len(m.ShortHelp()) != 2 {
		t.Errorf("ShortHelp len = %d, want 2", len(m.ShortHelp()))
	}
	if len(m.FullHelp()) != 1 {
		t.Errorf("FullHelp len = %d, want 1", len(m.FullHelp()))
	}
}
