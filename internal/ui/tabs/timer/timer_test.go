package timer

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focus-tui/internal/app"
	"github.com/j-veylop/focus-tui/internal/models"
	engine "github.com/j-veylop/focus-tui/internal/timer"
)

func newState() *app.State {
	state := app.NewState()
	state.SetTimer(engine.New(25, 5, nil))
	return state
}

func sendKey(t *testing.T, m *Model, k tea.KeyMsg) app.TimerActionMsg {
	t.Helper()
	_, cmd := m.Update(k)
	if cmd == nil {
		t.Fatalf("key %q returned no command", k.String())
	}
	msg, ok := cmd().(app.TimerActionMsg)
	if !ok {
		t.Fatalf("key %q returned %T, want TimerActionMsg", k.String(), msg)
	}
	return msg
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew(t *testing.T) {
	m := New(newState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_KeysSendActions(t *testing.T) {
	m := New(newState())

	tests := []struct {
		key  tea.KeyMsg
		want app.TimerAction
	}{
		{tea.KeyMsg{Type: tea.KeySpace}, app.TimerToggle},
		{runes("p"), app.TimerToggle},
		{runes("x"), app.TimerStop},
		{runes("f"), app.TimerFocus},
		{runes("b"), app.TimerBreak},
		{runes("s"), app.TimerBreak},
	}
	for _, tt := range tests {
		if got := sendKey(t, m, tt.key); got.Action != tt.want {
			t.Errorf("key %q sent %v, want %v", tt.key.String(), got.Action, tt.want)
		}
	}
}

func TestModel_SwitchFromBreak(t *testing.T) {
	state := newState()
	state.Timer().SwitchMode(models.SessionBreak)
	m := New(state)

	if got := sendKey(t, m, runes("s")); got.Action != app.TimerFocus {
		t.Errorf("switch from break sent %v, want TimerFocus", got.Action)
	}
}

func TestModel_IgnoresOtherMessages(t *testing.T) {
	m := New(newState())
	if _, cmd := m.Update(app.TickMsg{}); cmd != nil {
		t.Error("non-key messages should be ignored")
	}
	if _, cmd := m.Update(runes("z")); cmd != nil {
		t.Error("unbound keys should be ignored")
	}
}

func TestModel_View(t *testing.T) {
	state := newState()
	m := New(state)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "25:00") {
		t.Error("View should show the full focus duration")
	}
	if !strings.Contains(view, "FOCUS") {
		t.Error("View should show the mode")
	}
	if !strings.Contains(view, "Ready") {
		t.Error("A fresh timer should be ready")
	}

	state.Timer().Start()
	state.Timer().Tick()
	state.Timer().Pause()
	view = m.View()
	if !strings.Contains(view, "24:59") || !strings.Contains(view, "Paused") {
		t.Error("View should show the paused countdown")
	}
}

func TestModel_ViewWithoutTimer(t *testing.T) {
	m := New(app.NewState())
	if !strings.Contains(m.View(), "not initialized") {
		t.Error("View should report a missing timer")
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[time.Duration]string{
		25 * time.Minute:               "25:00",
		59 * time.Second:               "00:59",
		90*time.Minute + 5*time.Second: "1:30:05",
		-time.Second:                   "00:00",
	}
	for d, want := range tests {
		if got := FormatClock(d); got != want {
			t.Errorf("FormatClock(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestModel_Help(t *testing.T) {
	m := New(newState())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp should not be empty")
	}
}
