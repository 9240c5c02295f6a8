// Package timer provides the countdown tab.
package timer

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focus-tui/internal/app"
	"github.com/j-veylop/focus-tui/internal/models"
)

// keyMap defines the key bindings specific to the timer tab.
type keyMap struct {
	Toggle key.Binding
	Switch key.Binding
	Reset  key.Binding
	Focus  key.Binding
	Break  key.Binding
}

// defaultKeyMap returns the default key bindings for the timer tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "start/pause"),
		),
		Switch: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "switch mode"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x", "backspace"),
			key.WithHelp("x", "reset"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "focus"),
		),
		Break: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "break"),
		),
	}
}

// Model represents the timer tab state. The countdown itself lives in the
// root model; this tab only renders it and sends actions.
type Model struct {
	state  *app.State
	keys   keyMap
	width  int
	height int
}

// New creates a new timer model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		keys:  defaultKeyMap(),
	}
}

// Init initializes the timer tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the timer tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Toggle):
		return m, action(app.TimerToggle)
	case key.Matches(keyMsg, m.keys.Reset):
		// Reset is ignored while running; stop first so the key always works.
		return m, action(app.TimerStop)
	case key.Matches(keyMsg, m.keys.Focus):
		return m, action(app.TimerFocus)
	case key.Matches(keyMsg, m.keys.Break):
		return m, action(app.TimerBreak)
	case key.Matches(keyMsg, m.keys.Switch):
		if t := m.state.Timer(); t != nil && t.Mode() == models.SessionFocus {
			return m, action(app.TimerBreak)
		}
		return m, action(app.TimerFocus)
	}
	return m, nil
}

func action(a app.TimerAction) tea.Cmd {
	return func() tea.Msg {
		return app.TimerActionMsg{Action: a}
	}
}

// SetSize sets the available size for the timer tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Switch, m.keys.Reset}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Toggle, m.keys.Reset},
		{m.keys.Switch, m.keys.Focus, m.keys.Break},
	}
}
