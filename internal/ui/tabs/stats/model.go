// Package stats provides the statistics tab: today's goal, the week and
// streaks.
package stats

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focus-tui/internal/app"
	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/services"
	"github.com/j-veylop/focus-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the stats tab.
type keyMap struct {
	GoalUp   key.Binding
	GoalDown key.Binding
	Up       key.Binding
	Down     key.Binding
}

// defaultKeyMap returns the default key bindings for the stats tab.
func defaultKeyMap() keyMap {
	return keyMap{
		GoalUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "raise goal"),
		),
		GoalDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "lower goal"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the stats tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	commands *app.Commands
	keys     keyMap
	viewport viewport.Model
	goalBar  components.GoalBar
	week     models.DailySeries
	// focusMinutes is the all-time total from the session log.
	focusMinutes int
	width        int
	height       int
}

// New creates a new stats model. svc may be nil; goal changes then only
// apply in memory.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		commands: app.NewCommands(svc),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		goalBar:  components.NewGoalBar(),
	}
}

// Init initializes the stats tab.
func (m *Model) Init() tea.Cmd {
	return m.loadWeek()
}

func (m *Model) loadWeek() tea.Cmd {
	if m.services == nil {
		return nil
	}
	return m.commands.LoadHistory(models.TimeRange7Days)
}

// Update handles messages for the stats tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.HistoryLoadedMsg:
		if msg.Range == models.TimeRange7Days && msg.Error == nil {
			m.week = msg.Series
			m.focusMinutes = msg.FocusMinutes
		}

	case app.TabSwitchMsg:
		if msg.Tab == app.TabStats {
			return m, m.loadWeek()
		}

	case app.ServiceEventMsg:
		if _, ok := msg.Event.(services.StatsEvent); ok {
			return m, m.loadWeek()
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.GoalUp):
		return m, m.adjustGoal(1)
	case key.Matches(msg, m.keys.GoalDown):
		return m, m.adjustGoal(-1)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// adjustGoal moves the daily goal, never below one.
func (m *Model) adjustGoal(delta int) tea.Cmd {
	if m.services != nil {
		return m.commands.AdjustGoal(delta)
	}

	st := m.state.GetStats()
	st.DailyGoal = max(st.DailyGoal+delta, 1)
	return func() tea.Msg {
		return app.GoalChangedMsg{Stats: st}
	}
}

// SetSize sets the available size for the stats tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.GoalUp, m.keys.GoalDown}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.GoalUp, m.keys.GoalDown},
		{m.keys.Up, m.keys.Down},
	}
}
