// Package history provides the history tab: a chart of daily focus sessions
// and the most recent sessions from the session log.
package history

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focus-tui/internal/app"
	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/services"
	"github.com/j-veylop/focus-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the history tab.
type keyMap struct {
	ToggleRange key.Binding
	Reload      key.Binding
	Up          key.Binding
	Down        key.Binding
}

// defaultKeyMap returns the default key bindings for the history tab.
func defaultKeyMap() keyMap {
	return keyMap{
		ToggleRange: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle time range"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "reload"),
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

// Model represents the history tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	commands *app.Commands
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model
	spinner  components.LoadingSpinner

	// Current view state
	timeRange   models.TimeRange
	series      models.DailySeries
	sessions    []models.SessionRecord
	loading     bool
	lastRefresh time.Time
	errorMsg    string
}

// New creates a new history model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:     state,
		services:  svc,
		commands:  app.NewCommands(svc),
		keys:      defaultKeyMap(),
		viewport:  viewport.New(0, 0),
		spinner:   components.NewSpinner("Loading history..."),
		timeRange: models.TimeRange30Days,
	}
}

// Init initializes the history tab.
func (m *Model) Init() tea.Cmd {
	return m.reload()
}

// reload requests the series for the current range.
func (m *Model) reload() tea.Cmd {
	if m.services == nil {
		m.errorMsg = "Services not initialized"
		return nil
	}
	m.loading = true
	return tea.Batch(m.spinner.Init(), m.commands.LoadHistory(m.timeRange))
}

// Update handles messages for the history tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.HistoryLoadedMsg:
		// Ignore answers for a range the user has already moved past.
		if msg.Range != m.timeRange {
			break
		}
		m.loading = false
		m.series = msg.Series
		m.sessions = msg.Sessions
		m.lastRefresh = time.Now()
		m.errorMsg = ""
		if msg.Error != nil {
			cmds = append(cmds, m.commands.NotifyWarning("Session log unavailable: "+msg.Error.Error()))
		}

	case app.TabSwitchMsg:
		if msg.Tab == app.TabHistory && !m.loading {
			cmds = append(cmds, m.reload())
		}

	case app.ServiceEventMsg:
		if _, ok := msg.Event.(services.StatsEvent); ok && !m.loading {
			cmds = append(cmds, m.reload())
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	default:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd
	switch {
	case key.Matches(msg, m.keys.ToggleRange):
		m.timeRange = m.timeRange.Next()
		cmds = append(cmds, m.reload())

	case key.Matches(msg, m.keys.Reload):
		cmds = append(cmds, m.reload())

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// SetSize sets the available size for the history tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.ToggleRange,
		m.keys.Reload,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ToggleRange, m.keys.Reload},
		{m.keys.Up, m.keys.Down},
	}
}
