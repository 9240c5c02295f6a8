// Package settings provides the settings form tab.
package settings

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focus-tui/internal/app"
	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/services"
)

// formField identifies a row of the form.
type formField int

const (
	fieldDarkMode formField = iota
	fieldSound
	fieldSoundType
	fieldVolume
	fieldFocus
	fieldBreak
	fieldSave
	fieldCount
)

const (
	volumeStep  = 0.05
	maxFocus    = 180
	maxBreak    = 60
	minDuration = 1
)

// keyMap defines the key bindings specific to the settings tab.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Decrease key.Binding
	Increase key.Binding
	Toggle   key.Binding
	Save     key.Binding
	Revert   key.Binding
}

// defaultKeyMap returns the default key bindings for the settings tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next field"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "decrease"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "increase"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter", "ctrl+s"),
			key.WithHelp("enter", "save"),
		),
		Revert: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "revert"),
		),
	}
}

// Model represents the settings tab state. Edits go to a draft that is only
// applied when saved.
type Model struct {
	state    *app.State
	services *services.Manager
	commands *app.Commands
	keys     keyMap
	draft    models.AppSettings
	focused  formField
	dirty    bool
	saving   bool
	errorMsg string
	width    int
	height   int
}

// New creates a new settings model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		commands: app.NewCommands(svc),
		keys:     defaultKeyMap(),
		draft:    state.GetSettings(),
	}
}

// Init initializes the settings tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Draft returns the settings being edited.
func (m *Model) Draft() models.AppSettings {
	return m.draft
}

// Update handles messages for the settings tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.TabSwitchMsg:
		if msg.Tab == app.TabSettings && !m.dirty {
			m.draft = m.state.GetSettings()
		}

	case app.InitialLoadMsg:
		if !m.dirty {
			m.draft = msg.Settings
		}

	case app.ServiceEventMsg:
		if e, ok := msg.Event.(services.SettingsChangedEvent); ok && !m.dirty {
			m.draft = e.Settings
		}

	case app.SettingsSavedMsg:
		m.saving = false
		if msg.Error != nil {
			m.errorMsg = msg.Error.Error()
		} else {
			m.errorMsg = ""
			m.dirty = false
			m.draft = msg.Settings
		}

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.focused = (m.focused - 1 + fieldCount) % fieldCount
	case key.Matches(msg, m.keys.Down):
		m.focused = (m.focused + 1) % fieldCount
	case key.Matches(msg, m.keys.Decrease):
		m.adjust(-1)
	case key.Matches(msg, m.keys.Increase):
		m.adjust(1)
	case key.Matches(msg, m.keys.Toggle):
		if m.focused == fieldSave {
			return m.save()
		}
		m.adjust(1)
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Revert):
		m.draft = m.state.GetSettings()
		m.dirty = false
		m.errorMsg = ""
	}
	return nil
}

// adjust moves the focused field one step in direction dir.
func (m *Model) adjust(dir int) {
	d := &m.draft
	switch m.focused {
	case fieldDarkMode:
		d.DarkMode = !d.DarkMode
	case fieldSound:
		d.SoundEnabled = !d.SoundEnabled
	case fieldSoundType:
		d.SoundType = cycleVariant(d.SoundType, dir)
	case fieldVolume:
		v := d.Volume + float64(dir)*volumeStep
		// Round to the step so repeated presses land on clean percentages.
		d.Volume = math.Round(min(max(v, 0), 1)*100) / 100
	case fieldFocus:
		d.FocusDuration = min(max(d.FocusDuration+dir, minDuration), maxFocus)
	case fieldBreak:
		d.BreakDuration = min(max(d.BreakDuration+dir, minDuration), maxBreak)
	default:
		return
	}
	m.dirty = true
}

func cycleVariant(v models.AmbientVariant, dir int) models.AmbientVariant {
	if dir >= 0 {
		return v.Next()
	}
	all := models.AmbientVariants()
	for i, candidate := range all {
		if candidate == v {
			return all[(i-1+len(all))%len(all)]
		}
	}
	return all[0]
}

func (m *Model) save() tea.Cmd {
	m.saving = true
	if m.services != nil {
		return m.commands.SaveSettings(m.draft)
	}
	draft := m.draft
	return func() tea.Msg {
		return app.SettingsSavedMsg{Settings: draft}
	}
}

// SetSize sets the available size for the settings tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Decrease, m.keys.Increase, m.keys.Save, m.keys.Revert}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Decrease, m.keys.Increase, m.keys.Toggle},
		{m.keys.Save, m.keys.Revert},
	}
}
