package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/ui/styles"
)

// pulse is a slow quarter-circle cycle; the timer face uses the same glyphs.
var pulse = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 6,
}

// LoadingSpinner is the indicator shown while a time range loads. It takes
// the colour of the current timer mode.
type LoadingSpinner struct {
	model spinner.Model
	label string
	mode  models.SessionMode
}

// NewSpinner creates a spinner with the given label, tinted for focus.
func NewSpinner(label string) LoadingSpinner {
	l := LoadingSpinner{
		model: spinner.New(spinner.WithSpinner(pulse)),
		label: label,
	}
	return l.ForMode(models.SessionFocus)
}

// ForMode returns a copy tinted for mode.
func (l LoadingSpinner) ForMode(mode models.SessionMode) LoadingSpinner {
	l.mode = mode
	l.model.Style = styles.GetModeStyle(string(mode)).UnsetBold()
	return l
}

// ForRange returns a copy labelled for loading tr.
func (l LoadingSpinner) ForRange(tr models.TimeRange) LoadingSpinner {
	l.label = "Loading " + tr.String() + "..."
	return l
}

// Init starts the animation.
func (l LoadingSpinner) Init() tea.Cmd {
	return l.model.Tick
}

// Update advances the animation on its own tick messages.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.model, cmd = l.model.Update(msg)
	return l, cmd
}

// View renders the frame followed by the label.
func (l LoadingSpinner) View() string {
	label := lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(l.label)
	return l.model.View() + " " + label
}

// Centered renders the spinner in the middle of a width x height area.
func (l LoadingSpinner) Centered(width, height int) string {
	return styles.CenterBoth(l.View(), width, height)
}
