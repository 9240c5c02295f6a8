package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/ui/components"
	"github.com/j-veylop/focus-tui/internal/ui/styles"
)

// View renders the timer tab.
func (m *Model) View() string {
	t := m.state.Timer()
	if t == nil {
		return styles.DocStyle.Render(styles.HelpStyle.Render("Timer not initialized"))
	}

	mode := t.Mode()
	modeStyle := styles.GetModeStyle(string(mode))

	title := modeStyle.Render(strings.ToUpper(modeLabel(mode)))

	status := "Ready"
	switch {
	case t.Running():
		status = "Running"
	case t.Remaining() < t.Total():
		status = "Paused"
	}

	countdown := styles.CountdownStyle.
		BorderForeground(modeStyle.GetForeground()).
		Render(lipgloss.NewStyle().Bold(true).Render(FormatClock(t.Remaining())))

	barWidth := min(max(m.width-20, 20), 50)
	bar := components.RenderCountdownBar(t.Progress(), barWidth)

	st := m.state.GetStats()
	goal := components.SimpleGoalBar(st.TodaySessions, st.DailyGoal, "Today", barWidth+16)

	settings := m.state.GetSettings()
	sound := "off"
	if settings.SoundEnabled {
		sound = fmt.Sprintf("%s noise at %s", settings.SoundType, settings.VolumePercent())
	}

	lines := []string{
		title,
		styles.HelpStyle.Render(status),
		"",
		countdown,
		bar,
		"",
		goal,
		styles.HelpStyle.Render(fmt.Sprintf("Focus %dm  Break %dm  Sound %s",
			settings.FocusDuration, settings.BreakDuration, sound)),
		"",
		styles.HelpStyle.Render("space start/pause  s switch  x reset"),
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width > 0 && m.height > 0 {
		return styles.CenterBoth(content, m.width, m.height)
	}
	return styles.DocStyle.Render(content)
}

func modeLabel(mode models.SessionMode) string {
	if mode == models.SessionBreak {
		return "Break"
	}
	return "Focus"
}

// FormatClock renders a duration as MM:SS, or H:MM:SS past an hour.
func FormatClock(d time.Duration) string {
	secs := max(int(d.Round(time.Second)/time.Second), 0)
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
