package settings

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focus-tui/internal/ui/styles"
)

// View renders the settings tab.
func (m *Model) View() string {
	d := m.draft

	rows := []string{
		styles.TitleStyle.Render("Settings"),
		m.renderField(fieldDarkMode, "Dark mode", onOff(d.DarkMode)),
		m.renderField(fieldSound, "Ambient sound", onOff(d.SoundEnabled)),
		m.renderField(fieldSoundType, "Noise", string(d.SoundType)),
		m.renderField(fieldVolume, "Volume", d.VolumePercent()),
		m.renderField(fieldFocus, "Focus minutes", fmt.Sprintf("%d", d.FocusDuration)),
		m.renderField(fieldBreak, "Break minutes", fmt.Sprintf("%d", d.BreakDuration)),
		"",
		m.renderSaveButton(),
		"",
	}

	switch {
	case m.errorMsg != "":
		rows = append(rows, styles.ErrorTextStyle.Render("Error: "+m.errorMsg))
	case m.saving:
		rows = append(rows, styles.HelpStyle.Render("Saving..."))
	case m.dirty:
		rows = append(rows, styles.WarningTextStyle.Render("Unsaved changes"))
	}

	rows = append(rows, styles.HelpStyle.Render("↑/↓ select  ←/→ change  enter save  esc revert"))

	cardWidth := min(max(m.width-6, 40), 70)
	card := styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return styles.DocStyle.Render(card)
}

func (m *Model) renderField(f formField, label, value string) string {
	labelStyle := lipgloss.NewStyle().Width(18).Foreground(styles.TextMuted)
	valueStyle := styles.BlurredStyle
	cursor := "  "
	if m.focused == f {
		valueStyle = styles.FocusedStyle
		cursor = styles.FocusedStyle.Render("> ")
	}
	return cursor + labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf("‹ %s ›", value))
}

func (m *Model) renderSaveButton() string {
	if m.focused == fieldSave {
		return "  " + styles.ButtonActiveStyle.Render("Save")
	}
	return "  " + styles.ButtonInactiveStyle.Render("Save")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
