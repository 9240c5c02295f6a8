package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focus-tui/internal/ui/styles"
	"github.com/j-veylop/focus-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

// renderConfigCard renders the configuration paths card.
func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	if m.config != nil {
		rows = append(rows,
			m.renderConfigRow("Data Directory", m.config.DataDir),
			m.renderConfigRow("Store", m.config.Store),
			m.renderConfigRow("Store Path", m.state.GetStorePath()),
			m.renderConfigRow("Session Log", m.config.DatabasePath),
			m.renderConfigRow("Log File", m.config.LogPath),
			m.renderConfigRow("Log Level", m.config.LogLevel),
			m.renderConfigRow("Timer Tick", m.config.TickInterval.String()),
			m.renderConfigRow("Notifications", fmt.Sprintf("%t", m.config.Notifications)),
		)
		if m.config.ConfigFile != "" {
			rows = append(rows, m.renderConfigRow("Config File", m.config.ConfigFile))
		}
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	if value == "" {
		value = "-"
	}
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About Focus TUI"),
		"",
		m.renderConfigRow("Version", version.GetVersion()),
		m.renderConfigRow("Build Date", version.GetDate()),
		m.renderConfigRow("Git Commit", version.GetCommit()),
		m.renderConfigRow("Go Version", runtime.Version()),
		m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
		"",
	}

	total := m.state.GetStats().TotalSessions()
	rows = append(rows, fmt.Sprintf("Sessions recorded: %s",
		styles.InfoTextStyle.Render(fmt.Sprintf("%d", total))))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
