package stats

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/ui/components"
	"github.com/j-veylop/focus-tui/internal/ui/styles"
)

// View renders the stats tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return styles.DocStyle.Render(styles.HelpStyle.Render("Loading statistics..."))
	}

	st := m.state.GetStats()

	sections := []string{
		styles.TitleStyle.Render("Statistics"),
		m.renderToday(st),
		m.renderWeek(st),
		m.renderStreaks(st),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

func (m *Model) renderToday(st models.UserStats) string {
	width := m.cardWidth()

	status := styles.HelpStyle.Render("Keep going")
	if st.GoalReached() {
		status = styles.GoalMetStyle.Render("Daily goal reached")
	}

	rows := []string{
		styles.CardTitleStyle.Render("Today"),
		m.goalBar.View(st.TodaySessions, st.DailyGoal, "Sessions", width-6),
		"",
		row("Focus minutes", fmt.Sprintf("%d", st.TotalMinutesToday)),
		row("Daily goal", fmt.Sprintf("%d sessions", st.DailyGoal)),
		"",
		status,
		styles.HelpStyle.Render("+/- adjust goal"),
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderWeek(st models.UserStats) string {
	width := m.cardWidth()

	rows := []string{
		styles.CardTitleStyle.Render("This Week"),
		row("Sessions", fmt.Sprintf("%d", st.WeekSessions)),
		row("Focus minutes", fmt.Sprintf("%d", st.TotalMinutesWeek)),
		row("Week started", st.WeekStartDate.Format("Mon Jan 2")),
	}

	if len(m.week) > 0 {
		rows = append(rows,
			"",
			row("Last 7 days", components.RenderGoalSparkline(m.week.Values(), st.DailyGoal, 7)),
			row("Active days", fmt.Sprintf("%d of %d", m.week.ActiveDays(), len(m.week))),
		)
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderStreaks(st models.UserStats) string {
	width := m.cardWidth()

	rows := []string{
		styles.CardTitleStyle.Render("Streaks"),
		row("Current", plural(st.CurrentStreak, "day")),
		row("Longest", plural(st.LongestStreak, "day")),
		row("All sessions", fmt.Sprintf("%d", st.TotalSessions())),
		row("All-time focus", formatMinutes(m.focusMinutes)),
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// row renders a key-value row.
func row(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// formatMinutes renders a minute count as "3h 05m", or "42m" under an hour.
func formatMinutes(total int) string {
	if total < 60 {
		return fmt.Sprintf("%dm", max(total, 0))
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}
