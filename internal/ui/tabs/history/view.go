package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focus-tui/internal/models"
	"github.com/j-veylop/focus-tui/internal/ui/components"
	"github.com/j-veylop/focus-tui/internal/ui/styles"
)

// dayNames are weekday abbreviations indexed by time.Weekday.
var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// View renders the history tab.
func (m *Model) View() string {
	if m.loading && m.series == nil {
		return m.renderLoading()
	}
	if m.errorMsg != "" {
		return m.renderError()
	}
	if !m.series.HasData() && len(m.sessions) == 0 {
		return m.renderEmpty()
	}

	sections := []string{
		m.renderHeader(),
		m.renderSessionsChart(),
		m.renderWeeklyPattern(),
		m.renderRecentSessions(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderLoading() string {
	s := m.spinner.ForRange(m.timeRange)
	if eng := m.state.Timer(); eng != nil {
		s = s.ForMode(eng.Mode())
	}
	return s.Centered(m.width, m.height)
}

func (m *Model) renderError() string {
	content := fmt.Sprintf("%s %s",
		styles.ErrorTextStyle.Render("Error:"),
		m.errorMsg,
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("History"),
		m.rangeIndicator(),
		"",
		styles.HelpStyle.Render("No focus sessions recorded yet."),
		styles.HelpStyle.Render("Completed sessions will appear here."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) rangeIndicator() string {
	rangeStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)

	return rangeStyle.Render(fmt.Sprintf("[t] %s", m.timeRange.String()))
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("History")
	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", m.rangeIndicator())

	var subtitle string
	if len(m.series) > 0 {
		first, last := m.series[0], m.series[len(m.series)-1]
		subtitle = styles.HelpStyle.Render(fmt.Sprintf("%s → %s (%d days)",
			first.Date.Format("Jan 2, 2006"),
			last.Date.Format("Jan 2, 2006"),
			len(m.series),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderSessionsChart() string {
	cardWidth := max(m.width-6, 40)
	goal := m.state.GetStats().DailyGoal

	rows := []string{styles.CardTitleStyle.Render("Daily Sessions"), ""}

	chartWidth := max(cardWidth-12, 30)
	chart := components.RenderGoalChart(m.series.Values(), goal, chartWidth, 8,
		fmt.Sprintf("Sessions per day, goal %d", goal))
	for _, line := range strings.Split(chart, "\n") {
		rows = append(rows, "  "+line)
	}

	rows = append(rows, "", "  "+components.RenderLegend([]components.LegendItem{
		{Label: "Sessions", Color: styles.Focus},
		{Label: "Goal", Color: styles.Subtle},
	}))

	rows = append(rows, "", m.renderSummary(goal))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderSummary(goal int) string {
	met := 0
	for _, d := range m.series {
		if goal > 0 && d.Sessions >= goal {
			met++
		}
	}

	parts := []string{
		fmt.Sprintf("Total %d", m.series.Total()),
		fmt.Sprintf("Active days %d", m.series.ActiveDays()),
		fmt.Sprintf("Goal met %d", met),
		fmt.Sprintf("Avg %.1f/day", m.series.Average()),
	}
	if best, ok := m.series.Best(); ok && best.Sessions > 0 {
		parts = append(parts, fmt.Sprintf("Best %s (%d)",
			lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Render(best.Date.Format("Jan 2")),
			best.Sessions,
		))
	}
	return "  " + strings.Join(parts, "  ")
}

// weekdayTotals sums sessions by weekday.
func weekdayTotals(series models.DailySeries) []float64 {
	totals := make([]float64, 7)
	for _, d := range series {
		totals[d.Date.Weekday()] += float64(d.Sessions)
	}
	return totals
}

func (m *Model) renderWeeklyPattern() string {
	cardWidth := max(m.width-6, 40)

	rows := []string{styles.CardTitleStyle.Render("Weekly Pattern"), ""}

	totals := weekdayTotals(m.series)
	barChart := components.RenderBarChart(totals, dayNames, max(cardWidth-12, 30))
	for _, line := range strings.Split(barChart, "\n") {
		rows = append(rows, "  "+line)
	}
	rows = append(rows, "", "  "+components.RenderWeeklyPattern(totals, dayNames))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderRecentSessions() string {
	cardWidth := max(m.width-6, 40)

	rows := []string{styles.CardTitleStyle.Render("Recent Sessions")}

	if len(m.sessions) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  Session log is empty"))
	} else {
		rows = append(rows, styles.TableHeaderStyle.Render(
			fmt.Sprintf("%-18s %-6s %s", "Completed", "Mode", "Minutes")))
		for _, s := range m.sessions {
			mode := styles.GetModeStyle(string(s.Mode)).Width(6).Render(string(s.Mode))
			rows = append(rows, styles.TableCellStyle.Render(fmt.Sprintf("%-18s %s %d",
				s.CompletedAt.Local().Format("Mon Jan 2 15:04"), mode, s.Minutes)))
		}
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
