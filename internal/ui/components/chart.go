package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/focus-tui/internal/ui/styles"
)

// sparkChars are Unicode block characters for sparklines (low to high).
var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	// asciigraph needs two points to draw a line.
	if len(data) == 1 {
		data = []float64{data[0], data[0]}
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.Caption(caption),
	)
}

// RenderGoalChart plots daily sessions against the daily goal line.
func RenderGoalChart(data []float64, goal, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	series := data
	if len(series) == 1 {
		series = []float64{series[0], series[0]}
	}
	target := make([]float64, len(series))
	for i := range target {
		target[i] = float64(goal)
	}

	return asciigraph.PlotMany([][]float64{series, target},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Orange, asciigraph.DarkGray),
	)
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := maxOf(values)

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, len(l))
	}

	barWidth := max(width-maxLabelLen-10, 10)

	var lines []string
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		paddedLabel := fmt.Sprintf("%*s", maxLabelLen, label)
		barLen := max(int((v/maxVal)*float64(barWidth)), 0)

		bar := strings.Repeat("█", barLen)
		lines = append(lines, fmt.Sprintf("%s │%s %.0f", paddedLabel, bar, v))
	}

	return strings.Join(lines, "\n")
}

// RenderWeeklyPattern shows sessions per weekday as labelled spark blocks.
func RenderWeeklyPattern(patterns []float64, dayNames []string) string {
	if len(patterns) != 7 {
		padded := make([]float64, 7)
		copy(padded, patterns)
		patterns = padded
	}
	if len(dayNames) != 7 {
		dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	}

	maxVal := maxOf(patterns)

	parts := make([]string, 0, len(patterns))
	for i, v := range patterns {
		spark := string(sparkChars[sparkIndex(v, maxVal)])
		parts = append(parts, fmt.Sprintf("%s %s", dayNames[i], spark))
	}

	return strings.Join(parts, " ")
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := maxOf(values)

	var result strings.Builder
	for _, v := range sample(values, width) {
		result.WriteRune(sparkChars[sparkIndex(v, maxVal)])
	}
	return result.String()
}

// RenderGoalSparkline colors each day by whether it met the goal.
func RenderGoalSparkline(values []float64, goal, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := maxOf(values)

	var result strings.Builder
	for _, v := range sample(values, width) {
		ratio := 0.0
		if goal > 0 {
			ratio = v / float64(goal)
		}
		style := styles.GetGoalStyle(ratio)
		result.WriteString(style.Render(string(sparkChars[sparkIndex(v, maxVal)])))
	}
	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.TerminalColor
}

// sample picks at most width values spread evenly across values.
func sample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	step := float64(len(values)) / float64(width)
	out := make([]float64, 0, width)
	for i := 0; i < width; i++ {
		out = append(out, values[int(float64(i)*step)])
	}
	return out
}

func sparkIndex(v, maxVal float64) int {
	idx := int((v / maxVal) * float64(len(sparkChars)-1))
	return min(max(idx, 0), len(sparkChars)-1)
}

// maxOf returns the largest value, or 1 when all are zero so callers can divide.
func maxOf(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = max(m, v)
	}
	if m == 0 {
		return 1
	}
	return m
}
