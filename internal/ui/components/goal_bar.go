// Package components provides reusable UI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focus-tui/internal/logger"
	"github.com/j-veylop/focus-tui/internal/ui/styles"
)

const (
	goalFrom      = "#ff6b6b"
	goalTo        = "#51cf66"
	countdownFrom = "#ffd93d"
	countdownTo   = "#6c5ce7"
)

// GoalBar renders progress toward the daily session goal.
type GoalBar struct {
	progress progress.Model
}

// NewGoalBar creates a goal bar with a red to green gradient.
func NewGoalBar() GoalBar {
	p := progress.New(
		progress.WithScaledGradient(goalFrom, goalTo),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
	return GoalBar{progress: p}
}

// View renders done of goal with a label and a count.
func (g GoalBar) View(done, goal int, label string, width int) string {
	barWidth := max(width-30, 10)
	g.progress.Width = barWidth

	ratio := goalRatio(done, goal)
	bar := g.progress.ViewAs(ratio)

	countStr := styles.GetGoalStyle(ratio).
		Width(8).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%d/%d", done, goal))

	labelStr := styles.ProgressLabelStyle.Width(15).Render(label)

	return lipgloss.JoinHorizontal(lipgloss.Center, labelStr, bar, " ", countStr)
}

// goalRatio clamps done/goal to [0, 1]. Exceeding the goal shows a full bar.
func goalRatio(done, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	r := float64(done) / float64(goal)
	return min(max(r, 0), 1)
}

// RenderCountdownBar renders elapsed progress of an interval. The bar fills
// as the countdown runs.
func RenderCountdownBar(progress float64, width int) string {
	return renderGradient(progress, width, countdownFrom, countdownTo)
}

// RenderGradientBar renders just the bar part with gradient colors.
func RenderGradientBar(percent float64, width int) string {
	return renderGradient(percent/100, width, goalFrom, goalTo)
}

func renderGradient(ratio float64, width int, from, to string) string {
	if width < 1 {
		return ""
	}

	filled := int(float64(width) * ratio)
	filled = min(max(filled, 0), width)

	var b strings.Builder
	empty := lipgloss.NewStyle().Foreground(styles.Subtle)
	for i := 0; i < width; i++ {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(interpolateColor(from, to, t)))
			b.WriteString(style.Render("█"))
		} else {
			b.WriteString(empty.Render("░"))
		}
	}
	return b.String()
}

// SimpleGoalBar renders a compact labelled goal bar.
func SimpleGoalBar(done, goal int, label string, width int) string {
	countWidth := 8
	barWidth := max(width-len(label)-1-countWidth-4, 5)

	ratio := goalRatio(done, goal)
	bar := RenderGradientBar(ratio*100, barWidth)

	labelStr := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(label)

	countStr := styles.GetGoalStyle(ratio).
		Width(countWidth).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%d/%d", done, goal))

	return fmt.Sprintf("%s [%s] %s", labelStr, bar, countStr)
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
