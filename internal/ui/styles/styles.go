// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the focus theme. Adaptive colors follow the dark
// mode setting through lipgloss.SetHasDarkBackground.
var (
	// Primary colors
	Primary   = lipgloss.AdaptiveColor{Light: "162", Dark: "205"} // Pink
	Secondary = lipgloss.AdaptiveColor{Light: "55", Dark: "63"}   // Purple
	Subtle    = lipgloss.AdaptiveColor{Light: "248", Dark: "240"} // Gray

	// Mode colors
	Focus = lipgloss.AdaptiveColor{Light: "166", Dark: "208"} // Orange
	Break = lipgloss.AdaptiveColor{Light: "31", Dark: "39"}   // Blue

	// Status colors
	Success = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	Error   = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	Warning = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	Info    = lipgloss.AdaptiveColor{Light: "31", Dark: "39"}

	// Background colors
	BgDark   = lipgloss.AdaptiveColor{Light: "255", Dark: "235"}
	BgLight  = lipgloss.AdaptiveColor{Light: "253", Dark: "237"}
	BgAccent = lipgloss.AdaptiveColor{Light: "254", Dark: "236"}

	// Text colors
	TextPrimary   = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "246", Dark: "240"}

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary).
	MarginBottom(1)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(1, 2).
	MarginBottom(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// FocusedStyle is used for focused input elements.
var FocusedStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// BlurredStyle is used for unfocused input elements.
var BlurredStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// ProgressLabelStyle styles progress bar labels.
var ProgressLabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Width(20)

// ProgressPercentStyle styles the percentage display.
var ProgressPercentStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Width(6).
	Align(lipgloss.Right)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpKeyStyle styles keyboard shortcut keys.
var HelpKeyStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// HelpDescStyle styles help descriptions.
var HelpDescStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// ListItemStyle styles list items.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedListItemStyle styles selected list items.
var SelectedListItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Foreground(Primary).
	Bold(true)

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	BorderStyle(lipgloss.NormalBorder()).
	BorderBottom(true).
	BorderForeground(Subtle)

// TableCellStyle styles table cells.
var TableCellStyle = lipgloss.NewStyle().
	Padding(0, 1)

// FocusModeStyle styles focus interval indicators.
var FocusModeStyle = lipgloss.NewStyle().
	Foreground(Focus).
	Bold(true)

// BreakModeStyle styles break interval indicators.
var BreakModeStyle = lipgloss.NewStyle().
	Foreground(Break).
	Bold(true)

// CountdownStyle frames the large countdown display.
var CountdownStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Secondary).
	Padding(1, 6).
	MarginBottom(1)

// GoalMetStyle for a reached daily goal.
var GoalMetStyle = lipgloss.NewStyle().
	Foreground(Success).
	Bold(true)

// GoalProgressStyle for partial progress toward the goal.
var GoalProgressStyle = lipgloss.NewStyle().
	Foreground(Warning)

// GoalEmptyStyle for a day with nothing done yet.
var GoalEmptyStyle = lipgloss.NewStyle().
	Foreground(Subtle)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// InfoTextStyle for info messages.
var InfoTextStyle = lipgloss.NewStyle().
	Foreground(Info)

// ButtonStyle is the base button style.
var ButtonStyle = lipgloss.NewStyle().
	Padding(0, 2).
	MarginRight(1)

// ButtonActiveStyle styles active/focused buttons.
var ButtonActiveStyle = ButtonStyle.
	Background(Primary).
	Foreground(lipgloss.Color("229")).
	Bold(true)

var ButtonInactiveStyle = ButtonStyle.
	Background(BgLight).
	Foreground(TextSecondary)

// GetGoalStyle returns the style for progress toward the daily goal.
func GetGoalStyle(progress float64) lipgloss.Style {
	switch {
	case progress >= 1:
		return GoalMetStyle
	case progress > 0:
		return GoalProgressStyle
	default:
		return GoalEmptyStyle
	}
}

// GetModeStyle returns the style for a session mode name.
func GetModeStyle(mode string) lipgloss.Style {
	if mode == "break" {
		return BreakModeStyle
	}
	return FocusModeStyle
}

// CenterHorizontal centers content horizontally within a given width.
func CenterHorizontal(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
