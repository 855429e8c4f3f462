package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/achievify/goaltrack/internal/model"
)

// Apply pins the palette side used by the adaptive colors. The saved
// preference overrides background detection so the choice survives
// terminals that misreport their background.
func Apply(name string) {
	lipgloss.SetHasDarkBackground(name != model.ThemeLight)
}

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorSky     = lipgloss.AdaptiveColor{Dark: "#38BDF8", Light: "#0284C7"}
	ColorLime    = lipgloss.AdaptiveColor{Dark: "#A3E635", Light: "#65A30D"}
	ColorRose    = lipgloss.AdaptiveColor{Dark: "#FB7185", Light: "#BE123C"}
	ColorIndigo  = lipgloss.AdaptiveColor{Dark: "#818CF8", Light: "#4F46E5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the application title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps full-screen overlay content.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for goal lines.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused goal.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle de-emphasizes completed goals.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// OverdueStyle flags goals past their due date.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// DueDateStyle renders the due-date suffix on a goal line.
var DueDateStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// CategoryStyle returns the badge style for a goal category. The
// palette mirrors the category colors of the web client.
func CategoryStyle(c model.Category) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(ColorWhite)

	switch c {
	case model.CategoryWork:
		return base.Background(ColorSky)
	case model.CategoryPersonal:
		return base.Background(ColorLime)
	case model.CategoryFitness:
		return base.Background(ColorRose)
	case model.CategoryLearning:
		return base.Background(ColorIndigo)
	default:
		return base.Background(ColorSubtle)
	}
}

// CategoryBarColor returns the chart bar color for a category.
func CategoryBarColor(c model.Category) lipgloss.AdaptiveColor {
	switch c {
	case model.CategoryWork:
		return ColorSky
	case model.CategoryPersonal:
		return ColorLime
	case model.CategoryFitness:
		return ColorRose
	case model.CategoryLearning:
		return ColorIndigo
	default:
		return ColorGray
	}
}

// PriorityStyle returns a color-coded style for a goal priority.
func PriorityStyle(p model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch p {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}
