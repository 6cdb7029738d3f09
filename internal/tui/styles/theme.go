package styles

import (
	"github.com/allbin/serialtail/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Content area
	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colors.Surface1)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(colors.Subtext0)

	LineStyle = lipgloss.NewStyle().
			Foreground(colors.Text)

	// Status bar sections
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colors.Text).
			Background(colors.Surface0)

	PortStyle = lipgloss.NewStyle().
			Foreground(colors.Mauve).
			Bold(true).
			Padding(0, 1)

	DetailStyle = lipgloss.NewStyle().
			Foreground(colors.Subtext1).
			Padding(0, 1)

	DividerStyle = lipgloss.NewStyle().
			Foreground(colors.Surface2).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Surface2).
			Padding(1, 2).
			Margin(1, 0)
)

type StatusType int

const (
	StatusConnecting StatusType = iota
	StatusConnected
	StatusEnded
	StatusError
)

// GetModeStyle returns the badge style for the leftmost status bar section.
func GetModeStyle(status StatusType) lipgloss.Style {
	base := lipgloss.NewStyle().
		Foreground(colors.Base).
		Bold(true).
		Padding(0, 1)

	switch status {
	case StatusConnected:
		return base.Background(colors.Green)
	case StatusConnecting:
		return base.Background(colors.Yellow)
	case StatusEnded:
		return base.Background(colors.Peach)
	default:
		return base.Background(colors.Red)
	}
}
