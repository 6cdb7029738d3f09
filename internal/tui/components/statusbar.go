package components

import (
	"fmt"

	"github.com/allbin/serialtail/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// ConnectionStatusMsg reports that the port was opened, or failed to open.
type ConnectionStatusMsg struct {
	Connected bool
	Error     error
}

// LoopEndedMsg reports that the read loop returned. Error is nil when the
// loop was cancelled.
type LoopEndedMsg struct {
	Error error
}

type StatusBar struct {
	portPath string
	frame    string
	status   styles.StatusType
	err      error
	width    int
}

// NewStatusBar creates a status bar for portPath. frame is the line settings
// summary, e.g. "115200 8N1".
func NewStatusBar(portPath, frame string) *StatusBar {
	return &StatusBar{
		portPath: portPath,
		frame:    frame,
		status:   styles.StatusConnecting,
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetConnecting() {
	sb.status = styles.StatusConnecting
	sb.err = nil
}

func (sb *StatusBar) SetConnected() {
	sb.status = styles.StatusConnected
	sb.err = nil
}

// SetEnded marks the read loop as finished. A nil err means a clean stop.
func (sb *StatusBar) SetEnded(err error) {
	sb.err = err
	if err != nil {
		sb.status = styles.StatusError
		return
	}
	sb.status = styles.StatusEnded
}

func (sb *StatusBar) Status() styles.StatusType {
	return sb.status
}

func (sb *StatusBar) Err() error {
	return sb.err
}

func (sb *StatusBar) label() string {
	switch sb.status {
	case styles.StatusConnecting:
		return "CONNECTING"
	case styles.StatusConnected:
		return "READING"
	case styles.StatusEnded:
		return "ENDED"
	default:
		return "ERROR"
	}
}

// View renders the bar. following and lines describe the line view.
func (sb *StatusBar) View(following bool, lines int) string {
	width := sb.width
	if width <= 0 {
		width = 80
	}

	mode := styles.GetModeStyle(sb.status).Render(sb.label())
	port := styles.PortStyle.Render(sb.portPath)
	divider := styles.DividerStyle.Render("│")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, mode, port, divider)
	if sb.err != nil {
		leftSide = lipgloss.JoinHorizontal(lipgloss.Left, leftSide,
			styles.DetailStyle.Render(sb.err.Error()), divider)
	}

	followText := "SCROLL"
	if following {
		followText = "FOLLOW"
	}
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left,
		styles.DetailStyle.Render("⚡ "+sb.frame),
		divider,
		styles.DetailStyle.Render(fmt.Sprintf("%d lines", lines)),
		divider,
		styles.DetailStyle.Render(followText),
	)

	spacerWidth := width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	content := lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide)
	return styles.StatusBarStyle.Width(width).Render(content)
}
