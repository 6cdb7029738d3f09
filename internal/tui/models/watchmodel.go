package models

import (
	"context"

	"github.com/allbin/serialtail/internal/tui/components"
	"github.com/allbin/serialtail/internal/tui/keys"
	"github.com/allbin/serialtail/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WatchModel is the Bubble Tea model of the line viewer. Lines and status
// changes arrive as components.LineMsg, components.ConnectionStatusMsg and
// components.LoopEndedMsg sent from the read goroutine.
type WatchModel struct {
	lines     *components.LineView
	statusBar *components.StatusBar
	help      help.Model
	keys      keys.WatchKeys

	ready     bool
	connected bool

	// Cancels the read loop on quit
	ctx    context.Context
	cancel context.CancelFunc
}

func NewWatchModel(parent context.Context, portPath, frame string) *WatchModel {
	ctx, cancel := context.WithCancel(parent)

	return &WatchModel{
		lines:     components.NewLineView(80, 20),
		statusBar: components.NewStatusBar(portPath, frame),
		help:      help.New(),
		keys:      keys.NewWatchKeys(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Context is cancelled when the viewer quits.
func (m *WatchModel) Context() context.Context {
	return m.ctx
}

func (m *WatchModel) Cancel() {
	m.cancel()
}

func (m *WatchModel) IsConnected() bool {
	return m.connected
}

func (m *WatchModel) Lines() *components.LineView {
	return m.lines
}

func (m *WatchModel) StatusBar() *components.StatusBar {
	return m.statusBar
}

func (m *WatchModel) Init() tea.Cmd {
	return nil
}

func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Border line on top, status bar below
		m.lines.SetSize(msg.Width, msg.Height-2)
		m.statusBar.SetWidth(msg.Width)
		m.ready = true

	case components.ConnectionStatusMsg:
		m.connected = msg.Connected
		if msg.Error != nil {
			m.statusBar.SetEnded(msg.Error)
		} else {
			m.statusBar.SetConnected()
		}

	case components.LineMsg:
		m.lines.Append(msg)

	case components.LoopEndedMsg:
		m.connected = false
		m.statusBar.SetEnded(msg.Error)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			m.lines.Clear()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.ToggleTimestamps):
			m.lines.ToggleTimestamps()

		case key.Matches(msg, m.keys.ToggleFollow):
			m.lines.ToggleFollow()

		default:
			var cmd tea.Cmd
			m.lines, cmd = m.lines.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.lines, cmd = m.lines.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *WatchModel) View() string {
	content := "Initializing..."
	if m.ready {
		content = m.lines.View()
	}

	sections := []string{styles.ContentBorderStyle.Render(content)}
	if m.help.ShowAll {
		sections = append(sections, styles.HelpStyle.Render(m.help.View(m.keys)))
	}
	sections = append(sections, m.statusBar.View(m.lines.Following(), m.lines.Len()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
