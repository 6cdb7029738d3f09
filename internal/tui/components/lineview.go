package components

import (
	"strings"
	"time"

	"github.com/allbin/serialtail/internal/tui/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultMaxLines caps how many lines the view keeps in memory.
const DefaultMaxLines = 10000

// LineMsg carries one decoded line from the read loop.
type LineMsg struct {
	Timestamp time.Time
	Text      string
}

// LineView is a scrollable list of received lines.
type LineView struct {
	viewport       viewport.Model
	lines          []LineMsg
	maxLines       int
	showTimestamps bool
	follow         bool
}

func NewLineView(width, height int) *LineView {
	return &LineView{
		viewport:       viewport.New(width, height),
		maxLines:       DefaultMaxLines,
		showTimestamps: true,
		follow:         true,
	}
}

// SetMaxLines changes the line cap. Values below 1 are ignored.
func (lv *LineView) SetMaxLines(n int) {
	if n < 1 {
		return
	}
	lv.maxLines = n
	lv.trim()
	lv.refresh()
}

func (lv *LineView) SetSize(width, height int) {
	if height < 1 {
		height = 1
	}
	lv.viewport.Width = width
	lv.viewport.Height = height
	lv.refresh()
}

// Append adds a line, dropping the oldest once the cap is reached.
func (lv *LineView) Append(msg LineMsg) {
	lv.lines = append(lv.lines, msg)
	lv.trim()
	lv.refresh()
}

func (lv *LineView) trim() {
	if over := len(lv.lines) - lv.maxLines; over > 0 {
		lv.lines = append(lv.lines[:0], lv.lines[over:]...)
	}
}

func (lv *LineView) Clear() {
	lv.lines = nil
	lv.refresh()
}

func (lv *LineView) ToggleTimestamps() {
	lv.showTimestamps = !lv.showTimestamps
	lv.refresh()
}

// ToggleFollow switches between sticking to the newest line and free scrolling.
func (lv *LineView) ToggleFollow() {
	lv.follow = !lv.follow
	if lv.follow {
		lv.viewport.GotoBottom()
	}
}

func (lv *LineView) Following() bool {
	return lv.follow
}

func (lv *LineView) Len() int {
	return len(lv.lines)
}

// Lines returns the rendered lines without styling.
func (lv *LineView) Lines() []string {
	out := make([]string, len(lv.lines))
	for i, l := range lv.lines {
		out[i] = lv.format(l, false)
	}
	return out
}

func (lv *LineView) format(l LineMsg, styled bool) string {
	if !lv.showTimestamps {
		if styled {
			return styles.LineStyle.Render(l.Text)
		}
		return l.Text
	}

	ts := l.Timestamp.Format("15:04:05.000")
	if styled {
		return styles.TimestampStyle.Render(ts) + " " + styles.LineStyle.Render(l.Text)
	}
	return ts + " " + l.Text
}

func (lv *LineView) refresh() {
	var b strings.Builder
	for i, l := range lv.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(lv.format(l, true))
	}
	lv.viewport.SetContent(b.String())
	if lv.follow {
		lv.viewport.GotoBottom()
	}
}

// Update forwards scroll keys and mouse events to the viewport. Scrolling up
// stops following.
func (lv *LineView) Update(msg tea.Msg) (*LineView, tea.Cmd) {
	var cmd tea.Cmd
	lv.viewport, cmd = lv.viewport.Update(msg)
	if !lv.viewport.AtBottom() {
		lv.follow = false
	}
	return lv, cmd
}

func (lv *LineView) View() string {
	return lv.viewport.View()
}
