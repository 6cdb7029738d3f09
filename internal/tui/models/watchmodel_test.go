package models

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/allbin/serialtail/internal/tui/components"
	"github.com/allbin/serialtail/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) *WatchModel {
	t.Helper()
	m := NewWatchModel(context.Background(), "/dev/ttyACM0", "115200 8N1")
	t.Cleanup(m.Cancel)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 20})
	return m
}

func TestWatchModel_InitialView(t *testing.T) {
	m := NewWatchModel(context.Background(), "/dev/ttyACM0", "115200 8N1")
	defer m.Cancel()

	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "Initializing...")
	assert.Equal(t, styles.StatusConnecting, m.StatusBar().Status())
}

func TestWatchModel_ConnectAndLines(t *testing.T) {
	m := newTestModel(t)

	m.Update(components.ConnectionStatusMsg{Connected: true})
	assert.True(t, m.IsConnected())
	assert.Equal(t, styles.StatusConnected, m.StatusBar().Status())

	now := time.Now()
	m.Update(components.LineMsg{Timestamp: now, Text: "hello"})
	m.Update(components.LineMsg{Timestamp: now, Text: "world"})

	assert.Equal(t, 2, m.Lines().Len())
	view := m.View()
	assert.Contains(t, view, "hello")
	assert.Contains(t, view, "world")
	assert.Contains(t, view, "2 lines")
}

func TestWatchModel_ConnectFailure(t *testing.T) {
	m := newTestModel(t)
	openErr := errors.New("no such device")

	m.Update(components.ConnectionStatusMsg{Connected: false, Error: openErr})

	assert.False(t, m.IsConnected())
	assert.Equal(t, styles.StatusError, m.StatusBar().Status())
	assert.Contains(t, m.View(), "no such device")
}

func TestWatchModel_LoopEnded(t *testing.T) {
	m := newTestModel(t)
	m.Update(components.ConnectionStatusMsg{Connected: true})

	m.Update(components.LoopEndedMsg{})
	assert.False(t, m.IsConnected())
	assert.Equal(t, styles.StatusEnded, m.StatusBar().Status())
}

func TestWatchModel_Keys(t *testing.T) {
	m := newTestModel(t)
	m.Update(components.LineMsg{Timestamp: time.Now(), Text: "hello"})

	m.Update(runes("t"))
	assert.Equal(t, []string{"hello"}, m.Lines().Lines())

	m.Update(runes("f"))
	assert.False(t, m.Lines().Following())

	m.Update(runes("?"))
	assert.Contains(t, m.View(), "clear buffer")

	m.Update(runes("c"))
	assert.Zero(t, m.Lines().Len())
}

func TestWatchModel_QuitCancelsContext(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m := NewWatchModel(context.Background(), "/dev/ttyACM0", "115200 8N1")

		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, "expected quit for %q", msg.String())
		assert.ErrorIs(t, m.Context().Err(), context.Canceled)
	}
}
