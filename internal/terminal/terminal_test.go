package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-widgetdemo/pkg/stopwatch"
	"github.com/goliatone/go-widgetdemo/pkg/testsupport"
	"github.com/goliatone/go-widgetdemo/pkg/wallclock"
)

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyReset = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestStopwatchModel(t *testing.T) {
	mock := clock.NewMock()
	sw := stopwatch.New(stopwatch.WithClock(mock))
	m := NewStopwatch(sw, "Chronomètre", NewStyles(nil))

	view := m.View()
	require.Contains(t, view, "Chronomètre")
	require.Contains(t, view, "00:00:000")
	require.Contains(t, view, "[Start]")

	_, cmd := m.Update(keySpace)
	require.Nil(t, cmd)
	require.True(t, sw.Running())
	require.Contains(t, m.View(), "[Stop]")

	mock.Add(1500 * time.Millisecond)
	m.Update(keySpace)
	require.False(t, sw.Running())
	require.Contains(t, m.View(), "00:01:500")
	require.Contains(t, m.View(), "[Start]")

	m.Update(keyReset)
	require.Contains(t, m.View(), "00:00:000")

	_, cmd = m.Update(keyQuit)
	require.True(t, isQuit(t, cmd))
	require.Empty(t, m.View())
	require.False(t, sw.Start(), "quitting closes the stopwatch")
}

func TestStopwatchModel_FollowsTicks(t *testing.T) {
	mock := clock.NewMock()
	sw := stopwatch.New(stopwatch.WithClock(mock))
	m := NewStopwatch(sw, "Chronomètre", NewStyles(nil))
	t.Cleanup(func() { m.Update(keyQuit) })

	wait := m.Init()
	require.True(t, sw.Start())

	msg := wait()
	_, next := m.Update(msg)
	require.NotNil(t, next)
	require.True(t, m.snapshot.Running)
}

func newTestClock(t *testing.T) (*wallclock.Clock, *clock.Mock) {
	t.Helper()
	mock := testsupport.MockClock(t, testsupport.Noon)
	wc, err := wallclock.New(wallclock.WithClock(mock), wallclock.WithLocation(time.UTC))
	require.NoError(t, err)
	t.Cleanup(wc.Close)
	return wc, mock
}

func TestClockModel(t *testing.T) {
	wc, mock := newTestClock(t)
	m := NewClock(wc, "Horloge", NewStyles(map[string]string{"color-accent": "#ff0000"}))

	view := m.View()
	require.Contains(t, view, "Horloge")
	require.Contains(t, view, "12:00:00")
	require.Contains(t, view, "01/06/2024")

	wait := m.Init()
	require.True(t, wc.Start(context.Background()))
	m.Update(wait())

	mock.Add(time.Second)
	require.Eventually(t, func() bool {
		m.Update(m.next()())
		return strings.Contains(m.View(), "12:00:01")
	}, time.Second, 10*time.Millisecond)

	_, cmd := m.Update(keyQuit)
	require.True(t, isQuit(t, cmd))
	require.Nil(t, m.next()(), "closed feed yields no message")
}

func TestFeedCoalesces(t *testing.T) {
	f := newFeed[int]()
	f.Put(1)
	f.Put(2)
	msg := f.wait(func(v int) tea.Msg { return v })()
	require.Equal(t, 2, msg)

	f.close()
	f.close()
	require.Nil(t, f.wait(func(v int) tea.Msg { return v })())
}
