package terminal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-widgetdemo/pkg/stopwatch"
)

type snapshotMsg stopwatch.Snapshot

// StopwatchModel drives a stopwatch from the keyboard: space toggles, r
// resets and q quits.
type StopwatchModel struct {
	sw          *stopwatch.Stopwatch
	feed        *feed[stopwatch.Snapshot]
	unsubscribe func()
	snapshot    stopwatch.Snapshot
	title       string
	styles      Styles
	quitting    bool
}

// NewStopwatch subscribes to sw. Quitting the model closes sw.
func NewStopwatch(sw *stopwatch.Stopwatch, title string, styles Styles) *StopwatchModel {
	f := newFeed[stopwatch.Snapshot]()
	return &StopwatchModel{
		sw:          sw,
		feed:        f,
		unsubscribe: sw.Subscribe(f.Put),
		snapshot:    sw.Snapshot(),
		title:       title,
		styles:      styles,
	}
}

func (m *StopwatchModel) Init() tea.Cmd {
	return m.next()
}

func (m *StopwatchModel) next() tea.Cmd {
	return m.feed.wait(func(s stopwatch.Snapshot) tea.Msg { return snapshotMsg(s) })
}

func (m *StopwatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snapshot = stopwatch.Snapshot(msg)
		return m, m.next()
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "s", "enter":
			m.snapshot = m.sw.Toggle()
		case "r":
			m.sw.Reset()
			m.snapshot = m.sw.Snapshot()
		case "q", "esc", "ctrl+c":
			m.quit()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *StopwatchModel) quit() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.unsubscribe()
	m.feed.close()
	m.sw.Close()
}

func (m *StopwatchModel) View() string {
	if m.quitting {
		return ""
	}
	label := m.styles.Stopped.Render("[" + m.snapshot.Label() + "]")
	if m.snapshot.Running {
		label = m.styles.Running.Render("[" + m.snapshot.Label() + "]")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.styles.Display.Render(m.snapshot.Display()))
	b.WriteString("\n")
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("space: start/stop  r: reset  q: quit"))
	b.WriteString("\n")
	return b.String()
}
