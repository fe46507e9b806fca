package terminal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-widgetdemo/pkg/wallclock"
)

type readingMsg wallclock.Reading

// ClockModel shows the wall clock and its date.
type ClockModel struct {
	feed        *feed[wallclock.Reading]
	unsubscribe func()
	reading     wallclock.Reading
	title       string
	styles      Styles
	quitting    bool
}

// NewClock subscribes to c. The caller owns c and starts it.
func NewClock(c *wallclock.Clock, title string, styles Styles) *ClockModel {
	f := newFeed[wallclock.Reading]()
	return &ClockModel{
		feed:        f,
		unsubscribe: c.Subscribe(f.Put),
		reading:     c.Read(),
		title:       title,
		styles:      styles,
	}
}

func (m *ClockModel) Init() tea.Cmd {
	return m.next()
}

func (m *ClockModel) next() tea.Cmd {
	return m.feed.wait(func(r wallclock.Reading) tea.Msg { return readingMsg(r) })
}

func (m *ClockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readingMsg:
		m.reading = wallclock.Reading(msg)
		return m, m.next()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quit()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *ClockModel) quit() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.unsubscribe()
	m.feed.close()
}

func (m *ClockModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.styles.Display.Render(m.reading.Time))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.reading.Date + "  " + m.reading.Zone))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("q: quit"))
	b.WriteString("\n")
	return b.String()
}
