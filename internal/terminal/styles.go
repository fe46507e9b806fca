package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-widgetdemo/pkg/page"
)

// Styles holds the lipgloss styles shared by the widget views.
type Styles struct {
	Title   lipgloss.Style
	Display lipgloss.Style
	Running lipgloss.Style
	Stopped lipgloss.Style
	Muted   lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles builds styles from theme tokens. Missing tokens fall back to the
// default manifest.
func NewStyles(tokens map[string]string) Styles {
	defaults := page.DefaultManifest().Tokens
	color := func(name string) lipgloss.Color {
		if v, ok := tokens[name]; ok && v != "" {
			return lipgloss.Color(v)
		}
		return lipgloss.Color(defaults[name])
	}

	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(color("color-accent")).MarginBottom(1),
		Display: lipgloss.NewStyle().Bold(true).Foreground(color("color-fg")).Padding(0, 2),
		Running: lipgloss.NewStyle().Bold(true).Foreground(color("color-stop")),
		Stopped: lipgloss.NewStyle().Bold(true).Foreground(color("color-start")),
		Muted:   lipgloss.NewStyle().Foreground(color("color-muted")),
		Help:    lipgloss.NewStyle().Foreground(color("color-muted")).MarginTop(1),
	}
}
