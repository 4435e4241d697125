// Package styles holds the lipgloss styles and tracker row rendering shared
// by the command output and the TUI.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracklit/internal/models"
)

var (
	Title = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	Category = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Underline(true)

	Muted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	Done = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	Success = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	Warning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	Empty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true).
			Padding(1, 2)
)

// Swatch renders a colored dot for a tracker color
func Swatch(color string) string {
	if color == "" {
		return Muted.Render("●")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

// Checkbox renders the completion state of a tracker
func Checkbox(done bool) string {
	if done {
		return Done.Render("[x]")
	}
	return "[ ]"
}

// TrackerLine renders one tracker row: swatch, emoji, name and schedule
func TrackerLine(t models.Tracker) string {
	name := t.Name
	if t.Emoji != "" {
		name = t.Emoji + " " + name
	}
	return fmt.Sprintf("%s %s %s", Swatch(t.Color), name, Muted.Render("("+t.Schedule.String()+")"))
}
