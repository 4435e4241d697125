// Package trackers renders the trackers of a board view grouped by category
// and keeps the selection stable across snapshot reloads.
package trackers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracklit/internal/board"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tui/styles"
)

var (
	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	scrollStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type KeyMap struct {
	Up   key.Binding
	Down key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
	}
}

type Model struct {
	keys       KeyMap
	categories []models.TrackerCategory
	flat       []models.Tracker
	done       map[string]bool
	cursor     int
	disabled   bool
	width      int
	height     int
}

func New(width, height int) Model {
	return Model{
		keys:   DefaultKeyMap(),
		done:   map[string]bool{},
		width:  width,
		height: height,
	}
}

// SetView replaces the rows with the view's trackers. The selected tracker
// stays selected when it is still visible.
func (m *Model) SetView(view board.View, snap board.Snapshot) {
	selected, hadSelection := m.Selected()

	m.categories = view.Categories
	m.flat = nil
	m.done = make(map[string]bool)
	for _, cat := range view.Categories {
		for _, t := range cat.Trackers {
			m.flat = append(m.flat, t)
			m.done[t.ID] = snap.IsCompleted(t.ID, view.Date)
		}
	}
	m.disabled = view.IsFuture

	if hadSelection {
		for i, t := range m.flat {
			if t.ID == selected.ID {
				m.cursor = i
				return
			}
		}
	}
	m.clamp()
}

func (m *Model) clamp() {
	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the tracker under the cursor
func (m Model) Selected() (models.Tracker, bool) {
	if m.cursor < 0 || m.cursor >= len(m.flat) {
		return models.Tracker{}, false
	}
	return m.flat[m.cursor], true
}

func (m Model) Len() int {
	return len(m.flat)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.flat)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var lines []string
	cursorLine := 0
	i := 0
	for _, cat := range m.categories {
		lines = append(lines, categoryStyle.Render(cat.Title))
		for _, t := range cat.Trackers {
			prefix := "  "
			line := fmt.Sprintf("%s %s", m.checkbox(t.ID), styles.TrackerLine(t))
			if i == m.cursor {
				prefix = selectedStyle.Render("› ")
				cursorLine = len(lines)
			}
			lines = append(lines, prefix+line)
			i++
		}
		lines = append(lines, "")
	}
	out := strings.Join(m.window(lines, cursorLine), "\n")
	if m.width > 0 {
		out = lipgloss.NewStyle().MaxWidth(m.width).Render(out)
	}
	return out
}

func (m Model) checkbox(id string) string {
	if m.disabled {
		return scrollStyle.Render("[-]")
	}
	return styles.Checkbox(m.done[id])
}

// window keeps the cursor line visible when the rows exceed the height
func (m Model) window(lines []string, cursorLine int) []string {
	if m.height <= 2 || len(lines) <= m.height {
		return lines
	}
	size := m.height - 1
	start := cursorLine - size/2
	if start < 0 {
		start = 0
	}
	if start+size > len(lines) {
		start = len(lines) - size
	}
	out := append([]string(nil), lines[start:start+size]...)
	return append(out, scrollStyle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(m.flat))))
}
