package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateForm:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = m.viewTrackers()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	date := m.view.Date
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(constants.AppName),
		dateStyle.Render(fmt.Sprintf("%s, %s", date.Weekday(), date.Format(constants.DateFormat))),
	)

	var meta []string
	if models.SameDay(date, m.board.Now(), m.board.Location()) {
		meta = append(meta, "today")
	}
	if m.view.ShowFilters {
		meta = append(meta, "filter: "+m.view.Mode.Label())
	}
	if m.view.IsFuture {
		meta = append(meta, warningStyle.Render("future date"))
	}
	meta = append(meta, fmt.Sprintf("completed: %d", m.view.CompletedCount))
	header = lipgloss.JoinVertical(lipgloss.Left, header, hintStyle.Render(strings.Join(meta, " · ")))

	if m.state == StateSearch {
		header = lipgloss.JoinVertical(lipgloss.Left, header, m.search.View())
	} else if m.view.Search != "" {
		header = lipgloss.JoinVertical(lipgloss.Left, header, hintStyle.Render(fmt.Sprintf("search: %q", m.view.Search)))
	}
	return header
}

func (m Model) viewTrackers() string {
	if msg := m.view.EmptyState.Message(); msg != "" {
		return emptyStyle.Render(msg)
	}
	return docStyle.Render(m.trackers.View())
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render(errors.UserMessage(m.err))
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	name := m.deleteID
	if t, ok := m.snap.Tracker(m.deleteID); ok {
		name = t.Name
	}
	return lipgloss.Place(m.width, max(m.height-6, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q and all of its completions?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
