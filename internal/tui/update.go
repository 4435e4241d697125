package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/board"
	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/logger"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tui/forms"
)

// snapshotMsg carries the snapshot produced by a committed board operation
type snapshotMsg struct {
	snap   board.Snapshot
	status string
}

type errMsg struct {
	err error
}

func boardCmd(fn func(ctx context.Context) (board.Snapshot, string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.StorageTimeout)
		defer cancel()
		snap, status, err := fn(ctx)
		if err != nil {
			logger.Error("Board operation failed", "error", err)
			return errMsg{err: err}
		}
		return snapshotMsg{snap: snap, status: status}
	}
}

func (m Model) refresh() tea.Cmd {
	b := m.board
	return boardCmd(func(ctx context.Context) (board.Snapshot, string, error) {
		snap, err := b.Refresh(ctx)
		return snap, "", err
	})
}

func (m Model) toggle(t models.Tracker) tea.Cmd {
	b, date := m.board, m.view.Date
	return boardCmd(func(ctx context.Context) (board.Snapshot, string, error) {
		done, snap, err := b.ToggleCompletion(ctx, t.ID, date)
		if err != nil {
			return snap, "", err
		}
		if done {
			return snap, fmt.Sprintf("✓ %s done", t.Name), nil
		}
		return snap, fmt.Sprintf("%s unmarked", t.Name), nil
	})
}

func (m Model) saveTracker(id string, in board.TrackerInput) tea.Cmd {
	b := m.board
	return boardCmd(func(ctx context.Context) (board.Snapshot, string, error) {
		if id == "" {
			t, snap, err := b.CreateTracker(ctx, in)
			return snap, fmt.Sprintf("Added %q", t.Name), err
		}
		snap, err := b.UpdateTracker(ctx, id, in)
		return snap, fmt.Sprintf("Updated %q", in.Name), err
	})
}

func (m Model) deleteTracker(id string) tea.Cmd {
	b := m.board
	name := id
	if t, ok := m.snap.Tracker(id); ok {
		name = t.Name
	}
	return boardCmd(func(ctx context.Context) (board.Snapshot, string, error) {
		snap, err := b.DeleteTracker(ctx, id)
		return snap, fmt.Sprintf("Deleted %q", name), err
	})
}

func (m Model) categoryTitles() []string {
	titles := make([]string, 0, len(m.snap.Categories))
	for _, c := range m.snap.Categories {
		titles = append(titles, c.Title)
	}
	return titles
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// header, status and help lines
		m.trackers.SetSize(msg.Width-4, msg.Height-8)
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width - 4)
		}
		return m, nil

	case snapshotMsg:
		m.snap = msg.snap
		m.status = msg.status
		m.err = nil
		m.applyView()
		return m, nil

	case errMsg:
		m.err = msg.err
		m.status = ""
		return m, nil
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateSearch:
		return m.updateSearch(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m.updateTrackers(msg)
}

// shiftDay moves the displayed date. The today mode pins the date, so
// navigating out of it falls back to showing all trackers.
func (m *Model) shiftDay(days int) {
	if m.query.Mode == models.FilterToday {
		m.query.Mode = models.FilterAll
	}
	m.query.Date = m.view.Date.AddDate(0, 0, days)
	m.applyView()
}

func (m Model) updateTrackers(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.PrevDay):
		m.shiftDay(-1)
	case key.Matches(keyMsg, m.keys.NextDay):
		m.shiftDay(1)
	case key.Matches(keyMsg, m.keys.Today):
		m.query.Date = m.board.Now()
		m.applyView()
	case key.Matches(keyMsg, m.keys.Filter):
		if m.view.ShowFilters {
			m.query.Mode = m.query.Mode.Next()
			m.applyView()
		}
	case key.Matches(keyMsg, m.keys.Search):
		m.state = StateSearch
		m.search.SetValue(m.query.Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(keyMsg, m.keys.Toggle):
		if m.view.IsFuture {
			m.status = ""
			m.err = errors.ErrFutureDate
			return m, nil
		}
		if t, ok := m.trackers.Selected(); ok {
			return m, m.toggle(t)
		}
	case key.Matches(keyMsg, m.keys.Add):
		return m.openForm("", &forms.TrackerFormModel{})
	case key.Matches(keyMsg, m.keys.Edit):
		if t, ok := m.trackers.Selected(); ok {
			return m.openForm(t.ID, forms.FromTracker(t))
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if t, ok := m.trackers.Selected(); ok {
			m.deleteID = t.ID
			m.state = StateConfirmDelete
		}
	default:
		var cmd tea.Cmd
		m.trackers, cmd = m.trackers.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) openForm(id string, fm *forms.TrackerFormModel) (tea.Model, tea.Cmd) {
	m.editingID = id
	m.trackerForm = fm
	m.form = forms.NewTrackerForm(fm, m.categoryTitles())
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width - 4)
	}
	m.state = StateForm
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		id, in := m.editingID, m.trackerForm.Input()
		m.closeForm()
		return m, m.saveTracker(id, in)
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.trackerForm = nil
	m.editingID = ""
	m.state = StateTrackers
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			m.query.Search = ""
			m.search.Blur()
			m.state = StateTrackers
			m.applyView()
			return m, nil
		case tea.KeyEnter:
			m.search.Blur()
			m.state = StateTrackers
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.query.Search {
		m.query.Search = m.search.Value()
		m.applyView()
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		id := m.deleteID
		m.deleteID = ""
		m.state = StateTrackers
		return m, m.deleteTracker(id)
	case "n", "N", "esc", "q":
		m.deleteID = ""
		m.state = StateTrackers
	}
	return m, nil
}
