package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/board"
	"github.com/julianstephens/tracklit/internal/filter"
	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/tui/components/trackers"
	"github.com/julianstephens/tracklit/internal/tui/forms"
)

type SessionState int

const (
	StateTrackers SessionState = iota
	StateSearch
	StateForm
	StateConfirmDelete
)

type Model struct {
	board    *board.Board
	snap     board.Snapshot
	query    filter.Query
	view     board.View
	state    SessionState
	keys     KeyMap
	help     help.Model
	search   textinput.Model
	trackers trackers.Model

	form        *huh.Form
	trackerForm *forms.TrackerFormModel
	editingID   string // empty while adding
	deleteID    string

	status   string
	err      error
	quitting bool
	width    int
	height   int
}

// NewModel builds the TUI over a refreshed board, showing today with mode
func NewModel(b *board.Board, mode models.FilterMode) Model {
	search := textinput.New()
	search.Placeholder = "search trackers"
	search.Prompt = "/ "
	search.CharLimit = 64

	m := Model{
		board:    b,
		snap:     b.Snapshot(),
		query:    filter.Query{Date: b.Now(), Mode: mode},
		state:    StateTrackers,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		search:   search,
		trackers: trackers.New(0, 0),
	}
	m.applyView()
	return m
}

// applyView recomputes the view for the current query and snapshot
func (m *Model) applyView() {
	m.view = m.snap.View(m.query)
	m.query.Mode = m.view.Mode
	m.trackers.SetView(m.view, m.snap)
}

func (m Model) ShortHelp() []key.Binding {
	if m.state == StateSearch {
		return nil
	}
	keys := []key.Binding{m.keys.PrevDay, m.keys.NextDay}
	if !m.view.IsFuture {
		keys = append(keys, m.keys.Toggle)
	}
	if m.view.ShowFilters {
		keys = append(keys, m.keys.Filter)
	}
	return append(keys, m.keys.Search, m.keys.Add, m.keys.Help, m.keys.Quit)
}

func (m Model) FullHelp() [][]key.Binding {
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.PrevDay, m.keys.NextDay, m.keys.Today}
	view := []key.Binding{m.keys.Search}
	if m.view.ShowFilters {
		view = append(view, m.keys.Filter)
	}
	actions := []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	if !m.view.IsFuture {
		actions = append([]key.Binding{m.keys.Toggle}, actions...)
	}
	global := []key.Binding{m.keys.Help, m.keys.Quit}
	return [][]key.Binding{navigation, view, actions, global}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}
