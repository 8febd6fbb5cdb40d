package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lifeguide/internal/config"
	"github.com/vovakirdan/lifeguide/internal/level"
	"github.com/vovakirdan/lifeguide/internal/storage"
)

type screen int

const (
	screenMenu screen = iota
	screenBoard
	screenResults
)

// AppModel manages the full flow: level list -> board -> level list, with
// the results screen one tab away. Local play and SSH sessions both run it.
type AppModel struct {
	levels  []level.Level
	store   *storage.Store
	cfg     config.Config
	logger  *log.Logger
	screen  screen
	menu    MenuModel
	board   Model
	results ResultsModel
	width   int
	height  int
	err     error // last board start failure, shown in the menu
}

// NewApp creates an app model that opens on the level list.
func NewApp(levels []level.Level, store *storage.Store, cfg config.Config, logger *log.Logger) AppModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return AppModel{
		levels: levels,
		store:  store,
		cfg:    cfg,
		logger: logger,
		menu:   NewMenuModel(levels, store, 80, 24),
	}
}

// Play returns the app opened on the board for level i.
func (m AppModel) Play(i int) (AppModel, error) {
	board, err := NewModel(m.levels, i, m.store, m.cfg, m.logger)
	if err != nil {
		return m, err
	}
	m.board = board
	m.screen = screenBoard
	return m, nil
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	switch m.screen {
	case screenBoard:
		return m.board.Init()
	case screenResults:
		return m.results.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the current screen and switches screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenBoard:
		return m.updateBoard(msg)
	case screenResults:
		return m.updateResults(msg)
	}
	return m.updateMenu(msg)
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		return m, tea.Quit
	}

	if m.menu.WantsResults() {
		m.results = NewResultsModel(m.levels, m.menu.Cursor(), m.store, m.width, m.height)
		m.screen = screenResults
		return m, m.results.Init()
	}

	if i := m.menu.Selected(); i >= 0 {
		started, err := m.Play(i)
		if err != nil {
			m.logger.Error("could not start level", "level", m.levels[i].ID, "error", err)
			m.err = err
			m.menu = m.freshMenu(i)
			return m, nil
		}
		m = started
		m.err = nil
		m.board, _ = m.resize(m.board)
		return m, m.board.Init()
	}

	return m, cmd
}

func (m AppModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(Model); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		return m, tea.Quit
	}

	if m.board.BackToMenu() {
		m.menu = m.freshMenu(m.board.LevelIndex())
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m AppModel) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.results.Update(msg)
	if results, ok := next.(ResultsModel); ok {
		m.results = results
	}

	if m.results.IsQuitting() {
		return m, tea.Quit
	}

	if m.results.IsGoingBack() {
		m.menu = m.freshMenu(m.menu.Cursor())
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// freshMenu rebuilds the level list so progress reflects new results.
func (m AppModel) freshMenu(cursor int) MenuModel {
	menu := NewMenuModel(m.levels, m.store, m.width, m.height).WithCursor(cursor)
	menu.help.Width = m.width
	return menu
}

func (m AppModel) resize(board Model) (Model, tea.Cmd) {
	if m.width == 0 {
		return board, nil
	}
	next, cmd := board.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	if b, ok := next.(Model); ok {
		board = b
	}
	return board, cmd
}

// View renders the current screen.
func (m AppModel) View() string {
	switch m.screen {
	case screenBoard:
		return m.board.View()
	case screenResults:
		return m.results.View()
	}
	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText(errorStyle.Render(m.err.Error()), m.width)
	}
	return view
}

// Run starts a Bubble Tea program for app on the local terminal.
func Run(app AppModel) error {
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
