package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lifeguide/internal/compositor"
	"github.com/vovakirdan/lifeguide/internal/config"
	"github.com/vovakirdan/lifeguide/internal/core"
	"github.com/vovakirdan/lifeguide/internal/level"
	"github.com/vovakirdan/lifeguide/internal/session"
	"github.com/vovakirdan/lifeguide/internal/storage"
)

// boardTop is the number of terminal rows above the board.
const boardTop = 2

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	solvedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the Bubble Tea model for playing levels.
type Model struct {
	sess      *session.Session
	surface   *compositor.MemorySurface
	store     *storage.Store
	logger    *log.Logger
	keys      KeyMap
	help      help.Model
	styles    styleCache
	id        uint64
	frameRate int
	width     int
	height    int
	quitting  bool
	back      bool
	saved     bool // attempt persisted
}

// NewModel creates a model playing levels from index start. Solved attempts
// are saved to store when it is non-nil.
func NewModel(levels []level.Level, start int, store *storage.Store, cfg config.Config, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg.Normalize()

	m := Model{
		store:     store,
		logger:    logger,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		styles:    make(styleCache),
		id:        nextBoardID(),
		frameRate: cfg.Sim.FrameRate,
	}

	// Levels size the surface on load.
	m.surface = compositor.NewMemorySurface(1, 1)
	// Terminal cells are too small for grid lines.
	cfg.Board.GridLines = false
	sess, err := session.New(levels, start,
		session.WithConfig(cfg),
		session.WithSurface(m.surface),
		session.WithCellSize(termCell),
		session.WithLogger(logger),
		session.OnSolved(func(r storage.Result) { saveResult(store, logger, r) }),
	)
	if err != nil {
		return Model{}, err
	}
	m.sess = sess
	return m, nil
}

func saveResult(store *storage.Store, logger *log.Logger, r storage.Result) {
	if store == nil {
		return
	}
	if _, err := store.SaveResult(r); err != nil {
		logger.Warn("could not save result", "level", r.LevelID, "error", err)
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.render()
	return tickCmd(m.frameRate, m.id)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Board != m.id {
			return m, nil
		}
		m.sess.Tick()
		m.render()
		return m, tickCmd(m.frameRate, m.id)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveAttempt()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.saveAttempt()
		m.back = true
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionNextLevel || action == core.ActionPrevLevel || action == core.ActionClear {
		m.saveAttempt()
	}
	if m.sess.Apply(action) {
		if action == core.ActionNextLevel || action == core.ActionPrevLevel || action == core.ActionClear {
			m.saved = false
		}
		m.render()
	}
	return m, nil
}

// handleMouse moves the cursor with the pointer; left click places the
// brush, right click erases.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := msg.X/termCell, msg.Y-boardTop
	if !m.sess.SetCursor(x, y) {
		return m, nil
	}
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.sess.PlaceAt(x, y)
		case tea.MouseButtonRight:
			m.sess.EraseAt(x, y)
		}
	}
	m.render()
	return m, nil
}

// render composes the current frame onto the surface.
func (m Model) render() {
	stats, err := m.sess.Render()
	if err != nil {
		m.logger.Error("render failed", "error", err)
		return
	}
	if stats.Path == compositor.PathFallback {
		m.logger.Warn("fallback frame", "cause", stats.Cause)
	}
}

// saveAttempt records an unsolved attempt once the automaton has run.
func (m *Model) saveAttempt() {
	if m.saved || m.sess.Solved() || m.sess.Generation() == 0 {
		return
	}
	saveResult(m.store, m.logger, m.sess.Result())
	m.saved = true
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	lvl := m.sess.Level()
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  (%d/%d)", lvl.Name, m.sess.Index()+1, m.sess.Levels())))
	b.WriteString("\n\n")
	b.WriteString(RenderImage(m.surface.Image(), m.styles))
	b.WriteString("\n\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) status() string {
	state := "stopped"
	if m.sess.Running() {
		state = "running"
	}
	name, rot, flipV, flipH := m.sess.Brush()
	flips := ""
	if flipH {
		flips += " h"
	}
	if flipV {
		flips += " v"
	}
	guides := "on"
	if !m.sess.GuidesVisible() {
		guides = "off"
	}

	parts := []string{
		fmt.Sprintf("gen %d", m.sess.Generation()),
		state,
		fmt.Sprintf("%s %s%s", name, rot, flips),
		"guides " + guides,
		m.sess.Rule().ID(),
	}
	for _, d := range m.sess.Level().Detectors {
		parts = append(parts, fmt.Sprintf("%s=%d", d.Label, d.Value))
	}
	line := statusStyle.Render(strings.Join(parts, " | "))
	if m.sess.Solved() {
		line += "  " + solvedStyle.Render("SOLVED")
	}
	return line
}

// BackToMenu reports whether the player asked to return to the level list.
func (m Model) BackToMenu() bool {
	return m.back
}

// IsQuitting reports whether the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// LevelIndex returns the index of the level on the board.
func (m Model) LevelIndex() int {
	return m.sess.Index()
}
