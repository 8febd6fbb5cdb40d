package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lifeguide/internal/level"
	"github.com/vovakirdan/lifeguide/internal/storage"
)

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	levels      []level.Level
	stats       map[string]*storage.LevelStats
	cursor      int
	width       int
	height      int
	keys        MenuKeyMap
	help        help.Model
	quitting    bool
	selected    int  // -1 until a level is picked
	openResults bool // tab pressed
}

// NewMenuModel creates a level picker. Attempt counts come from store when
// it is non-nil.
func NewMenuModel(levels []level.Level, store *storage.Store, width, height int) MenuModel {
	m := MenuModel{
		levels:   levels,
		width:    width,
		height:   height,
		keys:     DefaultMenuKeyMap(),
		help:     help.New(),
		selected: -1,
	}
	if store != nil {
		if stats, err := store.Stats(); err == nil {
			m.stats = stats
		}
	}
	return m
}

// WithCursor returns the menu with the cursor on level i.
func (m MenuModel) WithCursor(i int) MenuModel {
	if i >= 0 && i < len(m.levels) {
		m.cursor = i
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.levels) > 0 {
			m.selected = m.cursor
		}

	case key.Matches(msg, m.keys.Results):
		m.openResults = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  L I F E G U I D E  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-20s %3dx%-3d %s", cursor, lvl.Name, lvl.Width, lvl.Height, m.progress(lvl.ID))
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) progress(levelID string) string {
	st, ok := m.stats[levelID]
	if !ok || st.Attempts == 0 {
		return statusStyle.Render("new")
	}
	if st.Solves == 0 {
		return statusStyle.Render(fmt.Sprintf("%d tries", st.Attempts))
	}
	return solvedStyle.Render(fmt.Sprintf("best %d gens", st.Fewest))
}

// Selected returns the index of the picked level, or -1.
func (m MenuModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsResults returns true if user asked for the results screen.
func (m MenuModel) WantsResults() bool {
	return m.openResults
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// Cursor returns the highlighted level index.
func (m MenuModel) Cursor() int {
	return m.cursor
}
