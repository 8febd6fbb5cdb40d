package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lifeguide/internal/core"
)

// KeyMap defines the board key bindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Place     key.Binding
	Erase     key.Binding
	Toggle    key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	FlipV     key.Binding
	FlipH     key.Binding
	Brush     key.Binding
	Run       key.Binding
	Step      key.Binding
	Clear     key.Binding
	Reset     key.Binding
	Guides    key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Brush, k.RotateCW, k.Run, k.Step, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Place, k.Erase, k.Toggle, k.Brush},
		{k.RotateCW, k.RotateCCW, k.FlipV, k.FlipH},
		{k.Run, k.Step, k.Clear, k.Reset},
		{k.Guides, k.NextLevel, k.PrevLevel},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l", "d"), key.WithHelp("→/l", "right")),
		Place:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "place")),
		Erase:     key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "erase")),
		Toggle:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle cell")),
		RotateCW:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r/R", "rotate")),
		RotateCCW: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rotate back")),
		FlipV:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "flip vertical")),
		FlipH:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flip horizontal")),
		Brush:     key.NewBinding(key.WithKeys("b", "tab"), key.WithHelp("b", "next brush")),
		Run:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "run/stop")),
		Step:      key.NewBinding(key.WithKeys("."), key.WithHelp(".", "step")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Reset:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "reset")),
		Guides:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "guides")),
		NextLevel: key.NewBinding(key.WithKeys("n"), key.WithHelp("n/N", "next/prev level")),
		PrevLevel: key.NewBinding(key.WithKeys("N")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "levels")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Action translates a key message to a board action. Help and Back map to
// ActionNone; the model handles them.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	bindings := []struct {
		b key.Binding
		a core.Action
	}{
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Place, core.ActionPlace},
		{k.Erase, core.ActionErase},
		{k.Toggle, core.ActionToggleCell},
		{k.RotateCW, core.ActionRotateCW},
		{k.RotateCCW, core.ActionRotateCCW},
		{k.FlipV, core.ActionFlipV},
		{k.FlipH, core.ActionFlipH},
		{k.Brush, core.ActionNextBrush},
		{k.Run, core.ActionRun},
		{k.Step, core.ActionStep},
		{k.Clear, core.ActionClear},
		{k.Reset, core.ActionReset},
		{k.Guides, core.ActionToggleGuides},
		{k.NextLevel, core.ActionNextLevel},
		{k.PrevLevel, core.ActionPrevLevel},
		{k.Quit, core.ActionQuit},
	}
	for _, kb := range bindings {
		if key.Matches(msg, kb.b) {
			return kb.a
		}
	}
	return core.ActionNone
}

// MenuKeyMap defines the level picker key bindings.
type MenuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Results key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Results, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default level picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Results: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "results")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
