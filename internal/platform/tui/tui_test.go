package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/lifeguide/internal/config"
	"github.com/vovakirdan/lifeguide/internal/core"
	"github.com/vovakirdan/lifeguide/internal/level"
	_ "github.com/vovakirdan/lifeguide/internal/life"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func builtinLevels(t *testing.T) []level.Level {
	t.Helper()
	levels, err := level.Builtin().LoadAll()
	require.NoError(t, err)
	return levels
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runes("j"), core.ActionDown},
		{runes("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionPlace},
		{runes("x"), core.ActionErase},
		{runes("r"), core.ActionRotateCW},
		{runes("R"), core.ActionRotateCCW},
		{runes("f"), core.ActionFlipH},
		{runes("v"), core.ActionFlipV},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionNextBrush},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionRun},
		{runes("."), core.ActionStep},
		{runes("u"), core.ActionReset},
		{runes("g"), core.ActionToggleGuides},
		{runes("N"), core.ActionPrevLevel},
		{runes("?"), core.ActionNone},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionNone},
		{runes("z"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, keys.Action(tt.msg))
		})
	}
}

func TestRenderImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	red := color.RGBA{R: 255, A: 255}
	for x := 0; x < 2; x++ {
		for y := 0; y < 3; y++ {
			img.SetRGBA(x, y, red)
		}
	}

	out := RenderImage(img, nil)
	assert.Len(t, strings.Split(out, "\n"), 2, "three pixel rows fold into two terminal rows")
	assert.Equal(t, 4, strings.Count(out, halfBlock))

	assert.Empty(t, RenderImage(nil, nil))
}

func TestStyleCacheReusesPairs(t *testing.T) {
	cache := make(styleCache)
	p := pixelPair{top: color.RGBA{R: 1, A: 255}, bottom: color.RGBA{B: 2, A: 255}}
	cache.style(p)
	cache.style(p)
	assert.Len(t, cache, 1)
	assert.Equal(t, "#0a0b0c", hex(color.RGBA{R: 10, G: 11, B: 12}))
}

func TestBoardMouse(t *testing.T) {
	m, err := NewModel(builtinLevels(t), 0, nil, config.Default(), nil)
	require.NoError(t, err)
	require.True(t, m.sess.SelectBrush("block"))

	w, h := m.surface.Size()
	assert.Equal(t, 16*termCell, w)
	assert.Equal(t, 12*termCell, h)

	click := tea.MouseMsg{X: 7 * termCell, Y: boardTop + 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	next, _ := m.Update(click)
	m = next.(Model)
	assert.Len(t, m.sess.Objects(), 1)
	assert.Equal(t, 7, m.sess.Cursor().X)
	assert.Equal(t, 5, m.sess.Cursor().Y)

	erase := click
	erase.Button = tea.MouseButtonRight
	next, _ = m.Update(erase)
	m = next.(Model)
	assert.Empty(t, m.sess.Objects())
}

func TestBoardIgnoresStaleTicks(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.StepEvery = 1
	m, err := NewModel(builtinLevels(t), 1, nil, cfg, nil)
	require.NoError(t, err)

	next, _ := m.Update(runes(" "))
	m = next.(Model)
	require.True(t, m.sess.Running())

	next, cmd := m.Update(TickMsg{Board: m.id + 1000})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.sess.Generation())

	next, cmd = m.Update(TickMsg{Board: m.id})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.sess.Generation())
	assert.Contains(t, m.View(), "gen 1")
}

func TestAppFlow(t *testing.T) {
	app := NewApp(builtinLevels(t), nil, config.Default(), nil)
	assert.Equal(t, screenMenu, app.screen)

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := app.Update(msg)
		app = next.(AppModel)
	}

	step(tea.WindowSizeMsg{Width: 100, Height: 40})
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenBoard, app.screen)
	assert.Equal(t, 1, app.board.LevelIndex())
	assert.Contains(t, app.View(), "gen 0")

	step(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, screenMenu, app.screen)
	assert.Equal(t, 1, app.menu.Cursor())
	assert.Equal(t, -1, app.menu.Selected())

	step(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenResults, app.screen)
	assert.Contains(t, app.View(), "No solves recorded yet.")

	step(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, app.screen)

	next, cmd := app.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, next.(AppModel).menu.IsQuitting())
}
