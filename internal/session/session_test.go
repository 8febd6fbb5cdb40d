package session_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/lifeguide/internal/board"
	"github.com/vovakirdan/lifeguide/internal/compositor"
	"github.com/vovakirdan/lifeguide/internal/config"
	"github.com/vovakirdan/lifeguide/internal/core"
	"github.com/vovakirdan/lifeguide/internal/guide"
	"github.com/vovakirdan/lifeguide/internal/level"
	_ "github.com/vovakirdan/lifeguide/internal/life"
	"github.com/vovakirdan/lifeguide/internal/pattern"
	"github.com/vovakirdan/lifeguide/internal/session"
	"github.com/vovakirdan/lifeguide/internal/storage"
)

const (
	blockLevel  = 0
	gliderLevel = 1
	lwssLevel   = 2
)

func counter() guide.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newSession(t *testing.T, start int, opts ...session.Option) *session.Session {
	t.Helper()
	levels, err := level.Builtin().LoadAll()
	require.NoError(t, err)
	opts = append([]session.Option{session.WithIDs(counter())}, opts...)
	s, err := session.New(levels, start, opts...)
	require.NoError(t, err)
	return s
}

func TestNewAppliesSetup(t *testing.T) {
	s := newSession(t, gliderLevel)

	assert.Equal(t, "02-glider-lane", s.Level().ID)
	assert.Equal(t, "life", s.Rule().ID())
	assert.Equal(t, 5, s.Grid().LiveCount())
	assert.Equal(t, 0, s.Generation())
	assert.False(t, s.Running())

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 0, lines[0].Generation)
	assert.Equal(t, pattern.DirSE, lines[0].Dir)
	assert.Equal(t, pattern.P(4, 4), lines[0].Origin)
	assert.Len(t, s.VisibleLines(), 1)
}

func TestNewRejects(t *testing.T) {
	levels, err := level.Builtin().LoadAll()
	require.NoError(t, err)

	_, err = session.New(nil, 0)
	assert.Error(t, err)
	_, err = session.New(levels, len(levels))
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Palette = map[string]string{"nope": "#ffffff"}
	_, err = session.New(levels, 0, session.WithConfig(cfg))
	assert.Error(t, err, "unknown palette slot")

	cfg = config.Default()
	cfg.Sim.Rule = "seeds"
	_, err = session.New(levels, 0, session.WithConfig(cfg))
	assert.Error(t, err, "unknown rule")
}

func TestPlaceSolveAndResult(t *testing.T) {
	var saved []storage.Result
	s := newSession(t, blockLevel, session.OnSolved(func(r storage.Result) {
		saved = append(saved, r)
	}))

	require.True(t, s.SelectBrush("block"))
	assert.False(t, s.PlaceAt(0, 0), "outside the editable area")
	assert.False(t, s.PlaceAt(11, 8), "brush crosses the editable edge")

	require.True(t, s.PlaceAt(7, 5))
	assert.Equal(t, 4, s.Grid().LiveCount())
	require.Len(t, s.Objects(), 1)
	assert.True(t, s.Objects()[0].Intact())
	assert.False(t, s.Solved(), "solved only once the automaton runs")

	s.Advance()
	assert.True(t, s.Solved())
	assert.False(t, s.Running())

	s.Advance()
	require.Len(t, saved, 1, "solve reported once per attempt")
	assert.Equal(t, storage.Result{
		LevelID:     "01-block",
		Rule:        "life",
		Generations: 1,
		Placed:      1,
		Solved:      true,
	}, saved[0])
	assert.Equal(t, 1, s.Result().Generations)
}

func TestEraseAt(t *testing.T) {
	s := newSession(t, blockLevel)
	require.True(t, s.SelectBrush("block"))
	require.True(t, s.PlaceAt(5, 4))

	assert.False(t, s.EraseAt(0, 0))
	assert.True(t, s.EraseAt(6, 5))
	assert.Equal(t, 0, s.Grid().LiveCount())
	assert.Empty(t, s.Objects())
}

func TestRunningBlocksEditing(t *testing.T) {
	s := newSession(t, gliderLevel)
	require.True(t, s.Apply(core.ActionRun))
	require.True(t, s.Running())

	assert.False(t, s.PlaceAt(14, 11))
	assert.False(t, s.ToggleCell(14, 11))
	assert.False(t, s.Apply(core.ActionStep))
	assert.Nil(t, s.Frame().Editor.Hover)
	assert.Empty(t, s.VisibleLines(), "guides hide while running")

	// Default pacing advances every sixth frame.
	for i := 0; i < 5; i++ {
		assert.False(t, s.Tick())
	}
	assert.True(t, s.Tick())
	assert.Equal(t, 1, s.Generation())
}

func TestClearVersusReset(t *testing.T) {
	s := newSession(t, gliderLevel)
	require.True(t, s.SelectBrush("glider"))
	require.True(t, s.PlaceAt(14, 11))
	require.Len(t, s.Lines(), 2)

	beforeRun := s.Grid().Clone()
	s.Advance()
	s.Advance()
	require.True(t, s.PlaceAt(18, 14))
	require.Len(t, s.Lines(), 3)
	require.Len(t, s.Objects(), 2)

	require.True(t, s.Reset())
	assert.Equal(t, 0, s.Generation())
	assert.Len(t, s.Lines(), 2, "generation-0 lines survive reset")
	assert.Len(t, s.Objects(), 1)
	assert.True(t, s.Grid().Equal(beforeRun))
	assert.False(t, s.Reset(), "nothing to reset before the next advance")

	s.Clear()
	assert.Len(t, s.Lines(), 1, "only setup lines after clear")
	assert.Empty(t, s.Objects())
	initial := s.Level()
	assert.True(t, s.Grid().Equal(initial.InitialGrid()))
}

func TestVisibleLinesFollowIntegrity(t *testing.T) {
	s := newSession(t, gliderLevel)
	require.True(t, s.SelectBrush("glider"))
	require.True(t, s.PlaceAt(14, 11))
	require.Len(t, s.VisibleLines(), 2)

	require.True(t, s.ToggleCell(15, 11))
	assert.False(t, s.Objects()[0].Intact())
	assert.Len(t, s.VisibleLines(), 1)

	require.True(t, s.ToggleCell(15, 11))
	assert.True(t, s.Objects()[0].Intact())
	assert.Len(t, s.VisibleLines(), 2)

	require.True(t, s.Apply(core.ActionToggleGuides))
	assert.False(t, s.GuidesVisible())
	assert.Empty(t, s.VisibleLines())
	assert.Empty(t, s.Frame().Guides)
}

func TestFlippedBrush(t *testing.T) {
	s := newSession(t, gliderLevel)
	require.True(t, s.SelectBrush("glider"))
	require.True(t, s.Apply(core.ActionFlipH))

	require.True(t, s.PlaceAt(14, 11))
	obj := s.Objects()[0]
	assert.Equal(t, "glider/h", obj.Pattern())
	assert.True(t, s.Grid().Alive(14, 12))
	assert.False(t, s.Grid().Alive(16, 12))

	lines := obj.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, pattern.DirSW, lines[0].Dir)
	assert.Equal(t, pattern.P(13, 14), lines[0].Origin)

	name, _, _, flipH := s.Brush()
	assert.Equal(t, "glider", name, "brush selection keeps the base name")
	assert.True(t, flipH)
}

func TestApplyCursorAndBrush(t *testing.T) {
	s := newSession(t, blockLevel)
	assert.Equal(t, pattern.P(8, 6), s.Cursor())

	assert.True(t, s.Apply(core.ActionLeft))
	assert.Equal(t, pattern.P(7, 6), s.Cursor())
	require.True(t, s.SetCursor(0, 0))
	assert.False(t, s.Apply(core.ActionUp), "cursor stops at the edge")
	assert.False(t, s.SetCursor(-1, 3))

	name, rot, _, _ := s.Brush()
	assert.Equal(t, "blinker", name, "brushes are sorted by name")
	assert.Equal(t, pattern.Rot0, rot)

	s.Apply(core.ActionNextBrush)
	name, _, _, _ = s.Brush()
	assert.Equal(t, "block", name)

	s.Apply(core.ActionRotateCW)
	_, rot, _, _ = s.Brush()
	assert.Equal(t, pattern.Rot90, rot)
	s.Apply(core.ActionRotateCCW)
	s.Apply(core.ActionRotateCCW)
	_, rot, _, _ = s.Brush()
	assert.Equal(t, pattern.Rot270, rot)

	assert.False(t, s.Apply(core.ActionQuit))
}

func TestLevelNavigation(t *testing.T) {
	s := newSession(t, blockLevel)

	assert.False(t, s.Apply(core.ActionPrevLevel))
	require.True(t, s.Apply(core.ActionNextLevel))
	assert.Equal(t, "02-glider-lane", s.Level().ID)
	assert.Len(t, s.Lines(), 1)

	require.True(t, s.Apply(core.ActionNextLevel))
	assert.Equal(t, lwssLevel, s.Index())
	assert.True(t, s.SelectBrush("hook"), "level brushes are available")
	assert.False(t, s.Apply(core.ActionNextLevel))

	w, h := s.Surface().Size()
	assert.Equal(t, 32*16, w)
	assert.Equal(t, 12*16, h)
}

func TestRenderFrames(t *testing.T) {
	s := newSession(t, gliderLevel)

	f := s.Frame()
	require.Len(t, f.Markers, 1)
	assert.Equal(t, 2, len(f.Markers[0].Positions))
	assert.Len(t, f.Target, 7)
	assert.NotEmpty(t, f.Guides)
	assert.NotEmpty(t, f.Editor.Hover)

	stats, err := s.Render()
	require.NoError(t, err)
	assert.Equal(t, compositor.PathFull, stats.Path)

	stats, err = s.Render()
	require.NoError(t, err)
	assert.Equal(t, compositor.PathIncremental, stats.Path)
	assert.Equal(t, 0, stats.Cells)

	s.Advance()
	stats, err = s.Render()
	require.NoError(t, err)
	assert.Equal(t, compositor.PathIncremental, stats.Path)
	assert.Positive(t, stats.Cells)
}

func TestASCIIPreview(t *testing.T) {
	s := newSession(t, gliderLevel)

	out := s.ASCII(board.DefaultRenderOptions())
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, rows, 18)
	assert.Len(t, rows[0], 24)
	assert.Equal(t, 5, strings.Count(out, "#"))
	assert.Equal(t, 7, strings.Count(out, "x"), "no target cell is alive yet")
	assert.Equal(t, 2, strings.Count(out, "@"))
	assert.Positive(t, strings.Count(out, "-")+strings.Count(out, "="))
}
