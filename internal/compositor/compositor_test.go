package compositor_test

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/lifeguide/internal/board"
	"github.com/vovakirdan/lifeguide/internal/compositor"
	"github.com/vovakirdan/lifeguide/internal/core"
	"github.com/vovakirdan/lifeguide/internal/guide"
	"github.com/vovakirdan/lifeguide/internal/pattern"
)

// flakySurface fails the first n presents, either with an error or a panic.
type flakySurface struct {
	*compositor.MemorySurface
	failures int
	panics   bool
}

func (s *flakySurface) Present(img *image.RGBA, rects []image.Rectangle) error {
	if s.failures > 0 {
		s.failures--
		if s.panics {
			panic("surface lost")
		}
		return errors.New("surface lost")
	}
	return s.MemorySurface.Present(img, rects)
}

func blockFrame() compositor.Frame {
	return compositor.Frame{
		Grid: board.FromRows(
			"....",
			".##.",
			".##.",
			"....",
		),
	}
}

func richFrame() compositor.Frame {
	g := board.FromRows(
		"............",
		".##.........",
		".##....#....",
		".......#....",
		".......#....",
		"............",
		"...#........",
		"....#.......",
		"..###.......",
		"............",
	)
	lines := []guide.Line{
		{ID: "a", Origin: pattern.P(0, 5), Dir: pattern.DirE, Length: pattern.Unbounded, Speed: 2},
		{ID: "b", Origin: pattern.P(5, 9), Dir: pattern.DirNE, Length: 6, Speed: 1},
	}
	return compositor.Frame{
		Grid:       g,
		Generation: 4,
		Guides:     guide.Generate(lines, g.W, g.H),
		Target:     []pattern.Point{pattern.P(1, 1), pattern.P(2, 1), pattern.P(10, 8)},
		Editor: compositor.Editor{
			Hover: []pattern.Point{pattern.P(6, 6), pattern.P(7, 6)},
			Area:  core.NewRect(5, 0, 6, 5),
		},
		Markers: []compositor.Marker{
			{Positions: []pattern.Point{pattern.P(11, 0), pattern.P(11, 1)}, Value: 7},
		},
	}
}

func TestResizeForcesFullRedraw(t *testing.T) {
	surface := compositor.NewMemorySurface(400, 400)
	c := compositor.New(surface, compositor.WithGridLines(false))
	pal := compositor.DefaultPalette()
	frame := blockFrame()

	assert.Equal(t, compositor.StateUninitialized, c.State())

	stats, err := c.Render(frame)
	require.NoError(t, err)
	assert.Equal(t, compositor.PathFull, stats.Path)
	assert.Equal(t, 100, stats.CellSize)
	assert.Equal(t, compositor.StateReady, c.State())

	stats, err = c.Render(frame)
	require.NoError(t, err)
	assert.Equal(t, compositor.PathIncremental, stats.Path)
	assert.Zero(t, stats.Cells)
	assert.Equal(t, 1, surface.Presents(), "an unchanged frame presents nothing")

	c.MarkDirty(core.NewRect(0, 0, 1, 1))
	require.NoError(t, c.Resize(600, 600))
	assert.Equal(t, compositor.StateResizePending, c.State())
	assert.Empty(t, c.DirtyRects())

	stats, err = c.Render(frame)
	require.NoError(t, err)
	assert.Equal(t, compositor.PathFull, stats.Path)
	assert.Equal(t, 150, stats.CellSize)

	img := surface.Image()
	require.Equal(t, image.Rect(0, 0, 600, 600), img.Bounds())
	block := image.Rect(150, 150, 450, 450)
	live := 0
	for y := 0; y < 600; y++ {
		for x := 0; x < 600; x++ {
			c := img.RGBAAt(x, y)
			inside := image.Pt(x, y).In(block)
			switch {
			case c == pal.Live:
				live++
				if !inside {
					t.Fatalf("live pixel at (%d,%d) outside the block", x, y)
				}
			case c != pal.Background:
				t.Fatalf("unexpected color %v at (%d,%d)", c, x, y)
			case inside:
				t.Fatalf("background pixel at (%d,%d) inside the block", x, y)
			}
		}
	}
	assert.Equal(t, 300*300, live)
}

func TestSurfaceSizeChangeInvalidates(t *testing.T) {
	surface := compositor.NewMemorySurface(40, 40)
	c := compositor.New(surface)

	_, err := c.Render(blockFrame())
	require.NoError(t, err)

	require.NoError(t, surface.Resize(80, 80))
	stats, err := c.Render(blockFrame())
	require.NoError(t, err)
	assert.Equal(t, compositor.PathFull, stats.Path)
	assert.Equal(t, 20, stats.CellSize)
}

func TestIncrementalMatchesFullRedraw(t *testing.T) {
	before := richFrame()
	after := richFrame()
	after.Grid.Toggle(3, 6)
	after.Grid.Toggle(9, 9)
	after.Markers[0].Value = 12
	after.Editor.Hover = []pattern.Point{pattern.P(7, 6), pattern.P(8, 6)}
	after.Generation = 9

	incSurface := compositor.NewMemorySurface(240, 200)
	inc := compositor.New(incSurface)
	_, err := inc.Render(before)
	require.NoError(t, err)
	stats, err := inc.Render(after)
	require.NoError(t, err)
	require.Equal(t, compositor.PathIncremental, stats.Path)
	assert.Positive(t, stats.Cells)
	assert.Less(t, stats.Cells, 120)

	fullSurface := compositor.NewMemorySurface(240, 200)
	full := compositor.New(fullSurface)
	stats, err = full.Render(after)
	require.NoError(t, err)
	require.Equal(t, compositor.PathFull, stats.Path)

	assert.Equal(t, fullSurface.Image().Pix, incSurface.Image().Pix)
}

func TestMarkDirty(t *testing.T) {
	surface := compositor.NewMemorySurface(40, 40)
	c := compositor.New(surface)
	frame := blockFrame()

	_, err := c.Render(frame)
	require.NoError(t, err)

	c.MarkDirty(core.NewRect(0, 0, 2, 2))
	c.MarkDirty(core.NewRect(2, 0, 1, 1))
	c.MarkDirty(core.Rect{})
	assert.Equal(t, []core.Rect{core.NewRect(0, 0, 3, 2)}, c.DirtyRects())

	stats, err := c.Render(frame)
	require.NoError(t, err)
	assert.Equal(t, compositor.PathIncremental, stats.Path)
	assert.Equal(t, 6, stats.Cells)
	assert.Equal(t, 1, stats.Rects)
	assert.Equal(t, []image.Rectangle{image.Rect(0, 0, 30, 20)}, surface.LastRects())
	assert.Empty(t, c.DirtyRects())

	c.MarkDirty(core.NewRect(0, 0, 1, 1))
	c.ClearDirty()
	assert.Empty(t, c.DirtyRects())
}

func TestTooManyDirtyRectsCollapse(t *testing.T) {
	c := compositor.New(compositor.NewMemorySurface(40, 40), compositor.WithMaxDirtyRects(2))
	frame := blockFrame()

	_, err := c.Render(frame)
	require.NoError(t, err)

	c.MarkDirty(core.NewRect(0, 0, 1, 1))
	c.MarkDirty(core.NewRect(2, 2, 1, 1))
	require.Len(t, c.DirtyRects(), 2)
	c.MarkDirty(core.NewRect(0, 3, 1, 1))
	assert.Nil(t, c.DirtyRects())

	stats, err := c.Render(frame)
	require.NoError(t, err)
	assert.Equal(t, compositor.PathFull, stats.Path)
}

func TestMarkersAlwaysLast(t *testing.T) {
	surface := compositor.NewMemorySurface(20, 20)
	c := compositor.New(surface,
		compositor.WithGridLines(false),
		compositor.WithOrder(compositor.LayerMarkers, compositor.LayerBackground, compositor.LayerCells, compositor.LayerCells),
	)
	assert.Equal(t,
		[]compositor.Layer{compositor.LayerBackground, compositor.LayerCells, compositor.LayerMarkers},
		c.Order())

	frame := blockFrame()
	frame.Markers = []compositor.Marker{{Positions: []pattern.Point{pattern.P(1, 1)}, Value: 3}}
	frame.Target = []pattern.Point{pattern.P(1, 1)}

	_, err := c.Render(frame)
	require.NoError(t, err)

	pal := compositor.DefaultPalette()
	img := surface.Image()
	assert.Equal(t, pal.Marker, img.RGBAAt(7, 7), "marker paints over the live cell")
	assert.Equal(t, pal.Live, img.RGBAAt(12, 7))

	assert.Equal(t, compositor.DefaultOrder, compositor.New(surface).Order())
}

func TestLayerColors(t *testing.T) {
	surface := compositor.NewMemorySurface(40, 40)
	c := compositor.New(surface, compositor.WithGridLines(false))
	pal := compositor.DefaultPalette()

	frame := compositor.Frame{
		Grid: board.FromRows(
			"#...",
			"....",
			"....",
			"....",
		),
		Guides: []guide.Pixel{
			{X: 0, Y: 3, Band: 0},
			{X: 1, Y: 3, Band: 1},
			{X: 0, Y: 0, Band: 1},
		},
		Target: []pattern.Point{pattern.P(0, 0), pattern.P(3, 0)},
	}
	_, err := c.Render(frame)
	require.NoError(t, err)
	img := surface.Image()

	assert.Equal(t, pal.Guide[0], img.RGBAAt(5, 35))
	assert.Equal(t, pal.Guide[1], img.RGBAAt(15, 35))
	assert.Equal(t, pal.Live, img.RGBAAt(5, 5), "live cells cover guides")
	assert.Equal(t, pal.TargetHit, img.RGBAAt(0, 0))
	assert.Equal(t, pal.TargetMiss, img.RGBAAt(30, 0))
	assert.Equal(t, pal.Background, img.RGBAAt(35, 5), "target is drawn as an outline")
}

func TestPresentFailureFallsBack(t *testing.T) {
	for _, panics := range []bool{false, true} {
		surface := &flakySurface{MemorySurface: compositor.NewMemorySurface(40, 40), failures: 1, panics: panics}
		c := compositor.New(surface)
		pal := compositor.DefaultPalette()

		frame := richFrame()
		stats, err := c.Render(frame)
		require.NoError(t, err)
		assert.Equal(t, compositor.PathFallback, stats.Path)
		assert.Error(t, stats.Cause)

		img := surface.Image()
		for y := 0; y < 40; y++ {
			for x := 0; x < 40; x++ {
				if c := img.RGBAAt(x, y); c != pal.Live && c != pal.Background {
					t.Fatalf("fallback painted %v at (%d,%d)", c, x, y)
				}
			}
		}

		stats, err = c.Render(frame)
		require.NoError(t, err)
		assert.Equal(t, compositor.PathFull, stats.Path, "frame after a fallback is a full redraw")
	}
}

func TestFallbackFailureIsReported(t *testing.T) {
	surface := &flakySurface{MemorySurface: compositor.NewMemorySurface(40, 40), failures: 2}
	c := compositor.New(surface)

	stats, err := c.Render(blockFrame())
	assert.Error(t, err)
	assert.Equal(t, compositor.PathFallback, stats.Path)
}

func TestRenderEdgeCases(t *testing.T) {
	c := compositor.New(compositor.NewMemorySurface(40, 40))

	stats, err := c.Render(compositor.Frame{})
	require.NoError(t, err)
	assert.Equal(t, compositor.PathFull, stats.Path)

	assert.Error(t, c.Resize(0, 10))

	frame := blockFrame()
	frame.Guides = []guide.Pixel{{X: -1, Y: 0}, {X: 99, Y: 99}}
	frame.Target = []pattern.Point{pattern.P(-5, 2)}
	frame.Markers = []compositor.Marker{{Positions: []pattern.Point{pattern.P(4, 4)}}}
	_, err = c.Render(frame)
	require.NoError(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := compositor.ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0x80), c.G)
	assert.Equal(t, uint8(0x00), c.B)
	assert.Equal(t, uint8(0xff), c.A)

	_, err = compositor.ParseColor("orange")
	assert.Error(t, err)

	p, err := compositor.PaletteFromHex(map[string]string{"live": "#010203"})
	require.NoError(t, err)
	assert.Equal(t, uint8(0x02), p.Live.G)
	assert.Equal(t, compositor.DefaultPalette().Background, p.Background)

	_, err = compositor.PaletteFromHex(map[string]string{"sky": "#000000"})
	assert.Error(t, err)
}
