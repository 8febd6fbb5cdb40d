// Package board holds the automaton's cell grid as the core consumes it.
// The grid is produced externally once per generation; this package only
// stores and queries it.
package board

import "github.com/vovakirdan/lifeguide/internal/pattern"

// Grid is a rectangular board of live/dead cells.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int
	H     int
	Cells []bool
}

// NewGrid creates a grid with the given dimensions and live cells.
// Live cells outside the board are dropped.
func NewGrid(w, h int, live []pattern.Point) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &Grid{
		W:     w,
		H:     h,
		Cells: make([]bool, w*h),
	}
	for _, p := range live {
		g.Set(p.X, p.Y, true)
	}
	return g
}

// NewEmptyGrid creates a grid with all cells dead.
func NewEmptyGrid(w, h int) *Grid {
	return NewGrid(w, h, nil)
}

// FromRows builds a grid from strings where '#', 'O', 'o', '*' or '1' mark live cells.
// The width is the longest row.
func FromRows(rows ...string) *Grid {
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	g := NewEmptyGrid(w, len(rows))
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			switch r[x] {
			case '#', 'O', 'o', '*', '1':
				g.Set(x, y, true)
			}
		}
	}
	return g
}

func (g *Grid) index(x, y int) int {
	return y*g.W + x
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	return g.W
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	if g == nil {
		return 0
	}
	return g.H
}

// InBounds returns true if (x, y) is on the board.
func (g *Grid) InBounds(x, y int) bool {
	return g != nil && x >= 0 && x < g.W && y >= 0 && y < g.H && len(g.Cells) == g.W*g.H
}

// Alive returns the state of (x, y). Out-of-bounds cells are dead.
func (g *Grid) Alive(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.Cells[g.index(x, y)]
}

// AlivePoint is Alive for a pattern.Point.
func (g *Grid) AlivePoint(p pattern.Point) bool {
	return g.Alive(p.X, p.Y)
}

// Set updates the state of (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, alive bool) {
	if g.InBounds(x, y) {
		g.Cells[g.index(x, y)] = alive
	}
}

// Toggle flips (x, y) and reports the new state.
func (g *Grid) Toggle(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	i := g.index(x, y)
	g.Cells[i] = !g.Cells[i]
	return g.Cells[i]
}

// Stamp sets every in-bounds point alive.
func (g *Grid) Stamp(points []pattern.Point) {
	for _, p := range points {
		g.Set(p.X, p.Y, true)
	}
}

// Erase sets every in-bounds point dead.
func (g *Grid) Erase(points []pattern.Point) {
	for _, p := range points {
		g.Set(p.X, p.Y, false)
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	cells := make([]bool, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// LiveCount returns the number of live cells.
func (g *Grid) LiveCount() int {
	if g == nil {
		return 0
	}
	count := 0
	for _, alive := range g.Cells {
		if alive {
			count++
		}
	}
	return count
}

// LivePoints returns all live cells ordered by row then column.
func (g *Grid) LivePoints() []pattern.Point {
	points := make([]pattern.Point, 0)
	if g == nil {
		return points
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Alive(x, y) {
				points = append(points, pattern.P(x, y))
			}
		}
	}
	return points
}

// SameSize reports whether two grids have identical dimensions.
func (g *Grid) SameSize(other *Grid) bool {
	if g == nil || other == nil {
		return false
	}
	return g.W == other.W && g.H == other.H
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if !g.SameSize(other) || len(g.Cells) != len(other.Cells) {
		return false
	}
	for i, alive := range g.Cells {
		if alive != other.Cells[i] {
			return false
		}
	}
	return true
}
