// Package pattern provides oriented patterns (brushes) and the pure geometry
// that rotates, flips and normalizes them together with their guidance-line specs.
//
// Two coordinate types describe the same board space. Offset is (Row, Col) and is
// used for pattern cells; Point is (X, Y) and is used for guidance-line start
// offsets and absolute board positions. Col is X and Row is Y, with Y growing
// downward.
package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// Offset is a pattern cell relative to the pattern's top-left corner.
type Offset struct {
	Row int
	Col int
}

// O is a convenience constructor for Offset.
func O(row, col int) Offset {
	return Offset{Row: row, Col: col}
}

// Point converts the offset into X/Y form.
func (o Offset) Point() Point {
	return Point{X: o.Col, Y: o.Row}
}

// String returns a string representation of the offset.
func (o Offset) String() string {
	return fmt.Sprintf("(r%d,c%d)", o.Row, o.Col)
}

// Point is an X/Y position, either relative to an anchor or absolute on the board.
type Point struct {
	X int
	Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Step returns the point one step in the given direction.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Length is the number of cells a guidance line covers.
// Unbounded lines run until they leave the board.
type Length int

// Unbounded marks an open-ended guidance line.
const Unbounded Length = -1

// IsUnbounded reports whether the length is open-ended.
func (l Length) IsUnbounded() bool {
	return l == Unbounded
}

// Valid reports whether the length is positive or open-ended.
func (l Length) Valid() bool {
	return l == Unbounded || l > 0
}

// String returns the length token.
func (l Length) String() string {
	if l == Unbounded {
		return "inf"
	}
	return strconv.Itoa(int(l))
}

// ParseLength parses a length token: a positive integer or one of the
// open-ended sentinels "inf", "infinity", "*" and "open".
func ParseLength(token string) (Length, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	switch t {
	case "inf", "infinity", "*", "open":
		return Unbounded, true
	}
	n, err := strconv.Atoi(t)
	if err != nil || n <= 0 {
		return 0, false
	}
	return Length(n), true
}

// LineSpec describes a guidance line relative to a pattern's anchor.
type LineSpec struct {
	Dir    Direction
	Start  Point  // Start offset relative to the anchor
	Length Length // Number of cells, or Unbounded
	Speed  int    // Band width in cells, >= 1
}

// Valid reports whether the spec can produce any pixels.
func (s LineSpec) Valid() bool {
	return s.Dir.Valid() && s.Length.Valid() && s.Speed > 0
}

// Pattern is a named set of live-cell offsets with optional guidance lines.
type Pattern struct {
	Name  string
	Cells []Offset
	Lines []LineSpec
}

// Empty reports whether the pattern has no cells.
func (p Pattern) Empty() bool {
	return len(p.Cells) == 0
}

// Clone returns a deep copy of the pattern.
func (p Pattern) Clone() Pattern {
	out := Pattern{Name: p.Name}
	if p.Cells != nil {
		out.Cells = make([]Offset, len(p.Cells))
		copy(out.Cells, p.Cells)
	}
	if p.Lines != nil {
		out.Lines = make([]LineSpec, len(p.Lines))
		copy(out.Lines, p.Lines)
	}
	return out
}

// Bounds returns the inclusive min/max row and column of the pattern cells.
// ok is false for an empty pattern.
func (p Pattern) Bounds() (minRow, minCol, maxRow, maxCol int, ok bool) {
	if len(p.Cells) == 0 {
		return 0, 0, 0, 0, false
	}
	minRow, minCol = p.Cells[0].Row, p.Cells[0].Col
	maxRow, maxCol = minRow, minCol
	for _, c := range p.Cells[1:] {
		if c.Row < minRow {
			minRow = c.Row
		}
		if c.Row > maxRow {
			maxRow = c.Row
		}
		if c.Col < minCol {
			minCol = c.Col
		}
		if c.Col > maxCol {
			maxCol = c.Col
		}
	}
	return minRow, minCol, maxRow, maxCol, true
}

// Size returns the bounding box width and height.
func (p Pattern) Size() (w, h int) {
	minRow, minCol, maxRow, maxCol, ok := p.Bounds()
	if !ok {
		return 0, 0
	}
	return maxCol - minCol + 1, maxRow - minRow + 1
}
