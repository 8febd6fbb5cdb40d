// Package core provides fundamental types and utilities shared by the board,
// the compositor and the platform layers. It contains no external dependencies
// to keep the geometry pure and testable.
package core

// Rect represents an axis-aligned rectangle in cell or pixel space.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Touches returns true if the rectangles overlap or share an edge.
// Corner contact does not count.
func (r Rect) Touches(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	if r.Intersects(other) {
		return true
	}
	overlapX := r.X < other.Right() && other.X < r.Right()
	overlapY := r.Y < other.Bottom() && other.Y < r.Bottom()
	if overlapY && (r.Right() == other.X || other.Right() == r.X) {
		return true
	}
	if overlapX && (r.Bottom() == other.Y || other.Bottom() == r.Y) {
		return true
	}
	return false
}

// Union returns the smallest rectangle containing both rectangles.
// An empty operand is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x := Min(r.X, other.X)
	y := Min(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: Max(r.Right(), other.Right()) - x,
		H: Max(r.Bottom(), other.Bottom()) - y,
	}
}

// Intersect returns the overlapping area of two rectangles, or an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x := Max(r.X, other.X)
	y := Max(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: Min(r.Right(), other.Right()) - x,
		H: Min(r.Bottom(), other.Bottom()) - y,
	}
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// OnEdge returns true if (x, y) lies on the outermost ring of the rectangle.
func (r Rect) OnEdge(x, y int) bool {
	if !r.Contains(x, y) {
		return false
	}
	return x == r.X || y == r.Y || x == r.Right()-1 || y == r.Bottom()-1
}

// Scale multiplies position and size by k, mapping cell space to pixel space.
func (r Rect) Scale(k int) Rect {
	return Rect{X: r.X * k, Y: r.Y * k, W: r.W * k, H: r.H * k}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
