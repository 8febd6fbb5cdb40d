// Package placed binds an anchored pattern to its guidance lines and tracks
// whether the placement is still intact on the live board.
package placed

import (
	"github.com/vovakirdan/lifeguide/internal/guide"
	"github.com/vovakirdan/lifeguide/internal/pattern"
)

// Object is a pattern anchored at a board position and generation.
// Its pixels and lines always derive from the same rotation and anchor;
// they change only through the Manager.
type Object struct {
	id         string
	pattern    string
	anchor     pattern.Point
	rotation   pattern.Rotation
	generation int
	pixels     []pattern.Point
	lines      []guide.Line
	intact     bool
}

// ID returns the object's unique identifier.
func (o *Object) ID() string {
	return o.id
}

// Pattern returns the library name the object was placed from.
func (o *Object) Pattern() string {
	return o.pattern
}

// Anchor returns the board position of the pattern's origin cell.
func (o *Object) Anchor() pattern.Point {
	return o.anchor
}

// Rotation returns the current quarter-turn rotation.
func (o *Object) Rotation() pattern.Rotation {
	return o.rotation
}

// Generation returns the generation at which the object was placed.
func (o *Object) Generation() int {
	return o.generation
}

// Intact reports whether every pixel was alive at the last integrity check.
func (o *Object) Intact() bool {
	return o.intact
}

// Pixels returns a copy of the absolute cells the object expects alive.
func (o *Object) Pixels() []pattern.Point {
	out := make([]pattern.Point, len(o.pixels))
	copy(out, o.pixels)
	return out
}

// Lines returns a copy of the object's guidance lines.
func (o *Object) Lines() []guide.Line {
	out := make([]guide.Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// Contains reports whether (x, y) is one of the object's pixels.
func (o *Object) Contains(x, y int) bool {
	for _, p := range o.pixels {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}

// pixelsAt returns the absolute cells of an already rotated pattern.
func pixelsAt(p pattern.Pattern, anchor pattern.Point) []pattern.Point {
	out := make([]pattern.Point, len(p.Cells))
	for i, c := range p.Cells {
		out[i] = anchor.Add(c.Point())
	}
	return out
}
