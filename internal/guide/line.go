// Package guide turns guidance-line specs into board pixels and keeps the
// generation-tagged set of lines alive across level transitions.
package guide

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/lifeguide/internal/pattern"
)

// IDFunc produces identifiers for new lines.
type IDFunc func() string

// NewID is the default IDFunc.
func NewID() string {
	return uuid.NewString()
}

// Line is an absolute guidance line bound to the board.
// Lines are values: a stored Line is never modified, a moved line is a new value.
//
// Build lines with Anchor and move them with Translate so that Origin stays
// the anchor plus the rotated start offset of the pattern's line.
type Line struct {
	ID         string
	Generation int           // generation at which the line was created
	Origin     pattern.Point // anchor + rotated start; set by Anchor
	Dir        pattern.Direction
	Length     pattern.Length
	Speed      int
}

// Valid reports whether the line can produce pixels.
func (l Line) Valid() bool {
	return l.Dir.Valid() && l.Length.Valid() && l.Speed > 0
}

// Translate returns a copy of the line moved by delta.
func (l Line) Translate(delta pattern.Point) Line {
	l.Origin = l.Origin.Add(delta)
	return l
}

// Anchor builds the absolute lines of a pattern placed at anchor with rotation.
// Each origin is anchor + the rotated start offset. A nil ids uses NewID.
func Anchor(p pattern.Pattern, anchor pattern.Point, rot pattern.Rotation, generation int, ids IDFunc) []Line {
	if ids == nil {
		ids = NewID
	}
	rotated := rot.Apply(p)
	lines := make([]Line, 0, len(rotated.Lines))
	for _, spec := range rotated.Lines {
		lines = append(lines, Line{
			ID:         ids(),
			Generation: generation,
			Origin:     anchor.Add(spec.Start),
			Dir:        spec.Dir,
			Length:     spec.Length,
			Speed:      spec.Speed,
		})
	}
	return lines
}

// lineLess is the canonical line order used to break arbitration ties.
func lineLess(a, b Line) bool {
	if a.Origin.Y != b.Origin.Y {
		return a.Origin.Y < b.Origin.Y
	}
	if a.Origin.X != b.Origin.X {
		return a.Origin.X < b.Origin.X
	}
	if a.Dir != b.Dir {
		return a.Dir < b.Dir
	}
	if a.Length != b.Length {
		return lengthKey(a.Length) < lengthKey(b.Length)
	}
	if a.Speed != b.Speed {
		return a.Speed < b.Speed
	}
	return a.ID < b.ID
}

func lengthKey(l pattern.Length) int {
	if l.IsUnbounded() {
		return int(^uint(0) >> 1)
	}
	return int(l)
}
