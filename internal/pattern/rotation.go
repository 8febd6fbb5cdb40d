package pattern

import "fmt"

// Rotation is a clockwise quarter-turn count in [0, 3].
type Rotation uint8

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// ParseRotation converts degrees into a Rotation. Any multiple of 90 is accepted,
// including negative values; anything else is rejected.
func ParseRotation(degrees int) (Rotation, bool) {
	if degrees%90 != 0 {
		return Rot0, false
	}
	turns := (degrees / 90) % 4
	if turns < 0 {
		turns += 4
	}
	return Rotation(turns), true
}

// Degrees returns the rotation in degrees.
func (r Rotation) Degrees() int {
	return int(r%4) * 90
}

// Apply returns the pattern turned clockwise by the rotation.
func (r Rotation) Apply(p Pattern) Pattern {
	out := p.Clone()
	for i := 0; i < int(r%4); i++ {
		out = RotateClockwise(out)
	}
	return out
}

// String returns the rotation in degrees.
func (r Rotation) String() string {
	return fmt.Sprintf("%d°", r.Degrees())
}

// Placement is one entry of a level's setup list.
type Placement struct {
	X        int
	Y        int
	Pattern  string
	Rotation Rotation
}

// Anchor returns the placement's anchor point.
func (p Placement) Anchor() Point {
	return Point{X: p.X, Y: p.Y}
}
