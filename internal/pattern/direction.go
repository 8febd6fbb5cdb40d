package pattern

import "strings"

// Direction is one of the eight compass directions, in clockwise ring order.
type Direction uint8

const (
	DirN Direction = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW

	dirCount = 8
)

var dirNames = [dirCount]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Directions returns the compass ring starting at north.
func Directions() []Direction {
	return []Direction{DirN, DirNE, DirE, DirSE, DirS, DirSW, DirW, DirNW}
}

// ParseDirection parses a compass token such as "N" or "se".
func ParseDirection(token string) (Direction, bool) {
	t := strings.ToUpper(strings.TrimSpace(token))
	for i, name := range dirNames {
		if name == t {
			return Direction(i), true
		}
	}
	return 0, false
}

// Valid reports whether d is one of the eight compass directions.
func (d Direction) Valid() bool {
	return d < dirCount
}

// String returns the compass token.
func (d Direction) String() string {
	if !d.Valid() {
		return "Unknown"
	}
	return dirNames[d]
}

// Delta returns the unit step for this direction. North decreases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirN:
		return 0, -1
	case DirNE:
		return 1, -1
	case DirE:
		return 1, 0
	case DirSE:
		return 1, 1
	case DirS:
		return 0, 1
	case DirSW:
		return -1, 1
	case DirW:
		return -1, 0
	case DirNW:
		return -1, -1
	default:
		return 0, 0
	}
}

// Clockwise returns the direction rotated 90 degrees clockwise (two ring steps).
func (d Direction) Clockwise() Direction {
	if !d.Valid() {
		return d
	}
	return (d + 2) % dirCount
}

// Counterclockwise returns the direction rotated 90 degrees counterclockwise.
func (d Direction) Counterclockwise() Direction {
	if !d.Valid() {
		return d
	}
	return (d + dirCount - 2) % dirCount
}

// FlipVertical mirrors top-to-bottom: N<->S, NE<->SE, NW<->SW.
func (d Direction) FlipVertical() Direction {
	if !d.Valid() {
		return d
	}
	// Reflection across the E-W axis maps ring index i to (4 - i) mod 8.
	return (dirCount + 4 - d) % dirCount
}

// FlipHorizontal mirrors left-to-right: E<->W, NE<->NW, SE<->SW.
func (d Direction) FlipHorizontal() Direction {
	if !d.Valid() {
		return d
	}
	// Reflection across the N-S axis maps ring index i to (8 - i) mod 8.
	return (dirCount - d) % dirCount
}
