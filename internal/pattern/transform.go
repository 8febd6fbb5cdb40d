package pattern

// Op names one of the four pattern transforms.
type Op string

const (
	OpRotateCW  Op = "rotate_cw"
	OpRotateCCW Op = "rotate_ccw"
	OpFlipV     Op = "flip_v"
	OpFlipH     Op = "flip_h"
)

// Apply runs the named transform. Unknown operations return an unchanged copy.
func Apply(p Pattern, op Op) Pattern {
	switch op {
	case OpRotateCW:
		return RotateClockwise(p)
	case OpRotateCCW:
		return RotateCounterclockwise(p)
	case OpFlipV:
		return FlipVertical(p)
	case OpFlipH:
		return FlipHorizontal(p)
	default:
		return p.Clone()
	}
}

// RotateClockwise turns the pattern 90 degrees clockwise, mapping (x, y) to (-y, x),
// and renormalizes so the minimum row and column are zero. Guidance-line starts
// receive the same mapping and the same normalization shift.
func RotateClockwise(p Pattern) Pattern {
	return rotate(p, func(pt Point) Point {
		return Point{X: -pt.Y, Y: pt.X}
	}, Direction.Clockwise)
}

// RotateCounterclockwise turns the pattern 90 degrees counterclockwise, mapping
// (x, y) to (y, -x), and renormalizes like RotateClockwise.
func RotateCounterclockwise(p Pattern) Pattern {
	return rotate(p, func(pt Point) Point {
		return Point{X: pt.Y, Y: -pt.X}
	}, Direction.Counterclockwise)
}

func rotate(p Pattern, turn func(Point) Point, turnDir func(Direction) Direction) Pattern {
	if p.Empty() {
		return p.Clone()
	}

	out := Pattern{Name: p.Name, Cells: make([]Offset, len(p.Cells))}
	for i, c := range p.Cells {
		r := turn(c.Point())
		out.Cells[i] = Offset{Row: r.Y, Col: r.X}
	}

	minRow, minCol, _, _, _ := out.Bounds()
	shift := Point{X: -minCol, Y: -minRow}
	for i := range out.Cells {
		out.Cells[i].Row += shift.Y
		out.Cells[i].Col += shift.X
	}

	if p.Lines != nil {
		out.Lines = make([]LineSpec, len(p.Lines))
		for i, l := range p.Lines {
			l.Start = turn(l.Start).Add(shift)
			l.Dir = turnDir(l.Dir)
			out.Lines[i] = l
		}
	}
	return out
}

// FlipVertical mirrors the pattern top-to-bottom about its own bounding-box
// center. The result is not renormalized.
func FlipVertical(p Pattern) Pattern {
	if p.Empty() {
		return p.Clone()
	}
	minRow, _, maxRow, _, _ := p.Bounds()
	sum := minRow + maxRow

	out := Pattern{Name: p.Name, Cells: make([]Offset, len(p.Cells))}
	for i, c := range p.Cells {
		out.Cells[i] = Offset{Row: sum - c.Row, Col: c.Col}
	}
	if p.Lines != nil {
		out.Lines = make([]LineSpec, len(p.Lines))
		for i, l := range p.Lines {
			l.Start.Y = sum - l.Start.Y
			l.Dir = l.Dir.FlipVertical()
			out.Lines[i] = l
		}
	}
	return out
}

// FlipHorizontal mirrors the pattern left-to-right about its own bounding-box
// center. The result is not renormalized.
func FlipHorizontal(p Pattern) Pattern {
	if p.Empty() {
		return p.Clone()
	}
	_, minCol, _, maxCol, _ := p.Bounds()
	sum := minCol + maxCol

	out := Pattern{Name: p.Name, Cells: make([]Offset, len(p.Cells))}
	for i, c := range p.Cells {
		out.Cells[i] = Offset{Row: c.Row, Col: sum - c.Col}
	}
	if p.Lines != nil {
		out.Lines = make([]LineSpec, len(p.Lines))
		for i, l := range p.Lines {
			l.Start.X = sum - l.Start.X
			l.Dir = l.Dir.FlipHorizontal()
			out.Lines[i] = l
		}
	}
	return out
}

// Normalize shifts the pattern so that its minimum row and column are zero.
func Normalize(p Pattern) Pattern {
	if p.Empty() {
		return p.Clone()
	}
	out := p.Clone()
	minRow, minCol, _, _, _ := p.Bounds()
	for i := range out.Cells {
		out.Cells[i].Row -= minRow
		out.Cells[i].Col -= minCol
	}
	for i := range out.Lines {
		out.Lines[i].Start.X -= minCol
		out.Lines[i].Start.Y -= minRow
	}
	return out
}
