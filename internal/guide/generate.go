package guide

import (
	"math"

	"github.com/vovakirdan/lifeguide/internal/core"
	"github.com/vovakirdan/lifeguide/internal/pattern"
)

// Pixel is one colored guide cell.
type Pixel struct {
	X    int
	Y    int
	Band int // 0 or 1, alternating every Speed steps
	Line int // index of the source line in the Generate input
}

// Point returns the pixel position.
func (p Pixel) Point() pattern.Point {
	return pattern.P(p.X, p.Y)
}

// step is one in-area cell of a line path with its distance from the origin.
type step struct {
	at pattern.Point
	i  int
}

// Band returns the color class of step i for a line with the given speed.
func Band(i, speed int) int {
	if speed <= 0 || i < 0 {
		return 0
	}
	return (i / speed) % 2
}

// Path walks a single line inside a w x h area and returns its cells in order.
// Bounded lines take at most Length steps from the origin; unbounded lines run
// until they leave the area. Cells outside the area are dropped.
func Path(l Line, w, h int) []pattern.Point {
	steps := walk(l, w, h)
	out := make([]pattern.Point, len(steps))
	for i, s := range steps {
		out[i] = s.at
	}
	return out
}

func walk(l Line, w, h int) []step {
	if !l.Valid() || w <= 0 || h <= 0 {
		return nil
	}

	dx, dy := l.Dir.Delta()
	loX, hiX, okX := span(l.Origin.X, dx, w)
	loY, hiY, okY := span(l.Origin.Y, dy, h)
	if !okX || !okY {
		return nil
	}
	first := core.Max(loX, loY)
	last := core.Min(hiX, hiY)
	if !l.Length.IsUnbounded() {
		last = core.Min(last, int(l.Length)-1)
	}
	if first > last {
		return nil
	}

	steps := make([]step, 0, last-first+1)
	at := pattern.P(l.Origin.X+dx*first, l.Origin.Y+dy*first)
	for i := first; i <= last; i++ {
		steps = append(steps, step{at: at, i: i})
		at = at.Step(l.Dir)
	}
	return steps
}

// span returns the step range [lo, hi] over which o + d*i stays in [0, size).
// A zero delta is either always inside or never.
func span(o, d, size int) (lo, hi int, ok bool) {
	switch {
	case d > 0:
		lo, hi = -o, size-1-o
	case d < 0:
		lo, hi = o-(size-1), o
	default:
		if o < 0 || o >= size {
			return 0, 0, false
		}
		return 0, math.MaxInt, true
	}
	lo = core.Max(lo, 0)
	return lo, hi, lo <= hi
}

// Generate converts lines into colored pixels for a w x h area.
//
// A single line is walked directly. With several lines every path is walked in
// full and then arbitrated pairwise: where two paths share a run of at least two
// consecutive cells, the line that reaches the run later is cut immediately
// before it, and the line that gets there first keeps going.
func Generate(lines []Line, w, h int) []Pixel {
	var out []Pixel
	for _, pixels := range Trace(lines, w, h) {
		out = append(out, pixels...)
	}
	return out
}

// Trace is Generate grouped by input line.
func Trace(lines []Line, w, h int) [][]Pixel {
	out := make([][]Pixel, len(lines))
	if len(lines) == 0 {
		return out
	}

	paths := make([][]step, len(lines))
	for i, l := range lines {
		paths[i] = walk(l, w, h)
	}

	caps := make([]int, len(lines))
	for i := range caps {
		caps[i] = -1
	}
	if len(lines) > 1 {
		caps = arbitrate(lines, paths)
	}

	for i, path := range paths {
		pixels := make([]Pixel, 0, len(path))
		for _, s := range path {
			if caps[i] >= 0 && s.i >= caps[i] {
				break
			}
			pixels = append(pixels, Pixel{X: s.at.X, Y: s.at.Y, Band: Band(s.i, lines[i].Speed), Line: i})
		}
		out[i] = pixels
	}
	return out
}

// arbitrate returns, per line, the step index at which it is cut (-1 = uncut).
// Every pair is judged on the uncut paths and the smallest cut wins, so the
// result does not depend on input order.
func arbitrate(lines []Line, paths [][]step) []int {
	caps := make([]int, len(lines))
	for i := range caps {
		caps[i] = -1
	}

	sets := make([]map[pattern.Point]struct{}, len(paths))
	for i, path := range paths {
		set := make(map[pattern.Point]struct{}, len(path))
		for _, s := range path {
			set[s.at] = struct{}{}
		}
		sets[i] = set
	}

	cut := func(i, at int) {
		if caps[i] < 0 || at < caps[i] {
			caps[i] = at
		}
	}

	for a := 0; a < len(lines); a++ {
		for b := a + 1; b < len(lines); b++ {
			entryA, entryB, ok := meeting(lines[a], lines[b], paths[a], paths[b], sets[a], sets[b])
			if !ok {
				continue
			}
			switch {
			case entryA < entryB:
				cut(b, entryB)
			case entryB < entryA:
				cut(a, entryA)
			case lineLess(lines[a], lines[b]):
				cut(b, entryB)
			default:
				cut(a, entryA)
			}
		}
	}
	return caps
}

// meeting finds where each of two lines enters their first shared run.
// Identical origin and direction meet at step 0.
func meeting(la, lb Line, pa, pb []step, sa, sb map[pattern.Point]struct{}) (int, int, bool) {
	if len(pa) == 0 || len(pb) == 0 {
		return 0, 0, false
	}
	if la.Origin == lb.Origin && la.Dir == lb.Dir {
		return pa[0].i, pb[0].i, true
	}
	entryA, okA := runEntry(pa, sb)
	entryB, okB := runEntry(pb, sa)
	if !okA || !okB {
		return 0, 0, false
	}
	return entryA, entryB, true
}

// runEntry returns the step of the first cell that starts a run of two or more
// consecutive path cells all present in other.
func runEntry(path []step, other map[pattern.Point]struct{}) (int, bool) {
	for k := 0; k+1 < len(path); k++ {
		if path[k+1].i != path[k].i+1 {
			continue
		}
		if _, ok := other[path[k].at]; !ok {
			continue
		}
		if _, ok := other[path[k+1].at]; ok {
			return path[k].i, true
		}
	}
	return 0, false
}
