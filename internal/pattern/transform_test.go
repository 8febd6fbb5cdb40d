package pattern_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vovakirdan/lifeguide/internal/pattern"
)

var sortOffsets = cmpopts.SortSlices(func(a, b pattern.Offset) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
})

func lShape() pattern.Pattern {
	return pattern.Pattern{
		Name:  "L",
		Cells: []pattern.Offset{pattern.O(0, 0), pattern.O(0, 1), pattern.O(1, 0)},
		Lines: []pattern.LineSpec{
			{Dir: pattern.DirE, Start: pattern.P(2, 0), Length: 5, Speed: 2},
		},
	}
}

func glider() pattern.Pattern {
	return pattern.Pattern{
		Name: "glider",
		Cells: []pattern.Offset{
			pattern.O(0, 1), pattern.O(1, 2), pattern.O(2, 0), pattern.O(2, 1), pattern.O(2, 2),
		},
		Lines: []pattern.LineSpec{
			{Dir: pattern.DirSE, Start: pattern.P(3, 3), Length: pattern.Unbounded, Speed: 4},
			{Dir: pattern.DirN, Start: pattern.P(1, -1), Length: 3, Speed: 1},
		},
	}
}

func TestRotateClockwiseLShape(t *testing.T) {
	got := pattern.RotateClockwise(lShape())

	want := []pattern.Offset{pattern.O(0, 0), pattern.O(0, 1), pattern.O(1, 1)}
	if diff := cmp.Diff(want, got.Cells, sortOffsets); diff != "" {
		t.Errorf("RotateClockwise(L) cells mismatch (-want +got):\n%s", diff)
	}

	if len(got.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got.Lines))
	}
	if got.Lines[0].Dir != pattern.DirS {
		t.Errorf("line direction = %v, expected S", got.Lines[0].Dir)
	}
	// (2,0) -> (0,2), then shifted by the same +1 column normalization as the cells.
	if got.Lines[0].Start != pattern.P(1, 2) {
		t.Errorf("line start = %v, expected (1,2)", got.Lines[0].Start)
	}
	if got.Lines[0].Length != 5 || got.Lines[0].Speed != 2 {
		t.Errorf("length/speed changed: %+v", got.Lines[0])
	}
}

func TestRotationFourTimesIsIdentity(t *testing.T) {
	for _, p := range []pattern.Pattern{lShape(), glider()} {
		t.Run(p.Name, func(t *testing.T) {
			cw, ccw := p, p
			for i := 0; i < 4; i++ {
				cw = pattern.RotateClockwise(cw)
				ccw = pattern.RotateCounterclockwise(ccw)
			}
			if diff := cmp.Diff(p.Cells, cw.Cells, sortOffsets); diff != "" {
				t.Errorf("4x clockwise mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(p.Cells, ccw.Cells, sortOffsets); diff != "" {
				t.Errorf("4x counterclockwise mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(p.Lines, cw.Lines); diff != "" {
				t.Errorf("4x clockwise lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRotationInverse(t *testing.T) {
	for _, p := range []pattern.Pattern{lShape(), glider()} {
		t.Run(p.Name, func(t *testing.T) {
			back := pattern.RotateClockwise(pattern.RotateCounterclockwise(p))
			if diff := cmp.Diff(p.Cells, back.Cells, sortOffsets); diff != "" {
				t.Errorf("cw(ccw(p)) mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(p.Lines, back.Lines); diff != "" {
				t.Errorf("cw(ccw(p)) lines mismatch (-want +got):\n%s", diff)
			}

			back = pattern.RotateCounterclockwise(pattern.RotateClockwise(p))
			if diff := cmp.Diff(p.Cells, back.Cells, sortOffsets); diff != "" {
				t.Errorf("ccw(cw(p)) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRotationNormalizes(t *testing.T) {
	skewed := pattern.Pattern{
		Name:  "skewed",
		Cells: []pattern.Offset{pattern.O(-3, 4), pattern.O(-2, 7), pattern.O(5, -1)},
	}

	outputs := map[string]pattern.Pattern{
		"cw":   pattern.RotateClockwise(skewed),
		"ccw":  pattern.RotateCounterclockwise(skewed),
		"r90":  pattern.Rot90.Apply(skewed),
		"r180": pattern.Rot180.Apply(skewed),
	}
	for name, p := range outputs {
		minRow, minCol, _, _, ok := p.Bounds()
		if !ok {
			t.Fatalf("%s: empty result", name)
		}
		if minRow != 0 || minCol != 0 {
			t.Errorf("%s: min row/col = (%d,%d), expected (0,0)", name, minRow, minCol)
		}
	}
}

func TestFlipVerticalLShape(t *testing.T) {
	p := lShape()
	p.Lines[0].Dir = pattern.DirNE
	p.Lines[0].Start = pattern.P(2, -1)

	got := pattern.FlipVertical(p)

	want := []pattern.Offset{pattern.O(1, 0), pattern.O(1, 1), pattern.O(0, 0)}
	if diff := cmp.Diff(want, got.Cells, sortOffsets); diff != "" {
		t.Errorf("FlipVertical(L) mismatch (-want +got):\n%s", diff)
	}
	if got.Lines[0].Dir != pattern.DirSE {
		t.Errorf("line direction = %v, expected SE", got.Lines[0].Dir)
	}
	if got.Lines[0].Start != pattern.P(2, 2) {
		t.Errorf("line start = %v, expected (2,2)", got.Lines[0].Start)
	}
}

func TestFlipDoesNotRenormalize(t *testing.T) {
	p := pattern.Pattern{
		Name:  "offset",
		Cells: []pattern.Offset{pattern.O(2, 3), pattern.O(4, 3), pattern.O(4, 6)},
	}

	v := pattern.FlipVertical(p)
	wantV := []pattern.Offset{pattern.O(4, 3), pattern.O(2, 3), pattern.O(2, 6)}
	if diff := cmp.Diff(wantV, v.Cells, sortOffsets); diff != "" {
		t.Errorf("FlipVertical mismatch (-want +got):\n%s", diff)
	}

	h := pattern.FlipHorizontal(p)
	wantH := []pattern.Offset{pattern.O(2, 6), pattern.O(4, 6), pattern.O(4, 3)}
	if diff := cmp.Diff(wantH, h.Cells, sortOffsets); diff != "" {
		t.Errorf("FlipHorizontal mismatch (-want +got):\n%s", diff)
	}
}

func TestFlipInvolution(t *testing.T) {
	for _, p := range []pattern.Pattern{lShape(), glider()} {
		t.Run(p.Name, func(t *testing.T) {
			v := pattern.FlipVertical(pattern.FlipVertical(p))
			if diff := cmp.Diff(p.Cells, v.Cells, sortOffsets); diff != "" {
				t.Errorf("flipV twice mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(p.Lines, v.Lines); diff != "" {
				t.Errorf("flipV twice lines mismatch (-want +got):\n%s", diff)
			}

			h := pattern.FlipHorizontal(pattern.FlipHorizontal(p))
			if diff := cmp.Diff(p.Cells, h.Cells, sortOffsets); diff != "" {
				t.Errorf("flipH twice mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(p.Lines, h.Lines); diff != "" {
				t.Errorf("flipH twice lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransformsDoNotMutateInput(t *testing.T) {
	p := glider()
	orig := p.Clone()

	pattern.RotateClockwise(p)
	pattern.RotateCounterclockwise(p)
	pattern.FlipVertical(p)
	pattern.FlipHorizontal(p)

	if diff := cmp.Diff(orig, p); diff != "" {
		t.Errorf("input mutated (-orig +now):\n%s", diff)
	}
}

func TestApplyDegradesToIdentity(t *testing.T) {
	p := glider()

	got := pattern.Apply(p, pattern.Op("mirror_diagonal"))
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("unknown op should be identity (-want +got):\n%s", diff)
	}

	empty := pattern.Pattern{Name: "nothing"}
	for _, op := range []pattern.Op{pattern.OpRotateCW, pattern.OpRotateCCW, pattern.OpFlipV, pattern.OpFlipH} {
		out := pattern.Apply(empty, op)
		if !out.Empty() || out.Name != "nothing" {
			t.Errorf("%s on empty pattern = %+v, expected empty identity", op, out)
		}
	}
}

func TestApplyDispatch(t *testing.T) {
	p := glider()
	tests := []struct {
		op   pattern.Op
		want pattern.Pattern
	}{
		{pattern.OpRotateCW, pattern.RotateClockwise(p)},
		{pattern.OpRotateCCW, pattern.RotateCounterclockwise(p)},
		{pattern.OpFlipV, pattern.FlipVertical(p)},
		{pattern.OpFlipH, pattern.FlipHorizontal(p)},
	}
	for _, tc := range tests {
		t.Run(string(tc.op), func(t *testing.T) {
			if diff := cmp.Diff(tc.want, pattern.Apply(p, tc.op)); diff != "" {
				t.Errorf("Apply(%s) mismatch (-want +got):\n%s", tc.op, diff)
			}
		})
	}
}
