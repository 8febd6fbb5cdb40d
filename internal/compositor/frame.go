package compositor

import (
	"image"

	"github.com/vovakirdan/lifeguide/internal/board"
	"github.com/vovakirdan/lifeguide/internal/core"
	"github.com/vovakirdan/lifeguide/internal/guide"
	"github.com/vovakirdan/lifeguide/internal/pattern"
)

// Marker is a detector render datum: the cells it occupies and the value it shows.
type Marker struct {
	Positions []pattern.Point
	Value     int
}

// Editor holds transient editing overlays.
type Editor struct {
	Hover []pattern.Point // brush preview under the cursor
	Area  core.Rect       // editable region; empty means none
}

// Frame is everything the compositor needs to draw one frame.
// Generations may jump by more than one between frames.
type Frame struct {
	Grid       *board.Grid
	Generation int
	Running    bool
	Guides     []guide.Pixel // already filtered for visibility
	Target     []pattern.Point
	Editor     Editor
	Markers    []Marker
}

// Path is the draw path a frame took.
type Path uint8

const (
	PathNone Path = iota
	PathFull
	PathIncremental
	PathFallback
)

func (p Path) String() string {
	switch p {
	case PathFull:
		return "full"
	case PathIncremental:
		return "incremental"
	case PathFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Stats describes one Render call.
type Stats struct {
	Path     Path
	Cells    int   // cells repainted
	Rects    int   // regions presented
	CellSize int   // pixels per cell side
	Cause    error // set when the fallback path ran

	rects []image.Rectangle
}

// State is the compositor lifecycle state.
type State uint8

const (
	StateUninitialized State = iota
	StateReady
	StateResizePending
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateResizePending:
		return "resize_pending"
	default:
		return "uninitialized"
	}
}

// Boundary edge bits.
const (
	edgeTop uint8 = 1 << iota
	edgeRight
	edgeBottom
	edgeLeft
)

const (
	targetNone uint8 = iota
	targetHit
	targetMiss
)

// cellSig is everything that decides how one cell looks. Two cells with the
// same signature and size paint identical pixels.
type cellSig struct {
	alive    bool
	guide    int8 // -1 none, otherwise band
	target   uint8
	hover    bool
	boundary uint8 // edgeTop | edgeRight | ...
	marker   bool
	value    int
}

// signatures computes the per-cell signature of a frame, row-major.
func signatures(f Frame) []cellSig {
	w, h := f.Grid.Width(), f.Grid.Height()
	sigs := make([]cellSig, w*h)
	if len(sigs) == 0 {
		return sigs
	}
	at := func(x, y int) *cellSig {
		if x < 0 || y < 0 || x >= w || y >= h {
			return nil
		}
		return &sigs[y*w+x]
	}

	for i := range sigs {
		sigs[i].guide = -1
		sigs[i].alive = f.Grid.Alive(i%w, i/w)
	}
	for _, px := range f.Guides {
		if s := at(px.X, px.Y); s != nil {
			s.guide = int8(px.Band & 1)
		}
	}
	for _, p := range f.Target {
		if s := at(p.X, p.Y); s != nil {
			if s.alive {
				s.target = targetHit
			} else {
				s.target = targetMiss
			}
		}
	}
	for _, p := range f.Editor.Hover {
		if s := at(p.X, p.Y); s != nil {
			s.hover = true
		}
	}
	if area := f.Editor.Area; !area.Empty() {
		for y := area.Y; y < area.Bottom(); y++ {
			for x := area.X; x < area.Right(); x++ {
				s := at(x, y)
				if s == nil || !area.OnEdge(x, y) {
					continue
				}
				if y == area.Y {
					s.boundary |= edgeTop
				}
				if y == area.Bottom()-1 {
					s.boundary |= edgeBottom
				}
				if x == area.X {
					s.boundary |= edgeLeft
				}
				if x == area.Right()-1 {
					s.boundary |= edgeRight
				}
			}
		}
	}
	for _, m := range f.Markers {
		for _, p := range m.Positions {
			if s := at(p.X, p.Y); s != nil {
				s.marker = true
				s.value = m.Value
			}
		}
	}
	return sigs
}
