package compositor

import "github.com/vovakirdan/lifeguide/internal/core"

// maxDirtyRects is the threshold after which the tracker switches to a full redraw.
const maxDirtyRects = 16

// dirtyTracker accumulates changed regions in cell space.
// Touching rectangles are merged as they arrive.
type dirtyTracker struct {
	rects []core.Rect
	full  bool
	max   int
}

func newDirtyTracker(max int) *dirtyTracker {
	if max <= 0 {
		max = maxDirtyRects
	}
	return &dirtyTracker{max: max}
}

// mark adds a region. Empty regions are ignored.
func (d *dirtyTracker) mark(r core.Rect) {
	if d.full || r.Empty() {
		return
	}

	for merged := true; merged; {
		merged = false
		for i, existing := range d.rects {
			if existing.Touches(r) {
				r = r.Union(existing)
				d.rects = append(d.rects[:i], d.rects[i+1:]...)
				merged = true
				break
			}
		}
	}
	d.rects = append(d.rects, r)

	if len(d.rects) > d.max {
		d.markAll()
	}
}

// markAll switches to full redraw and drops the individual rects.
func (d *dirtyTracker) markAll() {
	d.full = true
	d.rects = d.rects[:0]
}

// list returns a copy of the pending rects; nil in full-redraw mode.
func (d *dirtyTracker) list() []core.Rect {
	if d.full {
		return nil
	}
	out := make([]core.Rect, len(d.rects))
	copy(out, d.rects)
	return out
}

func (d *dirtyTracker) needsFull() bool {
	return d.full
}

func (d *dirtyTracker) empty() bool {
	return !d.full && len(d.rects) == 0
}

func (d *dirtyTracker) clear() {
	d.rects = d.rects[:0]
	d.full = false
}
