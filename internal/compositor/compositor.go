// Package compositor layers the board, guidance lines, target, editor overlays
// and detector markers into an RGBA buffer and presents it to a Surface.
//
// Frames take one of two paths. The full path repaints every cell into a fresh
// buffer; it runs on the first frame, after a resize, after a board size change
// or when too many regions are dirty. The incremental path repaints only cells
// whose appearance changed since the previous frame plus any regions marked
// dirty by the caller. Both paths use the same per-cell painter, so their
// output is identical.
package compositor

import (
	"fmt"
	"image"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lifeguide/internal/core"
)

// Compositor renders frames onto a single surface. It is not safe for
// concurrent use.
type Compositor struct {
	surface Surface
	paint   *painter
	logger  *log.Logger
	dirty   *dirtyTracker
	state   State

	buf          *image.RGBA
	prev         []cellSig // previous frame; nil when unknown
	prevW, prevH int       // board size of prev
	surfW, surfH int       // surface size of the last frame
}

// Option configures a Compositor.
type Option func(*options)

type options struct {
	palette   Palette
	order     []Layer
	gridLines bool
	maxDirty  int
	logger    *log.Logger
}

// WithPalette sets the layer colors.
func WithPalette(p Palette) Option {
	return func(o *options) { o.palette = p }
}

// WithOrder sets the layer paint order. Markers are always painted last.
func WithOrder(order ...Layer) Option {
	return func(o *options) { o.order = order }
}

// WithGridLines toggles the 1px grid drawn between cells.
func WithGridLines(on bool) Option {
	return func(o *options) { o.gridLines = on }
}

// WithMaxDirtyRects sets how many separate dirty regions are tracked before
// the next frame falls back to a full redraw.
func WithMaxDirtyRects(n int) Option {
	return func(o *options) { o.maxDirty = n }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a compositor for the surface.
func New(surface Surface, opts ...Option) *Compositor {
	o := options{
		palette:   DefaultPalette(),
		order:     DefaultOrder,
		gridLines: true,
		maxDirty:  maxDirtyRects,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	return &Compositor{
		surface: surface,
		paint:   newPainter(o.palette, o.order, o.gridLines),
		logger:  o.logger,
		dirty:   newDirtyTracker(o.maxDirty),
		state:   StateUninitialized,
	}
}

// State returns the lifecycle state.
func (c *Compositor) State() State {
	return c.state
}

// Order returns the effective layer paint order.
func (c *Compositor) Order() []Layer {
	out := make([]Layer, len(c.paint.order))
	copy(out, c.paint.order)
	return out
}

// MarkDirty flags a region of cells for repaint on the next incremental frame.
func (c *Compositor) MarkDirty(r core.Rect) {
	c.dirty.mark(r)
}

// DirtyRects returns the pending dirty regions in cell coordinates. It is nil
// when the next frame is already a full redraw.
func (c *Compositor) DirtyRects() []core.Rect {
	return c.dirty.list()
}

// ClearDirty drops all pending dirty regions.
func (c *Compositor) ClearDirty() {
	c.dirty.clear()
}

// Resize resizes the surface when it supports it and invalidates all render
// state so the next frame is a full redraw.
func (c *Compositor) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid dimensions: width=%d, height=%d (both must be > 0)", w, h)
	}
	if r, ok := c.surface.(Resizer); ok {
		if err := r.Resize(w, h); err != nil {
			return fmt.Errorf("resize surface: %w", err)
		}
	}
	c.invalidate()
	return nil
}

// SetSurface replaces the surface and invalidates all render state.
func (c *Compositor) SetSurface(s Surface) {
	c.surface = s
	c.invalidate()
}

// Surface returns the current surface.
func (c *Compositor) Surface() Surface {
	return c.surface
}

// invalidate discards the previous frame, the buffer and dirty bookkeeping.
func (c *Compositor) invalidate() {
	c.buf = nil
	c.prev = nil
	c.prevW, c.prevH = 0, 0
	c.dirty.clear()
	if c.state != StateUninitialized {
		c.state = StateResizePending
	}
}

// Render draws the frame. Drawing or presenting failures are answered by a
// live-cells-only fallback frame; an error is returned only when the fallback
// could not be presented either.
func (c *Compositor) Render(f Frame) (stats Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			stats, err = c.fallback(f, fmt.Errorf("render panic: %v", r))
		}
	}()

	w, h := c.surface.Size()
	if w <= 0 || h <= 0 {
		return Stats{Path: PathNone}, nil
	}
	if c.state == StateReady && (w != c.surfW || h != c.surfH) {
		c.logger.Debug("surface size changed", "from", fmt.Sprintf("%dx%d", c.surfW, c.surfH), "to", fmt.Sprintf("%dx%d", w, h))
		c.invalidate()
	}

	gw, gh := f.Grid.Width(), f.Grid.Height()
	cell := cellSize(w, h, gw, gh)
	sigs := signatures(f)

	full := c.state != StateReady || c.buf == nil || c.prev == nil ||
		gw != c.prevW || gh != c.prevH || c.dirty.needsFull()
	if !full {
		for i, s := range sigs {
			if s != c.prev[i] {
				c.dirty.mark(core.NewRect(i%gw, i/gw, 1, 1))
			}
		}
		full = c.dirty.needsFull()
	}

	if full {
		stats = c.renderFull(sigs, w, h, gw, cell)
	} else {
		stats = c.renderDirty(sigs, gw, gh, cell)
	}

	if stats.Rects > 0 {
		if perr := c.present(stats.rects); perr != nil {
			return c.fallback(f, perr)
		}
	}

	c.prev = sigs
	c.prevW, c.prevH = gw, gh
	c.surfW, c.surfH = w, h
	c.dirty.clear()
	c.state = StateReady
	stats.rects = nil
	return stats, nil
}

func (c *Compositor) renderFull(sigs []cellSig, w, h, gw, cell int) Stats {
	if c.buf == nil || c.buf.Bounds().Dx() != w || c.buf.Bounds().Dy() != h {
		c.buf = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	fill(c.buf, c.buf.Bounds(), c.paint.pal.Background)
	for i, s := range sigs {
		c.paint.paintCell(c.buf, i%gw, i/gw, cell, s)
	}
	return Stats{
		Path:     PathFull,
		Cells:    len(sigs),
		Rects:    1,
		CellSize: cell,
		rects:    []image.Rectangle{c.buf.Bounds()},
	}
}

func (c *Compositor) renderDirty(sigs []cellSig, gw, gh, cell int) Stats {
	bounds := core.NewRect(0, 0, gw, gh)
	stats := Stats{Path: PathIncremental, CellSize: cell}
	for _, r := range c.dirty.list() {
		r = r.Intersect(bounds)
		if r.Empty() {
			continue
		}
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				c.paint.paintCell(c.buf, x, y, cell, sigs[y*gw+x])
				stats.Cells++
			}
		}
		px := r.Scale(cell)
		stats.rects = append(stats.rects, image.Rect(px.X, px.Y, px.Right(), px.Bottom()))
	}
	stats.Rects = len(stats.rects)
	return stats
}

// present hands regions to the surface, turning a panic into an error.
func (c *Compositor) present(rects []image.Rectangle) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("present panic: %v", r)
		}
	}()
	return c.surface.Present(c.buf, rects)
}

// fallback paints only live cells on a fresh buffer and forces the next frame
// to a full redraw.
func (c *Compositor) fallback(f Frame, cause error) (Stats, error) {
	c.logger.Warn("render failed, drawing live cells only", "generation", f.Generation, "err", cause)

	c.prev = nil
	c.dirty.clear()
	c.dirty.markAll()

	w, h := c.surface.Size()
	if w <= 0 || h <= 0 {
		c.buf = nil
		return Stats{Path: PathFallback, Cause: cause}, nil
	}
	cell := cellSize(w, h, f.Grid.Width(), f.Grid.Height())
	c.buf = image.NewRGBA(image.Rect(0, 0, w, h))
	paintLiveOnly(c.buf, f.Grid, cell, c.paint.pal)

	stats := Stats{Path: PathFallback, Cells: f.Grid.LiveCount(), Rects: 1, CellSize: cell, Cause: cause}
	if err := c.present([]image.Rectangle{c.buf.Bounds()}); err != nil {
		c.logger.Error("fallback present failed", "err", err)
		return stats, fmt.Errorf("present fallback frame: %w", err)
	}
	c.surfW, c.surfH = w, h
	return stats, nil
}
