package placed

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lifeguide/internal/board"
	"github.com/vovakirdan/lifeguide/internal/guide"
	"github.com/vovakirdan/lifeguide/internal/pattern"
)

// Manager owns the placed objects of one board, in creation order.
type Manager struct {
	lib     *pattern.Library
	objects []*Object
	ids     guide.IDFunc
	logger  *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithIDs overrides the ID source for objects and their lines.
func WithIDs(ids guide.IDFunc) Option {
	return func(m *Manager) {
		if ids != nil {
			m.ids = ids
		}
	}
}

// WithLogger sets the logger used for rejected operations.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a manager resolving pattern names through lib.
func NewManager(lib *pattern.Library, opts ...Option) *Manager {
	m := &Manager{
		lib:    lib,
		ids:    guide.NewID,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Library returns the pattern library the manager resolves names against.
func (m *Manager) Library() *pattern.Library {
	return m.lib
}

// Create anchors the named pattern at (x, y) with the given rotation in degrees.
// It fails for an unknown pattern or a rotation that is not a multiple of 90.
func (m *Manager) Create(name string, x, y, generation, rotationDeg int) (*Object, bool) {
	rot, ok := pattern.ParseRotation(rotationDeg)
	if !ok {
		m.logger.Debug("rejected placement", "pattern", name, "rotation", rotationDeg)
		return nil, false
	}
	p, ok := m.lib.Get(name)
	if !ok {
		m.logger.Debug("unknown pattern", "pattern", name)
		return nil, false
	}

	anchor := pattern.P(x, y)
	obj := &Object{
		id:         m.ids(),
		pattern:    name,
		anchor:     anchor,
		rotation:   rot,
		generation: generation,
		pixels:     pixelsAt(rot.Apply(p), anchor),
		lines:      guide.Anchor(p, anchor, rot, generation, m.ids),
		intact:     true,
	}
	m.objects = append(m.objects, obj)
	return obj, true
}

// Get returns the object with the given ID.
func (m *Manager) Get(id string) *Object {
	for _, o := range m.objects {
		if o.id == id {
			return o
		}
	}
	return nil
}

// Move translates an object's pixels and lines to a new anchor.
func (m *Manager) Move(id string, x, y int) bool {
	obj := m.Get(id)
	if obj == nil {
		return false
	}

	delta := pattern.P(x, y).Sub(obj.anchor)
	pixels := make([]pattern.Point, len(obj.pixels))
	for i, p := range obj.pixels {
		pixels[i] = p.Add(delta)
	}
	lines := make([]guide.Line, len(obj.lines))
	for i, l := range obj.lines {
		lines[i] = l.Translate(delta)
	}

	obj.anchor = pattern.P(x, y)
	obj.pixels = pixels
	obj.lines = lines
	return true
}

// Rotate re-derives an object from its source pattern at a new rotation,
// keeping the anchor. On failure the object is left untouched.
func (m *Manager) Rotate(id string, rotationDeg int) bool {
	obj := m.Get(id)
	if obj == nil {
		return false
	}
	rot, ok := pattern.ParseRotation(rotationDeg)
	if !ok {
		return false
	}
	p, ok := m.lib.Get(obj.pattern)
	if !ok {
		m.logger.Debug("cannot rotate object of unknown pattern", "id", id, "pattern", obj.pattern)
		return false
	}

	lines := guide.Anchor(p, obj.anchor, rot, obj.generation, m.ids)
	// Keep line identities stable across rotation.
	if len(lines) == len(obj.lines) {
		for i := range lines {
			lines[i].ID = obj.lines[i].ID
		}
	}

	obj.rotation = rot
	obj.pixels = pixelsAt(rot.Apply(p), obj.anchor)
	obj.lines = lines
	return true
}

// CheckIntegrity reports whether every cell the object's pattern expects at
// its anchor and rotation is alive on the grid. Unknown patterns and cells
// off the board fail.
func (m *Manager) CheckIntegrity(obj *Object, grid *board.Grid) bool {
	if obj == nil {
		return false
	}
	p, ok := m.lib.Get(obj.pattern)
	if !ok {
		return false
	}
	for _, px := range pixelsAt(obj.rotation.Apply(p), obj.anchor) {
		if !grid.InBounds(px.X, px.Y) || !grid.AlivePoint(px) {
			return false
		}
	}
	return true
}

// UpdateAllIntegrity recomputes every object's intact flag and reports
// whether any flag changed.
func (m *Manager) UpdateAllIntegrity(grid *board.Grid) bool {
	changed := false
	for _, o := range m.objects {
		intact := m.CheckIntegrity(o, grid)
		if intact != o.intact {
			o.intact = intact
			changed = true
		}
	}
	return changed
}

// VisibleGuidanceLines returns the lines of intact objects in creation order.
func (m *Manager) VisibleGuidanceLines() []guide.Line {
	var out []guide.Line
	for _, o := range m.objects {
		if o.intact {
			out = append(out, o.lines...)
		}
	}
	return out
}

// FindAt returns the most recently created object covering (x, y).
func (m *Manager) FindAt(x, y int) *Object {
	for i := len(m.objects) - 1; i >= 0; i-- {
		if m.objects[i].Contains(x, y) {
			return m.objects[i]
		}
	}
	return nil
}

// Remove deletes the object with the given ID.
func (m *Manager) Remove(id string) bool {
	for i, o := range m.objects {
		if o.id == id {
			m.objects = append(m.objects[:i], m.objects[i+1:]...)
			return true
		}
	}
	return false
}

// Objects returns the objects in creation order.
func (m *Manager) Objects() []*Object {
	out := make([]*Object, len(m.objects))
	copy(out, m.objects)
	return out
}

// Len returns the number of objects.
func (m *Manager) Len() int {
	return len(m.objects)
}

// Clear removes every object.
func (m *Manager) Clear() {
	m.objects = nil
}
