package guide

import "github.com/vovakirdan/lifeguide/internal/pattern"

// Store is a generation-tagged collection of guidance lines with the
// level-transition semantics the host drives: clear, reset and level change.
type Store struct {
	lines []Line
	ids   IDFunc
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDs overrides the line ID source.
func WithIDs(ids IDFunc) StoreOption {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{ids: NewID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add stores a line. A line without an ID gets one.
func (s *Store) Add(l Line) Line {
	if l.ID == "" {
		l.ID = s.ids()
	}
	s.lines = append(s.lines, l)
	return l
}

// AddAll stores every line in order.
func (s *Store) AddAll(lines []Line) {
	for _, l := range lines {
		s.Add(l)
	}
}

// Remove deletes the line with the given ID.
func (s *Store) Remove(id string) bool {
	for i, l := range s.lines {
		if l.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Lines returns a copy of the stored lines in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of stored lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// Reset empties the store.
func (s *Store) Reset() {
	s.lines = nil
}

// OnClear empties the store and recreates exactly the lines implied by the
// level setup, all at generation 0. Setup entries naming unknown patterns are
// skipped. It returns the number of lines created.
func (s *Store) OnClear(setup []pattern.Placement, lib *pattern.Library) int {
	s.Reset()
	created := 0
	for _, pl := range setup {
		p, ok := lib.Get(pl.Pattern)
		if !ok {
			continue
		}
		lines := Anchor(p, pl.Anchor(), pl.Rotation, 0, s.ids)
		s.AddAll(lines)
		created += len(lines)
	}
	return created
}

// OnReset drops every line created after generation 0 and reports how many
// were removed. Setup lines and anything added before the first advance stay.
func (s *Store) OnReset() int {
	kept := s.lines[:0]
	removed := 0
	for _, l := range s.lines {
		if l.Generation > 0 {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	s.lines = kept
	return removed
}

// OnLevelChange empties the store; the next level's setup repopulates it.
func (s *Store) OnLevelChange() {
	s.Reset()
}

// VisibilityFilter returns the lines that should be drawn: none while the
// automaton runs or guides are hidden, otherwise those created at or before
// the current generation.
func VisibilityFilter(lines []Line, currentGeneration int, running, visible bool) []Line {
	if running || !visible {
		return nil
	}
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Generation <= currentGeneration {
			out = append(out, l)
		}
	}
	return out
}
