package session

import (
	"github.com/vovakirdan/lifeguide/internal/core"
	"github.com/vovakirdan/lifeguide/internal/pattern"
)

// Apply performs a UI action and reports whether anything changed.
// ActionQuit and ActionNone are left to the host.
func (s *Session) Apply(a core.Action) bool {
	switch a {
	case core.ActionUp:
		return s.MoveCursor(0, -1)
	case core.ActionDown:
		return s.MoveCursor(0, 1)
	case core.ActionLeft:
		return s.MoveCursor(-1, 0)
	case core.ActionRight:
		return s.MoveCursor(1, 0)
	case core.ActionPlace:
		return s.PlaceAt(s.cursor.X, s.cursor.Y)
	case core.ActionErase:
		return s.EraseAt(s.cursor.X, s.cursor.Y)
	case core.ActionToggleCell:
		return s.ToggleCell(s.cursor.X, s.cursor.Y)
	case core.ActionRotateCW:
		s.rotation = (s.rotation + 1) % 4
		return true
	case core.ActionRotateCCW:
		s.rotation = (s.rotation + 3) % 4
		return true
	case core.ActionFlipV:
		s.flipV = !s.flipV
		return true
	case core.ActionFlipH:
		s.flipH = !s.flipH
		return true
	case core.ActionNextBrush:
		if len(s.brushes) == 0 {
			return false
		}
		s.brush = (s.brush + 1) % len(s.brushes)
		return true
	case core.ActionRun:
		s.running = !s.running
		s.frames = 0
		return true
	case core.ActionStep:
		if s.running {
			return false
		}
		s.Advance()
		return true
	case core.ActionClear:
		s.Clear()
		return true
	case core.ActionReset:
		return s.Reset()
	case core.ActionToggleGuides:
		s.cfg.Guides.Visible = !s.cfg.Guides.Visible
		return true
	case core.ActionNextLevel:
		return s.index+1 < len(s.levels) && s.SetLevel(s.index+1) == nil
	case core.ActionPrevLevel:
		return s.index > 0 && s.SetLevel(s.index-1) == nil
	}
	return false
}

// MoveCursor shifts the cursor, stopping at the board edge.
func (s *Session) MoveCursor(dx, dy int) bool {
	next := pattern.P(
		core.Clamp(s.cursor.X+dx, 0, s.level.Width-1),
		core.Clamp(s.cursor.Y+dy, 0, s.level.Height-1),
	)
	if next == s.cursor {
		return false
	}
	s.cursor = next
	return true
}

// SetCursor moves the cursor to (x, y). Off-board positions are ignored.
func (s *Session) SetCursor(x, y int) bool {
	if !s.grid.InBounds(x, y) {
		return false
	}
	s.cursor = pattern.P(x, y)
	return true
}

// Brush returns the selected brush name, rotation and flips.
func (s *Session) Brush() (name string, rot pattern.Rotation, flipV, flipH bool) {
	if len(s.brushes) > 0 {
		name = s.brushes[s.brush]
	}
	return name, s.rotation, s.flipV, s.flipH
}

// SelectBrush selects a brush by name.
func (s *Session) SelectBrush(name string) bool {
	for i, b := range s.brushes {
		if b == name {
			s.brush = i
			return true
		}
	}
	return false
}

// SetRotation sets the brush rotation in degrees.
func (s *Session) SetRotation(degrees int) bool {
	rot, ok := pattern.ParseRotation(degrees)
	if !ok {
		return false
	}
	s.rotation = rot
	return true
}

// brushVariant returns the library name of the selected brush with its flips
// applied, registering the flipped pattern on first use.
func (s *Session) brushVariant() (string, bool) {
	name, _, flipV, flipH := s.Brush()
	base, ok := s.lib.Get(name)
	if !ok {
		return "", false
	}
	suffix := ""
	if flipH {
		base = pattern.FlipHorizontal(base)
		suffix += "h"
	}
	if flipV {
		base = pattern.FlipVertical(base)
		suffix += "v"
	}
	if suffix == "" {
		return name, true
	}
	variant := name + "/" + suffix
	if !s.lib.Has(variant) {
		base.Name = variant
		s.lib.Add(base)
	}
	return variant, true
}

// brushPixels returns the board cells the brush would cover anchored at (x, y).
func (s *Session) brushPixels(x, y int) []pattern.Point {
	variant, ok := s.brushVariant()
	if !ok {
		return nil
	}
	p, _ := s.lib.Get(variant)
	anchor := pattern.P(x, y)
	cells := s.rotation.Apply(p).Cells
	out := make([]pattern.Point, len(cells))
	for i, c := range cells {
		out[i] = anchor.Add(c.Point())
	}
	return out
}

// PlaceAt anchors the selected brush at (x, y), stamps its cells and binds its
// guidance lines at the current generation. It fails while running or when
// any cell would fall outside the editable area.
func (s *Session) PlaceAt(x, y int) bool {
	if s.running {
		return false
	}
	for _, p := range s.brushPixels(x, y) {
		if !s.grid.InBounds(p.X, p.Y) || !s.level.CanEdit(p.X, p.Y) {
			s.logger.Debug("placement outside editable area", "x", x, "y", y)
			return false
		}
	}
	variant, ok := s.brushVariant()
	if !ok {
		return false
	}
	obj, ok := s.objects.Create(variant, x, y, s.generation, s.rotation.Degrees())
	if !ok {
		return false
	}

	s.grid.Stamp(obj.Pixels())
	s.lines.AddAll(obj.Lines())
	s.placed++
	s.objects.UpdateAllIntegrity(s.grid)
	return true
}

// EraseAt removes the most recent object covering (x, y): its editable cells
// are cleared and its guidance lines dropped.
func (s *Session) EraseAt(x, y int) bool {
	if s.running {
		return false
	}
	obj := s.objects.FindAt(x, y)
	if obj == nil {
		return false
	}

	for _, p := range obj.Pixels() {
		if s.level.CanEdit(p.X, p.Y) {
			s.grid.Set(p.X, p.Y, false)
		}
	}
	for _, l := range obj.Lines() {
		s.lines.Remove(l.ID)
	}
	s.objects.Remove(obj.ID())
	s.objects.UpdateAllIntegrity(s.grid)
	return true
}

// ToggleCell flips one editable cell while the automaton is stopped.
func (s *Session) ToggleCell(x, y int) bool {
	if s.running || !s.grid.InBounds(x, y) || !s.level.CanEdit(x, y) {
		return false
	}
	s.grid.Toggle(x, y)
	s.objects.UpdateAllIntegrity(s.grid)
	return true
}
