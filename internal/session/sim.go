package session

import (
	"github.com/vovakirdan/lifeguide/internal/board"
	"github.com/vovakirdan/lifeguide/internal/compositor"
	"github.com/vovakirdan/lifeguide/internal/guide"
	"github.com/vovakirdan/lifeguide/internal/pattern"
	"github.com/vovakirdan/lifeguide/internal/storage"
)

// Tick is called once per display frame. While running it advances the
// automaton every StepEvery frames and reports whether it did.
func (s *Session) Tick() bool {
	if !s.running {
		return false
	}
	s.frames++
	if s.frames < s.cfg.Sim.StepEvery {
		return false
	}
	s.frames = 0
	s.Advance()
	return true
}

// Advance steps the automaton one generation. The grid as it was before the
// first advance is kept for Reset.
func (s *Session) Advance() {
	if s.firstRun == nil {
		s.firstRun = s.grid.Clone()
	}
	s.grid = s.rule.Step(s.grid)
	s.generation++
	s.objects.UpdateAllIntegrity(s.grid)

	if s.solvedAt < 0 && s.level.Solved(s.grid) {
		s.solvedAt = s.generation
		s.running = false
		s.logger.Info("level solved", "id", s.level.ID, "generation", s.generation, "placed", s.placed)
		if s.onSolved != nil {
			s.onSolved(s.Result())
		}
	}
}

// Clear restores the level's unmodified setup: the initial grid, generation
// zero, no placed objects and only the setup guidance lines.
func (s *Session) Clear() {
	s.grid = s.level.InitialGrid()
	s.firstRun = nil
	s.generation = 0
	s.running = false
	s.frames = 0
	s.solvedAt = -1
	s.placed = 0
	s.objects.Clear()
	s.lines.OnClear(s.level.Setup, s.lib)
	s.objects.UpdateAllIntegrity(s.grid)
}

// Reset returns to the state the board had when the automaton first advanced.
// Objects and lines created after generation zero are dropped. It reports
// false when the automaton has not advanced since the last clear.
func (s *Session) Reset() bool {
	s.running = false
	s.frames = 0
	if s.firstRun == nil {
		return false
	}

	s.grid = s.firstRun
	s.firstRun = nil
	s.generation = 0
	s.solvedAt = -1
	s.lines.OnReset()
	for _, o := range s.objects.Objects() {
		if o.Generation() > 0 {
			s.objects.Remove(o.ID())
		}
	}
	s.objects.UpdateAllIntegrity(s.grid)
	return true
}

// Solved reports whether the target has been completed in this attempt.
func (s *Session) Solved() bool {
	return s.solvedAt >= 0
}

// Result summarizes the current attempt for persistence.
func (s *Session) Result() storage.Result {
	gens := s.generation
	if s.solvedAt >= 0 {
		gens = s.solvedAt
	}
	return storage.Result{
		LevelID:     s.level.ID,
		Rule:        s.rule.ID(),
		Generations: gens,
		Placed:      s.placed,
		Solved:      s.solvedAt >= 0,
	}
}

// VisibleLines returns the guidance lines drawn this frame: setup lines and
// lines of intact placed objects, filtered by running state, the global flag
// and creation generation.
func (s *Session) VisibleLines() []guide.Line {
	owned := make(map[string]bool)
	for _, o := range s.objects.Objects() {
		for _, l := range o.Lines() {
			owned[l.ID] = true
		}
	}

	var candidates []guide.Line
	for _, l := range s.lines.Lines() {
		if !owned[l.ID] {
			candidates = append(candidates, l)
		}
	}
	candidates = append(candidates, s.objects.VisibleGuidanceLines()...)

	return guide.VisibilityFilter(candidates, s.generation, s.running, s.cfg.Guides.Visible)
}

// Frame assembles the compositor input for the current state.
func (s *Session) Frame() compositor.Frame {
	f := compositor.Frame{
		Grid:       s.grid,
		Generation: s.generation,
		Running:    s.running,
		Guides:     guide.Generate(s.VisibleLines(), s.level.Width, s.level.Height),
		Target:     s.level.Target,
		Editor:     compositor.Editor{Area: s.level.Editable},
	}
	if !s.running {
		f.Editor.Hover = s.brushPixels(s.cursor.X, s.cursor.Y)
	}
	for _, d := range s.level.Detectors {
		f.Markers = append(f.Markers, compositor.Marker{Positions: d.Positions, Value: d.Value})
	}
	return f
}

// Render composes and presents the current frame.
func (s *Session) Render() (compositor.Stats, error) {
	return s.comp.Render(s.Frame())
}

// ASCII renders the current frame as text for previews and logs.
func (s *Session) ASCII(opt board.RenderOptions) string {
	f := s.Frame()
	ov := board.Overlay{
		Guides: make(map[pattern.Point]int, len(f.Guides)),
		Target: f.Target,
	}
	for _, px := range f.Guides {
		ov.Guides[px.Point()] = px.Band
	}
	for _, m := range f.Markers {
		ov.Markers = append(ov.Markers, m.Positions...)
	}
	return board.RenderASCII(s.grid, ov, opt)
}
