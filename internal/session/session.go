// Package session is the host glue around the board core. A Session owns one
// level at a time: its grid and automaton rule, the placed objects and
// guidance lines, the brush under the cursor, and the compositor that draws
// each frame.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lifeguide/internal/board"
	"github.com/vovakirdan/lifeguide/internal/compositor"
	"github.com/vovakirdan/lifeguide/internal/config"
	"github.com/vovakirdan/lifeguide/internal/guide"
	"github.com/vovakirdan/lifeguide/internal/level"
	"github.com/vovakirdan/lifeguide/internal/pattern"
	"github.com/vovakirdan/lifeguide/internal/placed"
	"github.com/vovakirdan/lifeguide/internal/registry"
	"github.com/vovakirdan/lifeguide/internal/storage"
)

// Session is one player's board. It is not safe for concurrent use; the
// frame loop that owns it calls every method.
type Session struct {
	levels []level.Level
	index  int
	level  level.Level
	lib    *pattern.Library // level brushes plus flipped variants
	rule   registry.Rule

	grid       *board.Grid
	firstRun   *board.Grid // grid when the automaton first advanced
	generation int
	running    bool
	frames     int
	solvedAt   int // generation of the first solve, -1 while unsolved
	placed     int

	objects *placed.Manager
	lines   *guide.Store
	comp    *compositor.Compositor

	brushes  []string
	brush    int
	rotation pattern.Rotation
	flipV    bool
	flipH    bool
	cursor   pattern.Point

	cfg      config.Config
	cellSize int // surface pixels per board cell
	surface  compositor.Surface
	logger   *log.Logger
	ids      guide.IDFunc
	onSolved func(storage.Result)
}

// Option configures a Session.
type Option func(*Session)

// WithConfig applies runtime configuration: pacing, rule override, guide
// visibility and the compositor palette, layer order and grid lines.
func WithConfig(cfg config.Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

// WithSurface draws frames onto surface instead of an in-memory image. A
// surface that can be resized is sized to the level on every level change.
func WithSurface(surface compositor.Surface) Option {
	return func(s *Session) { s.surface = surface }
}

// WithCellSize overrides the configured pixels per board cell.
func WithCellSize(px int) Option {
	return func(s *Session) { s.cellSize = px }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDs sets the ID source for placed objects and lines.
func WithIDs(ids guide.IDFunc) Option {
	return func(s *Session) { s.ids = ids }
}

// OnSolved registers a callback run once per attempt when the target is first
// completed.
func OnSolved(fn func(storage.Result)) Option {
	return func(s *Session) { s.onSolved = fn }
}

// New creates a session over levels, starting at index start.
func New(levels []level.Level, start int, opts ...Option) (*Session, error) {
	if len(levels) == 0 {
		return nil, errors.New("session: no levels")
	}
	if start < 0 || start >= len(levels) {
		return nil, fmt.Errorf("session: level index %d out of range [0, %d)", start, len(levels))
	}

	s := &Session{
		levels: levels,
		cfg:    config.Default(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg.Normalize()
	if s.ids == nil {
		s.ids = guide.NewID
	}
	if s.cellSize <= 0 {
		s.cellSize = s.cfg.Board.CellSize
	}

	compOpts, err := s.compositorOptions()
	if err != nil {
		return nil, err
	}
	if s.surface == nil {
		first := levels[start]
		s.surface = compositor.NewMemorySurface(first.Width*s.cellSize, first.Height*s.cellSize)
	}
	s.comp = compositor.New(s.surface, compOpts...)
	s.lines = guide.NewStore(guide.WithIDs(s.ids))

	if err := s.SetLevel(start); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) compositorOptions() ([]compositor.Option, error) {
	opts := []compositor.Option{
		compositor.WithGridLines(s.cfg.Board.GridLines),
		compositor.WithMaxDirtyRects(s.cfg.Board.MaxDirtyRects),
		compositor.WithLogger(s.logger),
	}
	if len(s.cfg.Palette) > 0 {
		pal, err := compositor.PaletteFromHex(s.cfg.Palette)
		if err != nil {
			return nil, fmt.Errorf("session: palette: %w", err)
		}
		opts = append(opts, compositor.WithPalette(pal))
	}
	if len(s.cfg.Board.Layers) > 0 {
		order, err := compositor.ParseOrder(s.cfg.Board.Layers)
		if err != nil {
			return nil, fmt.Errorf("session: layers: %w", err)
		}
		opts = append(opts, compositor.WithOrder(order...))
	}
	return opts, nil
}

// SetLevel switches to levels[i]. Guidance lines of the previous level are
// dropped and the new level's setup is applied.
func (s *Session) SetLevel(i int) error {
	if i < 0 || i >= len(s.levels) {
		return fmt.Errorf("session: level index %d out of range [0, %d)", i, len(s.levels))
	}
	lvl := s.levels[i]

	ruleID := lvl.Rule
	if s.cfg.Sim.Rule != "" {
		ruleID = s.cfg.Sim.Rule
	}
	rule, err := registry.Create(ruleID)
	if err != nil {
		return fmt.Errorf("session: level %s: %w", lvl.ID, err)
	}

	s.lines.OnLevelChange()
	s.index = i
	s.level = lvl
	s.rule = rule
	s.lib = lvl.Patterns.Merge(nil)
	s.objects = placed.NewManager(s.lib, placed.WithIDs(s.ids), placed.WithLogger(s.logger))
	s.brushes = s.lib.Names()
	s.brush = 0
	s.rotation = pattern.Rot0
	s.flipV, s.flipH = false, false
	s.cursor = pattern.P(lvl.Width/2, lvl.Height/2)

	if _, ok := s.surface.(compositor.Resizer); ok {
		if err := s.comp.Resize(lvl.Width*s.cellSize, lvl.Height*s.cellSize); err != nil {
			return fmt.Errorf("session: %w", err)
		}
	}

	s.Clear()
	s.logger.Debug("level loaded", "id", lvl.ID, "rule", rule.ID(), "setup", len(lvl.Setup))
	return nil
}

// Level returns the current level.
func (s *Session) Level() level.Level { return s.level }

// Index returns the current level index.
func (s *Session) Index() int { return s.index }

// Levels returns the number of levels in the session.
func (s *Session) Levels() int { return len(s.levels) }

// Rule returns the active automaton rule.
func (s *Session) Rule() registry.Rule { return s.rule }

// Grid returns the current board. Callers must not modify it.
func (s *Session) Grid() *board.Grid { return s.grid }

// Generation returns the current generation.
func (s *Session) Generation() int { return s.generation }

// Running reports whether the automaton is advancing.
func (s *Session) Running() bool { return s.running }

// GuidesVisible reports the global guide visibility flag.
func (s *Session) GuidesVisible() bool { return s.cfg.Guides.Visible }

// Cursor returns the cursor cell.
func (s *Session) Cursor() pattern.Point { return s.cursor }

// Objects returns the placed objects in creation order.
func (s *Session) Objects() []*placed.Object { return s.objects.Objects() }

// Lines returns every stored guidance line, visible or not.
func (s *Session) Lines() []guide.Line { return s.lines.Lines() }

// Compositor returns the session's compositor.
func (s *Session) Compositor() *compositor.Compositor { return s.comp }

// Surface returns the surface frames are presented to.
func (s *Session) Surface() compositor.Surface { return s.surface }

// CellSize returns the surface pixels per board cell.
func (s *Session) CellSize() int { return s.cellSize }
