// Package level turns level and brush files into board values: the pattern
// library, the setup placements, the target overlay, the editable area and
// the detector markers.
package level

import (
	"errors"
	"strings"

	"github.com/vovakirdan/lifeguide/internal/board"
	"github.com/vovakirdan/lifeguide/internal/core"
	"github.com/vovakirdan/lifeguide/internal/level/formats"
	"github.com/vovakirdan/lifeguide/internal/pattern"
)

// DefaultRule is used when a level does not name one.
const DefaultRule = "life"

// Detector is a detector's cells and the value it currently shows.
type Detector struct {
	Label     string
	Positions []pattern.Point
	Value     int
}

// Level is a complete, validated level.
type Level struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Rule      string
	Patterns  *pattern.Library // base brushes merged with the level's own
	Setup     []pattern.Placement
	Target    []pattern.Point
	Editable  core.Rect // empty means the whole board
	Detectors []Detector
	Metadata  map[string]string
	FilePath  string
}

// InitialGrid stamps the setup placements onto an empty board.
func (l *Level) InitialGrid() *board.Grid {
	g := board.NewEmptyGrid(l.Width, l.Height)
	for _, pl := range l.Setup {
		p, ok := l.Patterns.Get(pl.Pattern)
		if !ok {
			continue
		}
		for _, c := range pl.Rotation.Apply(p).Cells {
			pt := pl.Anchor().Add(c.Point())
			g.Set(pt.X, pt.Y, true)
		}
	}
	return g
}

// EditArea returns the editable area, defaulting to the whole board.
func (l *Level) EditArea() core.Rect {
	if l.Editable.Empty() {
		return core.NewRect(0, 0, l.Width, l.Height)
	}
	return l.Editable
}

// CanEdit reports whether the player may change cell (x, y).
func (l *Level) CanEdit(x, y int) bool {
	return l.EditArea().Contains(x, y)
}

// Solved reports whether every target cell is alive on g.
// A level without a target is never solved.
func (l *Level) Solved(g *board.Grid) bool {
	if len(l.Target) == 0 {
		return false
	}
	for _, p := range l.Target {
		if !g.AlivePoint(p) {
			return false
		}
	}
	return true
}

// FromDocument converts a decoded document into a Level. Brushes named by the
// setup resolve against the level's own patterns first, then base. All
// problems are reported together; each is a *ValidationError.
func FromDocument(doc formats.Document, base *pattern.Library) (Level, error) {
	var errs []error

	lvl := Level{
		ID:       strings.TrimSpace(doc.ID),
		Name:     doc.Name,
		Width:    doc.Size.W,
		Height:   doc.Size.H,
		Rule:     doc.Rule,
		Metadata: doc.Metadata,
	}
	if lvl.ID == "" {
		errs = append(errs, invalid(CodeMissingID, "level has no id"))
	}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}
	if lvl.Rule == "" {
		lvl.Rule = DefaultRule
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		errs = append(errs, invalid(CodeBadSize, "size %dx%d must be positive", lvl.Width, lvl.Height))
	}
	area := core.NewRect(0, 0, lvl.Width, lvl.Height)

	own := pattern.NewLibrary()
	for _, pd := range doc.Patterns {
		p, err := PatternFromDoc(pd)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		own.Add(p)
	}
	lvl.Patterns = base.Merge(own)

	for i, sd := range doc.Setup {
		rot, ok := pattern.ParseRotation(sd.Rotation)
		if !ok {
			errs = append(errs, invalid(CodeBadRotation, "setup[%d]: rotation %d is not a multiple of 90", i, sd.Rotation))
			continue
		}
		if !lvl.Patterns.Has(sd.Pattern) {
			errs = append(errs, invalid(CodeUnknownPattern, "setup[%d]: unknown pattern %q", i, sd.Pattern))
			continue
		}
		if !area.Contains(sd.X, sd.Y) {
			errs = append(errs, invalid(CodeOutOfBounds, "setup[%d]: anchor (%d,%d) outside the board", i, sd.X, sd.Y))
			continue
		}
		lvl.Setup = append(lvl.Setup, pattern.Placement{X: sd.X, Y: sd.Y, Pattern: sd.Pattern, Rotation: rot})
	}

	if td := doc.Target; td != nil {
		anchor := pattern.P(td.X, td.Y)
		for _, c := range rowsToCells(td.Rows) {
			pt := anchor.Add(c.Point())
			if !area.Contains(pt.X, pt.Y) {
				errs = append(errs, invalid(CodeOutOfBounds, "target cell %v outside the board", pt))
				continue
			}
			lvl.Target = append(lvl.Target, pt)
		}
	}

	if ed := doc.Editable; ed != nil {
		r := core.NewRect(ed.X, ed.Y, ed.W, ed.H)
		if r.Empty() || r.Intersect(area) != r {
			errs = append(errs, invalid(CodeOutOfBounds, "editable area %+v must lie inside the board", *ed))
		} else {
			lvl.Editable = r
		}
	}

	for i, dd := range doc.Detectors {
		det := Detector{Label: dd.Label, Value: dd.Value}
		for _, c := range dd.Cells {
			if !area.Contains(c.X, c.Y) {
				errs = append(errs, invalid(CodeOutOfBounds, "detector[%d]: cell (%d,%d) outside the board", i, c.X, c.Y))
				continue
			}
			det.Positions = append(det.Positions, pattern.P(c.X, c.Y))
		}
		lvl.Detectors = append(lvl.Detectors, det)
	}

	if len(errs) > 0 {
		return Level{}, errors.Join(errs...)
	}
	return lvl, nil
}

// PatternFromDoc converts a brush document into a pattern.
func PatternFromDoc(pd formats.PatternDoc) (pattern.Pattern, error) {
	name := strings.TrimSpace(pd.Name)
	if name == "" {
		return pattern.Pattern{}, invalid(CodeBadPattern, "pattern has no name")
	}
	p := pattern.Pattern{Name: name, Cells: rowsToCells(pd.Rows)}
	if p.Empty() {
		return pattern.Pattern{}, invalid(CodeBadPattern, "pattern %q has no live cells", name)
	}

	for i, ld := range pd.Lines {
		dir, ok := pattern.ParseDirection(ld.Dir)
		if !ok {
			return pattern.Pattern{}, invalid(CodeBadLine, "pattern %q line %d: unknown direction %q", name, i, ld.Dir)
		}
		length, ok := pattern.ParseLength(string(ld.Length))
		if !ok {
			return pattern.Pattern{}, invalid(CodeBadLine, "pattern %q line %d: bad length %q", name, i, ld.Length)
		}
		if ld.Speed <= 0 {
			return pattern.Pattern{}, invalid(CodeBadLine, "pattern %q line %d: speed must be positive", name, i)
		}
		p.Lines = append(p.Lines, pattern.LineSpec{
			Dir:    dir,
			Start:  pattern.P(ld.Start.X, ld.Start.Y),
			Length: length,
			Speed:  ld.Speed,
		})
	}
	return p, nil
}

// LibraryFromFile converts a decoded brush library.
func LibraryFromFile(pf formats.PatternFile) (*pattern.Library, error) {
	lib := pattern.NewLibrary()
	var errs []error
	for _, pd := range pf.Patterns {
		p, err := PatternFromDoc(pd)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lib.Add(p)
	}
	return lib, errors.Join(errs...)
}

func rowsToCells(rows []string) []pattern.Offset {
	var cells []pattern.Offset
	for r, row := range rows {
		for c, ch := range row {
			switch ch {
			case '#', 'O', 'o', '*', '1':
				cells = append(cells, pattern.O(r, c))
			}
		}
	}
	return cells
}
