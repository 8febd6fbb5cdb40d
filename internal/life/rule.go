// Package life implements outer-totalistic automaton rules in B/S notation.
// Importing it registers "life" (B3/S23) and "highlife" (B36/S23).
package life

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/lifeguide/internal/board"
	"github.com/vovakirdan/lifeguide/internal/registry"
)

func init() {
	registry.Register("life", func() registry.Rule {
		return MustParse("life", "Conway's Life", "B3/S23")
	})
	registry.Register("highlife", func() registry.Rule {
		return MustParse("highlife", "HighLife", "B36/S23")
	})
}

// Rule is a birth/survival rule on a bounded board. Cells beyond the edge
// count as dead.
type Rule struct {
	id      string
	title   string
	born    [9]bool
	survive [9]bool
}

// Parse builds a rule from B/S notation such as "B3/S23".
func Parse(id, title, notation string) (*Rule, error) {
	r := &Rule{id: id, title: title}

	parts := strings.Split(strings.ToUpper(strings.TrimSpace(notation)), "/")
	if len(parts) != 2 {
		return nil, fmt.Errorf("rule %q: expected B.../S..., got %q", id, notation)
	}
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("rule %q: empty section in %q", id, notation)
		}
		var target *[9]bool
		switch part[0] {
		case 'B':
			target = &r.born
		case 'S':
			target = &r.survive
		default:
			return nil, fmt.Errorf("rule %q: unknown section %q", id, part)
		}
		for _, ch := range part[1:] {
			n, err := strconv.Atoi(string(ch))
			if err != nil || n > 8 {
				return nil, fmt.Errorf("rule %q: bad neighbor count %q", id, ch)
			}
			target[n] = true
		}
	}
	return r, nil
}

// MustParse is Parse that panics on error.
func MustParse(id, title, notation string) *Rule {
	r, err := Parse(id, title, notation)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Rule) ID() string { return r.id }

// Title returns the display name with the rule notation.
func (r *Rule) Title() string {
	return fmt.Sprintf("%s %s", r.title, r.Notation())
}

// Notation returns the rule in B/S form.
func (r *Rule) Notation() string {
	var sb strings.Builder
	sb.WriteByte('B')
	for n, on := range r.born {
		if on {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	sb.WriteString("/S")
	for n, on := range r.survive {
		if on {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	return sb.String()
}

// Step returns the next generation.
func (r *Rule) Step(g *board.Grid) *board.Grid {
	next := board.NewEmptyGrid(g.Width(), g.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			n := neighbors(g, x, y)
			if g.Alive(x, y) {
				next.Set(x, y, r.survive[n])
			} else {
				next.Set(x, y, r.born[n])
			}
		}
	}
	return next
}

func neighbors(g *board.Grid, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && g.Alive(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}
