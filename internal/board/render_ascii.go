package board

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/lifeguide/internal/pattern"
)

// Overlay carries the optional decorations for an ASCII preview.
type Overlay struct {
	Guides  map[pattern.Point]int // band index per guide pixel
	Target  []pattern.Point
	Markers []pattern.Point
}

// RenderOptions configures ASCII rendering behavior.
type RenderOptions struct {
	ShowCoords bool // Include coordinate axes in output
	LiveChar   rune // Character for live cells (default '#')
	EmptyChar  rune // Character for dead cells (default '.')
}

// DefaultRenderOptions returns sensible default rendering options.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		LiveChar:  '#',
		EmptyChar: '.',
	}
}

// RenderASCII converts the board and overlay to text, one row per line.
//
// Priority follows the compositor's layer order: markers over target over live
// cells over guides over empty cells. Guide bands render as '-' and '='; target
// cells render 'o' when matched and 'x' when missing; markers render '@'.
func RenderASCII(g *Grid, ov Overlay, opt RenderOptions) string {
	if opt.LiveChar == 0 {
		opt.LiveChar = '#'
	}
	if opt.EmptyChar == 0 {
		opt.EmptyChar = '.'
	}

	target := make(map[pattern.Point]bool, len(ov.Target))
	for _, p := range ov.Target {
		target[p] = true
	}
	markers := make(map[pattern.Point]bool, len(ov.Markers))
	for _, p := range ov.Markers {
		markers[p] = true
	}

	var sb strings.Builder

	if opt.ShowCoords {
		sb.WriteString("  ")
		for x := 0; x < g.Width(); x++ {
			sb.WriteString(fmt.Sprintf("%d", x%10))
		}
		sb.WriteString("\n")
	}

	for y := 0; y < g.Height(); y++ {
		if opt.ShowCoords {
			sb.WriteString(fmt.Sprintf("%2d", y%100))
		}
		for x := 0; x < g.Width(); x++ {
			p := pattern.P(x, y)
			alive := g.Alive(x, y)
			switch {
			case markers[p]:
				sb.WriteRune('@')
			case target[p] && alive:
				sb.WriteRune('o')
			case target[p]:
				sb.WriteRune('x')
			case alive:
				sb.WriteRune(opt.LiveChar)
			default:
				if band, ok := ov.Guides[p]; ok {
					if band == 0 {
						sb.WriteRune('-')
					} else {
						sb.WriteRune('=')
					}
					continue
				}
				sb.WriteRune(opt.EmptyChar)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderCompact returns a minimal representation without overlays or coords.
func RenderCompact(g *Grid) string {
	return strings.Join(GridToLines(g), "\n") + "\n"
}

// GridToLines converts the grid to a slice of strings (one per row).
// Useful for line-by-line comparisons in tests.
func GridToLines(g *Grid) []string {
	lines := make([]string, g.Height())
	for y := 0; y < g.Height(); y++ {
		var sb strings.Builder
		for x := 0; x < g.Width(); x++ {
			if g.Alive(x, y) {
				sb.WriteRune('#')
			} else {
				sb.WriteRune('.')
			}
		}
		lines[y] = sb.String()
	}
	return lines
}
