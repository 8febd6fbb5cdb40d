package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// termCell is the compositor cell size used in the terminal. Two pixel rows
// share one terminal row through the upper half block, so a board cell is two
// columns wide and one row tall.
const termCell = 2

const halfBlock = "▀"

type pixelPair struct {
	top, bottom color.RGBA
}

// styleCache reuses lipgloss styles across frames.
type styleCache map[pixelPair]lipgloss.Style

func (c styleCache) style(p pixelPair) lipgloss.Style {
	if s, ok := c[p]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex(p.top))).
		Background(lipgloss.Color(hex(p.bottom)))
	c[p] = s
	return s
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RenderImage converts an RGBA frame to a styled string for display, one
// terminal row per two pixel rows. Runs of identical pixel pairs share one
// style to keep ANSI escapes down.
func RenderImage(img *image.RGBA, cache styleCache) string {
	if img == nil {
		return ""
	}
	if cache == nil {
		cache = make(styleCache)
	}
	b := img.Bounds()

	var sb strings.Builder
	sb.Grow(b.Dx() * b.Dy())

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteRune('\n')
		}

		x := b.Min.X
		for x < b.Max.X {
			start := pairAt(img, x, y)
			n := 0
			for x < b.Max.X && pairAt(img, x, y) == start {
				n++
				x++
			}
			sb.WriteString(cache.style(start).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

func pairAt(img *image.RGBA, x, y int) pixelPair {
	p := pixelPair{top: img.RGBAAt(x, y)}
	if y+1 < img.Bounds().Max.Y {
		p.bottom = img.RGBAAt(x, y+1)
	} else {
		p.bottom = p.top
	}
	return p
}
