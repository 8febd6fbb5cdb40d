package compositor

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colors of every layer.
type Palette struct {
	Background color.RGBA
	GridLine   color.RGBA
	Guide      [2]color.RGBA // alternating bands
	Live       color.RGBA
	TargetHit  color.RGBA
	TargetMiss color.RGBA
	Hover      color.RGBA // blended at half strength
	Boundary   color.RGBA
	Marker     color.RGBA
	MarkerText color.RGBA
}

// DefaultPalette returns the built-in dark palette.
func DefaultPalette() Palette {
	return Palette{
		Background: rgb(0x10, 0x12, 0x18),
		GridLine:   rgb(0x24, 0x28, 0x33),
		Guide:      [2]color.RGBA{rgb(0x2e, 0x5e, 0xaa), rgb(0x1b, 0x3a, 0x6b)},
		Live:       rgb(0xe8, 0xe8, 0xe8),
		TargetHit:  rgb(0x3c, 0xc8, 0x5a),
		TargetMiss: rgb(0xd2, 0x46, 0x46),
		Hover:      rgb(0xf0, 0xc8, 0x3c),
		Boundary:   rgb(0xb4, 0x78, 0xdc),
		Marker:     rgb(0xff, 0x8c, 0x00),
		MarkerText: rgb(0x00, 0x00, 0x00),
	}
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// ParseColor parses a "#rrggbb" color.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return rgb(r, g, b), nil
}

// PaletteFromHex overrides the default palette with named "#rrggbb" colors.
// Known names: background, grid_line, guide_0, guide_1, live, target_hit,
// target_miss, hover, boundary, marker, marker_text.
func PaletteFromHex(colors map[string]string) (Palette, error) {
	p := DefaultPalette()
	slots := map[string]*color.RGBA{
		"background":  &p.Background,
		"grid_line":   &p.GridLine,
		"guide_0":     &p.Guide[0],
		"guide_1":     &p.Guide[1],
		"live":        &p.Live,
		"target_hit":  &p.TargetHit,
		"target_miss": &p.TargetMiss,
		"hover":       &p.Hover,
		"boundary":    &p.Boundary,
		"marker":      &p.Marker,
		"marker_text": &p.MarkerText,
	}
	for name, hex := range colors {
		slot, ok := slots[name]
		if !ok {
			return p, fmt.Errorf("unknown palette color %q", name)
		}
		c, err := ParseColor(hex)
		if err != nil {
			return p, err
		}
		*slot = c
	}
	return p, nil
}
