package compositor

import "fmt"

// Layer identifies one visual source of a frame.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerGridLines
	LayerGuides
	LayerCells
	LayerTarget
	LayerEditor
	LayerMarkers
	layerCount
)

var layerNames = [...]string{
	LayerBackground: "background",
	LayerGridLines:  "grid_lines",
	LayerGuides:     "guides",
	LayerCells:      "cells",
	LayerTarget:     "target",
	LayerEditor:     "editor",
	LayerMarkers:    "markers",
}

// String returns the layer name.
func (l Layer) String() string {
	if l < layerCount {
		return layerNames[l]
	}
	return "unknown"
}

// ParseLayer returns the layer with the given name.
func ParseLayer(name string) (Layer, bool) {
	for i, n := range layerNames {
		if n == name {
			return Layer(i), true
		}
	}
	return 0, false
}

// ParseOrder parses a list of layer names.
func ParseOrder(names []string) ([]Layer, error) {
	order := make([]Layer, 0, len(names))
	for _, n := range names {
		l, ok := ParseLayer(n)
		if !ok {
			return nil, fmt.Errorf("unknown layer %q", n)
		}
		order = append(order, l)
	}
	return order, nil
}

// DefaultOrder is the paint order, lowest priority first.
var DefaultOrder = []Layer{
	LayerBackground,
	LayerGridLines,
	LayerGuides,
	LayerCells,
	LayerTarget,
	LayerEditor,
	LayerMarkers,
}

// normalizeOrder drops unknown and repeated layers and moves LayerMarkers to
// the end. Markers are always painted, even when the order leaves them out.
func normalizeOrder(order []Layer) []Layer {
	if len(order) == 0 {
		order = DefaultOrder
	}
	seen := make(map[Layer]bool, layerCount)
	out := make([]Layer, 0, layerCount)
	for _, l := range order {
		if l >= layerCount || l == LayerMarkers || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return append(out, LayerMarkers)
}
