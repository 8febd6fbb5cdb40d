package compositor

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/lifeguide/internal/board"
)

// minGlyphCell is the smallest cell, in pixels, that gets a marker value.
const minGlyphCell = 6

var halfAlpha = image.NewUniform(color.Alpha{A: 0x80})

// painter draws single cells. Every pixel of a cell is decided by the cell's
// signature and size alone, so repainting any subset of cells gives the same
// result as repainting all of them.
type painter struct {
	pal       Palette
	order     []Layer
	gridLines bool
	faces     map[int]font.Face
	mono      *opentype.Font
}

func newPainter(pal Palette, order []Layer, gridLines bool) *painter {
	p := &painter{
		pal:       pal,
		order:     normalizeOrder(order),
		gridLines: gridLines,
		faces:     make(map[int]font.Face),
	}
	if f, err := opentype.Parse(gomono.TTF); err == nil {
		p.mono = f
	}
	return p
}

// cellRect returns the pixel rectangle of cell (x, y).
func cellRect(x, y, cell int) image.Rectangle {
	return image.Rect(x*cell, y*cell, (x+1)*cell, (y+1)*cell)
}

// cellSize fits a gw x gh board into a w x h surface.
func cellSize(w, h, gw, gh int) int {
	if gw <= 0 || gh <= 0 {
		return 1
	}
	size := w / gw
	if s := h / gh; s < size {
		size = s
	}
	if size < 1 {
		size = 1
	}
	return size
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// paintCell paints every layer of one cell in order.
func (p *painter) paintCell(img *image.RGBA, x, y, cell int, s cellSig) {
	r := cellRect(x, y, cell)
	if !r.In(img.Bounds()) {
		r = r.Intersect(img.Bounds())
		if r.Empty() {
			return
		}
	}
	inner := r
	if p.gridLines && cell >= 3 {
		inner.Min = inner.Min.Add(image.Pt(1, 1))
	}

	for _, layer := range p.order {
		switch layer {
		case LayerBackground:
			fill(img, r, p.pal.Background)
		case LayerGridLines:
			if p.gridLines && cell >= 3 {
				fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), p.pal.GridLine)
				fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), p.pal.GridLine)
			}
		case LayerGuides:
			if s.guide >= 0 {
				fill(img, inner, p.pal.Guide[s.guide&1])
			}
		case LayerCells:
			if s.alive {
				fill(img, inner, p.pal.Live)
			}
		case LayerTarget:
			switch s.target {
			case targetHit:
				p.ring(img, inner, cell, p.pal.TargetHit)
			case targetMiss:
				p.ring(img, inner, cell, p.pal.TargetMiss)
			}
		case LayerEditor:
			if s.hover {
				draw.DrawMask(img, inner, image.NewUniform(p.pal.Hover), image.Point{}, halfAlpha, image.Point{}, draw.Over)
			}
			if s.boundary != 0 {
				p.edges(img, r, s.boundary)
			}
		case LayerMarkers:
			if s.marker {
				fill(img, inner, p.pal.Marker)
				p.glyph(img, inner, cell, s.value)
			}
		}
	}
}

// ring outlines r; small cells are filled instead.
func (p *painter) ring(img *image.RGBA, r image.Rectangle, cell int, c color.RGBA) {
	t := cell / 6
	if t < 1 {
		t = 1
	}
	if r.Dx() <= 2*t || r.Dy() <= 2*t {
		fill(img, r, c)
		return
	}
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// edges draws the editable-area boundary on the given sides of r.
func (p *painter) edges(img *image.RGBA, r image.Rectangle, sides uint8) {
	c := p.pal.Boundary
	if sides&edgeTop != 0 {
		fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	}
	if sides&edgeBottom != 0 {
		fill(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	}
	if sides&edgeLeft != 0 {
		fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	}
	if sides&edgeRight != 0 {
		fill(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
	}
}

// face returns a monospace face sized for the cell, cached per size.
func (p *painter) face(cell int) font.Face {
	if f, ok := p.faces[cell]; ok {
		return f
	}
	if p.mono == nil {
		return nil
	}
	f, err := opentype.NewFace(p.mono, &opentype.FaceOptions{
		Size:    float64(cell) * 0.7,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		f = nil
	}
	p.faces[cell] = f
	return f
}

// glyph writes the marker value centered in r, clipped to it.
func (p *painter) glyph(img *image.RGBA, r image.Rectangle, cell, value int) {
	if cell < minGlyphCell {
		return
	}
	face := p.face(cell)
	if face == nil {
		return
	}
	dst, ok := img.SubImage(r).(*image.RGBA)
	if !ok {
		return
	}

	text := strconv.Itoa(value)
	width := font.MeasureString(face, text).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	cx, cy := r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(p.pal.MarkerText),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(cx - width/2),
			Y: fixed.I(cy + ascent/2 - 1),
		},
	}
	d.DrawString(text)
}

// paintLiveOnly is the fallback drawing: background and live cells, nothing else.
func paintLiveOnly(img *image.RGBA, grid *board.Grid, cell int, pal Palette) {
	fill(img, img.Bounds(), pal.Background)
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if grid.Alive(x, y) {
				fill(img, cellRect(x, y, cell), pal.Live)
			}
		}
	}
}
