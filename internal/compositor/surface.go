package compositor

import (
	"fmt"
	"image"
	"image/draw"
)

// Surface is where composed frames end up.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h int)
	// Present copies the given regions of img onto the surface.
	Present(img *image.RGBA, rects []image.Rectangle) error
}

// Resizer is implemented by surfaces the compositor can resize itself.
type Resizer interface {
	Resize(w, h int) error
}

// MemorySurface is an in-memory Surface. It keeps its own pixels, so regions
// that are not presented keep whatever was there before.
type MemorySurface struct {
	img      *image.RGBA
	presents int
	last     []image.Rectangle
}

// NewMemorySurface creates a blank surface of the given size.
func NewMemorySurface(w, h int) *MemorySurface {
	return &MemorySurface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Size returns the surface dimensions.
func (s *MemorySurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Present copies the regions of img onto the surface.
func (s *MemorySurface) Present(img *image.RGBA, rects []image.Rectangle) error {
	if img == nil {
		return fmt.Errorf("present: nil image")
	}
	s.presents++
	s.last = append(s.last[:0], rects...)
	for _, r := range rects {
		r = r.Intersect(s.img.Bounds()).Intersect(img.Bounds())
		if r.Empty() {
			continue
		}
		draw.Draw(s.img, r, img, r.Min, draw.Src)
	}
	return nil
}

// Resize replaces the surface with a blank one of the new size.
func (s *MemorySurface) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid dimensions: width=%d, height=%d (both must be > 0)", w, h)
	}
	if w0, h0 := s.Size(); w0 == w && h0 == h {
		return nil
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	return nil
}

// Image returns the surface pixels. The caller must not modify them.
func (s *MemorySurface) Image() *image.RGBA {
	return s.img
}

// Presents returns how many times Present was called.
func (s *MemorySurface) Presents() int {
	return s.presents
}

// LastRects returns the regions passed to the most recent Present.
func (s *MemorySurface) LastRects() []image.Rectangle {
	out := make([]image.Rectangle, len(s.last))
	copy(out, s.last)
	return out
}
