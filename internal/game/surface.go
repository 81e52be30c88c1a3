package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/dotgrid/internal/render"
)

// layerSurface is the field's offscreen layer. It keeps its pixels between
// frames, so a static field survives the screen being cleared, and hands out
// a drawing context only while the host is inside Draw.
type layerSurface struct {
	img    *ebiten.Image
	w, h   int
	scale  float64
	dirty  bool
	active bool
}

func (s *layerSurface) Resize(width, height int, scale float64) {
	if width == s.w && height == s.h && scale == s.scale && s.img != nil {
		return
	}
	s.w, s.h, s.scale = width, height, scale
	s.dirty = true
}

// ensure (re)allocates the backing image after a resize. Called from Draw.
func (s *layerSurface) ensure() {
	if !s.dirty {
		return
	}
	s.dirty = false
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	if s.w > 0 && s.h > 0 {
		s.img = ebiten.NewImage(s.w, s.h)
	}
}

func (s *layerSurface) Context() render.Context {
	if !s.active || s.img == nil {
		return nil
	}
	return layerContext{img: s.img, scale: float32(s.scale)}
}

// size is the backing size, or fallback when nothing has been laid out yet.
func (s *layerSurface) size(fallbackW, fallbackH int) (int, int) {
	if s.w <= 0 || s.h <= 0 {
		return max(fallbackW, 1), max(fallbackH, 1)
	}
	return s.w, s.h
}

type layerContext struct {
	img   *ebiten.Image
	scale float32
}

func (c layerContext) Clear() { c.img.Clear() }

func (c layerContext) Fill(col color.Color) { c.img.Fill(col) }

func (c layerContext) FillCircle(x, y, r float64, col color.Color) {
	vector.DrawFilledCircle(c.img, float32(x)*c.scale, float32(y)*c.scale, float32(r)*c.scale, col, true)
}
