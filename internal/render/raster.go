package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/dotgrid/internal/logging"
)

// Raster is an offscreen Surface backed by a software gg context. It is
// used for headless snapshots.
type Raster struct {
	dc    *gg.Context
	scale float64
}

// NewRaster allocates a width×height buffer at the given device scale.
func NewRaster(width, height int, scale float64) *Raster {
	r := &Raster{}
	r.Resize(width, height, scale)
	return r
}

// Resize replaces the backing buffer. Previous pixels are discarded.
func (r *Raster) Resize(width, height int, scale float64) {
	if r.dc != nil {
		_ = r.dc.Close()
		r.dc = nil
	}
	r.scale = scale
	if width <= 0 || height <= 0 {
		return
	}
	r.dc = gg.NewContext(width, height)
	r.dc.Scale(scale, scale)
}

// Context implements Surface.
func (r *Raster) Context() Context {
	if r.dc == nil {
		return nil
	}
	return rasterContext{dc: r.dc}
}

// Image returns the current pixels, or nil for an empty buffer.
func (r *Raster) Image() image.Image {
	if r.dc == nil {
		return nil
	}
	return r.dc.Image()
}

// EncodePNG writes the current pixels as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if r.dc == nil {
		return errors.New("encode snapshot: empty surface")
	}
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Close releases the buffer.
func (r *Raster) Close() error {
	if r.dc == nil {
		return nil
	}
	err := r.dc.Close()
	r.dc = nil
	return err
}

type rasterContext struct {
	dc *gg.Context
}

func (c rasterContext) Clear() { c.dc.Clear() }

func (c rasterContext) Fill(col color.Color) {
	c.dc.ClearWithColor(gg.FromColor(col))
}

func (c rasterContext) FillCircle(x, y, radius float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(x, y, radius)
	if err := c.dc.Fill(); err != nil {
		logging.Logger().Debug("raster fill failed", "err", err)
	}
}
