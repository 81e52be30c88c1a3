package render

import "image/color"

// Context is the raster operations a draw pass needs. Coordinates are
// logical pixels; the surface applies its device scale.
type Context interface {
	// Clear resets every pixel to transparent.
	Clear()
	// Fill paints every pixel with c.
	Fill(c color.Color)
	// FillCircle paints a filled disc.
	FillCircle(x, y, r float64, c color.Color)
}

// Surface is a resizable drawing target.
type Surface interface {
	// Context returns nil when nothing can be drawn right now.
	Context() Context
	// Resize sets the backing buffer in physical pixels and the scale from
	// logical to physical coordinates.
	Resize(width, height int, scale float64)
}
