// Package grid computes the centered dot lattice for a surface.
package grid

import "math"

// Point is a lattice position in surface-local logical pixels.
type Point struct {
	X, Y float64
}

// Layout describes a built lattice.
type Layout struct {
	Cols, Rows       int
	OffsetX, OffsetY float64
	Spacing          float64
}

// Measure returns the lattice dimensions for a w×h surface. A surface with
// no area, or a non-positive spacing, yields a zero Layout.
func Measure(w, h, spacing float64) Layout {
	if w <= 0 || h <= 0 || !(spacing > 0) {
		return Layout{}
	}
	cols := int(math.Ceil(w / spacing))
	rows := int(math.Ceil(h / spacing))
	return Layout{
		Cols:    cols,
		Rows:    rows,
		OffsetX: (w - float64(cols-1)*spacing) / 2,
		OffsetY: (h - float64(rows-1)*spacing) / 2,
		Spacing: spacing,
	}
}

// Points expands the layout row by row.
func (l Layout) Points() []Point {
	if l.Cols <= 0 || l.Rows <= 0 {
		return nil
	}
	pts := make([]Point, 0, l.Cols*l.Rows)
	for r := 0; r < l.Rows; r++ {
		y := l.OffsetY + float64(r)*l.Spacing
		for c := 0; c < l.Cols; c++ {
			pts = append(pts, Point{X: l.OffsetX + float64(c)*l.Spacing, Y: y})
		}
	}
	return pts
}

// Build is Measure followed by Points.
func Build(w, h, spacing float64) []Point {
	return Measure(w, h, spacing).Points()
}
