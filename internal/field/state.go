// Package field holds the mutable state of one mounted dot field.
package field

import (
	"math"

	"github.com/iburimskiy/dotgrid/internal/grid"
	"github.com/iburimskiy/dotgrid/internal/ripple"
)

// Device scale bounds for the backing buffer.
const (
	MinScale = 1.0
	MaxScale = 2.0
)

// State is owned by a single lifecycle instance and shared by pointer with
// its renderer and input adapter. Nothing else mutates it.
type State struct {
	// Logical surface size.
	Width, Height float64
	// Clamped device scale applied to the backing buffer.
	Scale float64
	// Backing buffer size in physical pixels.
	BackingWidth, BackingHeight int

	Layout  grid.Layout
	Points  []grid.Point
	Ripples *ripple.Store
}

// New returns an empty state whose ripples are stamped by clock.
func New(clock ripple.Clock) *State {
	return &State{
		Scale:   MinScale,
		Ripples: ripple.NewStore(clock),
	}
}

// ClampScale bounds a device pixel ratio to [MinScale, MaxScale]. NaN and
// non-positive values map to MinScale.
func ClampScale(dpr float64) float64 {
	if !(dpr > MinScale) {
		return MinScale
	}
	return math.Min(dpr, MaxScale)
}

// Resize records a new logical size and device ratio, recomputes the backing
// buffer and rebuilds the lattice.
func (s *State) Resize(w, h, dpr, spacing float64) {
	s.Width, s.Height = math.Max(w, 0), math.Max(h, 0)
	s.Scale = ClampScale(dpr)
	s.BackingWidth = int(math.Ceil(s.Width * s.Scale))
	s.BackingHeight = int(math.Ceil(s.Height * s.Scale))
	s.Layout = grid.Measure(s.Width, s.Height, spacing)
	s.Points = s.Layout.Points()
}
