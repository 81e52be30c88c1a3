// Package influence maps live ripples onto a dot's rendered size and opacity.
//
// Each ripple is a ring expanding at a constant speed. A point's response to
// a ring is a Gaussian of its distance from the ring, scaled by the ripple's
// decayed weight. Responses add up for size and take the maximum for
// brightness.
package influence

import (
	"math"

	"github.com/iburimskiy/dotgrid/internal/ripple"
)

const (
	// MinRadius is the smallest disc ever drawn.
	MinRadius = 0.35
	// FloorOpacity keeps idle dots visible.
	FloorOpacity = 0.3
)

// Params are the configuration values the model reads.
type Params struct {
	BaseRadius  float64
	Amplitude   float64
	RippleSpeed float64 // px/s
	RippleWidth float64 // sigma of the ring cross-section
}

// Sample is the influence on a single point for one frame.
type Sample struct {
	Bump    float64
	Alpha   float64
	Radius  float64
	Opacity float64
}

// Ring returns the response of a point at distance d from a ripple origin
// whose ring has radius r.
func Ring(d, r, sigma, weight float64) float64 {
	delta := d - r
	return math.Exp(-(delta*delta)/(2*sigma*sigma)) * weight
}

// Evaluate computes the sample for the point (x, y).
func Evaluate(x, y float64, live []ripple.Live, p Params) Sample {
	var bump, alpha float64
	for _, lr := range live {
		d := math.Hypot(x-lr.X, y-lr.Y)
		g := Ring(d, lr.Age*p.RippleSpeed, p.RippleWidth, lr.Weight)
		bump += g
		if g > alpha {
			alpha = g
		}
	}
	return Sample{
		Bump:    bump,
		Alpha:   alpha,
		Radius:  math.Max(MinRadius, p.BaseRadius+p.Amplitude*math.Min(1, bump)),
		Opacity: FloorOpacity + (1-FloorOpacity)*clamp01(alpha),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
