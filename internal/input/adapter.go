// Package input turns pointer, click and timer events into ripples.
package input

import (
	"math"
	"time"

	"github.com/iburimskiy/dotgrid/internal/field"
	"github.com/iburimskiy/dotgrid/internal/logging"
	"github.com/iburimskiy/dotgrid/internal/ripple"
)

// Pulse strengths per source.
const (
	MoveStrength  = 1.0
	ClickStrength = 1.6
	AutoStrength  = 0.9
)

const (
	// MinInterval is the minimum gap between accepted pulses weaker than
	// BypassStrength.
	MinInterval = 90 * time.Millisecond
	// BypassStrength and above always pass the rate limit.
	BypassStrength = 1.1
)

// Auto-pulse drift: each axis wanders sinusoidally around the center with
// its own angular speed (rad/s), phase and reach (fraction of the size).
const (
	driftSpeedX = 0.63
	driftSpeedY = 0.41
	driftPhaseY = 1.1
	driftReachX = 0.22
	driftReachY = 0.18
)

// Origin reports where the surface sits in global coordinates.
type Origin func() (x, y float64)

// Adapter feeds a field's ripple store. It runs on the host loop.
type Adapter struct {
	state  *field.State
	clock  ripple.Clock
	fade   time.Duration
	origin Origin

	last     time.Duration
	accepted bool
	onAccept func(ripple.Ripple)
}

// New returns an adapter writing into state. A nil origin means the surface
// sits at (0, 0).
func New(state *field.State, clock ripple.Clock, fade time.Duration, origin Origin) *Adapter {
	if origin == nil {
		origin = func() (float64, float64) { return 0, 0 }
	}
	return &Adapter{state: state, clock: clock, fade: fade, origin: origin}
}

// OnAccept registers fn to run after every accepted pulse.
func (a *Adapter) OnAccept(fn func(ripple.Ripple)) {
	a.onAccept = fn
}

// PointerMove handles a pointer move in global coordinates.
func (a *Adapter) PointerMove(gx, gy float64) bool {
	x, y := a.local(gx, gy)
	return a.Pulse(x, y, MoveStrength)
}

// Click handles a click in global coordinates.
func (a *Adapter) Click(gx, gy float64) bool {
	x, y := a.local(gx, gy)
	return a.Pulse(x, y, ClickStrength)
}

// AutoPulse spawns a synthetic pulse near the center of the surface.
func (a *Adapter) AutoPulse() bool {
	x, y := Drift(a.state.Width, a.state.Height, a.clock().Seconds())
	return a.Pulse(x, y, AutoStrength)
}

// Pulse inserts a ripple at surface-local (x, y) unless the rate limit
// rejects it, then prunes expired ripples.
func (a *Adapter) Pulse(x, y, strength float64) bool {
	now := a.clock()
	if strength < BypassStrength && a.accepted && now-a.last < MinInterval {
		logging.Logger().Debug("pulse rate limited", "strength", strength, "since", now-a.last)
		return false
	}

	r := a.state.Ripples.Add(x, y, strength)
	a.last = now
	a.accepted = true
	a.state.Ripples.PruneExpired(now, a.fade)

	if a.onAccept != nil {
		a.onAccept(r)
	}
	return true
}

func (a *Adapter) local(gx, gy float64) (float64, float64) {
	ox, oy := a.origin()
	return gx - ox, gy - oy
}

// Drift returns the auto-pulse position at t seconds for a w×h surface. The
// axes use different periods so the path wanders instead of oscillating on a
// line.
func Drift(w, h, t float64) (x, y float64) {
	x = w/2 + math.Sin(t*driftSpeedX)*w*driftReachX
	y = h/2 + math.Sin(t*driftSpeedY+driftPhaseY)*h*driftReachY
	return x, y
}
