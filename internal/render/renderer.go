// Package render draws the dot field and drives its animation loop.
package render

import (
	"image/color"
	"math"
	"time"

	"github.com/iburimskiy/dotgrid/internal/config"
	"github.com/iburimskiy/dotgrid/internal/field"
	"github.com/iburimskiy/dotgrid/internal/influence"
	"github.com/iburimskiy/dotgrid/internal/logging"
	"github.com/iburimskiy/dotgrid/internal/schedule"
)

// Mode selects how the renderer schedules itself. It never changes after
// construction.
type Mode int

const (
	// Animated redraws on every frame until stopped.
	Animated Mode = iota
	// Static draws a single frame.
	Static
)

func (m Mode) String() string {
	switch m {
	case Animated:
		return "animated"
	case Static:
		return "static"
	default:
		return "unknown"
	}
}

// Options carries the per-session drawing parameters.
type Options struct {
	Mode      Mode
	Influence influence.Params
	Fade      time.Duration
	Palette   config.Palette
}

// OptionsFrom derives drawing options from a configuration.
func OptionsFrom(cfg config.Config, mode Mode) (Options, error) {
	pal, err := cfg.Palette()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Mode: mode,
		Influence: influence.Params{
			BaseRadius:  cfg.BaseRadius,
			Amplitude:   cfg.Amplitude,
			RippleSpeed: cfg.RippleSpeed,
			RippleWidth: cfg.RippleWidth,
		},
		Fade:    cfg.Fade(),
		Palette: pal,
	}, nil
}

// Renderer paints a field.State onto a Surface. It only reads the state.
type Renderer struct {
	state   *field.State
	surface Surface
	frames  schedule.FrameScheduler
	opts    Options

	pending schedule.Handle
	started bool
	stopped bool
	drawn   int
}

// New creates a renderer. Nothing is scheduled until Start.
func New(state *field.State, surface Surface, frames schedule.FrameScheduler, opts Options) *Renderer {
	return &Renderer{
		state:   state,
		surface: surface,
		frames:  frames,
		opts:    opts,
	}
}

// Mode reports the renderer's mode.
func (r *Renderer) Mode() Mode { return r.opts.Mode }

// Drawn counts completed draw passes.
func (r *Renderer) Drawn() int { return r.drawn }

// Start schedules the first frame. Calling it twice, or after Stop, does
// nothing.
func (r *Renderer) Start() {
	if r.started || r.stopped {
		return
	}
	r.started = true
	r.request()
}

// Stop cancels the pending frame. A stopped renderer never schedules again.
func (r *Renderer) Stop() {
	r.stopped = true
	if r.pending != 0 {
		r.frames.CancelFrame(r.pending)
		r.pending = 0
	}
}

// Invalidate asks a static renderer for one more frame, e.g. after the
// surface was resized and lost its pixels. Animated renderers redraw anyway.
func (r *Renderer) Invalidate() {
	if r.opts.Mode != Static || !r.started || r.stopped || r.pending != 0 {
		return
	}
	r.request()
}

func (r *Renderer) request() {
	r.pending = r.frames.RequestFrame(r.tick)
}

func (r *Renderer) tick(now time.Duration) {
	r.pending = 0
	if r.stopped {
		return
	}
	r.Draw(now)
	if r.opts.Mode == Animated && !r.stopped {
		r.request()
	}
}

// Draw runs one pass at time now. It reports false, without error, when the
// surface has no context.
func (r *Renderer) Draw(now time.Duration) bool {
	ctx := r.surface.Context()
	if ctx == nil {
		logging.Logger().Debug("draw skipped: no drawing context")
		return false
	}

	ctx.Clear()
	if bg := r.opts.Palette.Background; bg != nil {
		ctx.Fill(*bg)
	}

	live := r.state.Ripples.Live(now, r.opts.Fade)
	dot := r.opts.Palette.Dot
	for _, p := range r.state.Points {
		s := influence.Evaluate(p.X, p.Y, live, r.opts.Influence)
		ctx.FillCircle(p.X, p.Y, s.Radius, withOpacity(dot, s.Opacity))
	}
	r.drawn++
	return true
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * clamp01(opacity)))
	return c
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
