// Package lifecycle mounts a dot field onto a host and tears it down.
//
// A mount wires the host's resize, pointer and click events into a fresh
// field.State, picks the render mode from the host's reduced-motion
// preference (asked once), starts the renderer and, when configured, the
// auto-pulse timer. Every acquisition is registered on a Scope so Close
// releases all of it.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/iburimskiy/dotgrid/internal/config"
	"github.com/iburimskiy/dotgrid/internal/field"
	"github.com/iburimskiy/dotgrid/internal/input"
	"github.com/iburimskiy/dotgrid/internal/logging"
	"github.com/iburimskiy/dotgrid/internal/render"
	"github.com/iburimskiy/dotgrid/internal/ripple"
	"github.com/iburimskiy/dotgrid/internal/schedule"
)

// Host supplies the environment a field runs in. All callbacks must arrive
// on one goroutine.
type Host interface {
	Surface() render.Surface
	Frames() schedule.FrameScheduler
	Timers() schedule.IntervalTimer
	// Now is the monotonic clock shared by ripples and frames.
	Now() time.Duration
	// ReducedMotion is the environment's motion preference.
	ReducedMotion() bool
	// Origin is the surface's top-left corner in global coordinates.
	Origin() (x, y float64)

	// The On* methods register a listener and return its detach function.
	// OnResize receives the logical size and the raw device pixel ratio.
	OnResize(fn func(w, h, dpr float64)) (detach func())
	OnPointerMove(fn func(x, y float64)) (detach func())
	OnClick(fn func(x, y float64)) (detach func())
}

// Option customizes a mount.
type Option func(*options)

type options struct {
	onAccept func(ripple.Ripple)
}

// WithAcceptHook runs fn after every ripple the input adapter accepts.
func WithAcceptHook(fn func(ripple.Ripple)) Option {
	return func(o *options) { o.onAccept = fn }
}

// Instance is a mounted field.
type Instance struct {
	scope    *Scope
	state    *field.State
	renderer *render.Renderer
	input    *input.Adapter
	mode     render.Mode
}

// Mount attaches a field configured by cfg to host.
func Mount(host Host, cfg config.Config, opts ...Option) (inst *Instance, err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	mode := render.Animated
	if host.ReducedMotion() {
		mode = render.Static
	}
	ropts, err := render.OptionsFrom(cfg, mode)
	if err != nil {
		return nil, fmt.Errorf("mount field: %w", err)
	}

	scope := &Scope{}
	defer func() {
		if err != nil {
			scope.Close()
		}
	}()

	log := logging.Logger()
	state := field.New(host.Now)
	surface := host.Surface()
	renderer := render.New(state, surface, host.Frames(), ropts)
	adapter := input.New(state, host.Now, cfg.Fade(), host.Origin)
	if o.onAccept != nil {
		adapter.OnAccept(o.onAccept)
	}

	scope.Defer(host.OnResize(func(w, h, dpr float64) {
		state.Resize(w, h, dpr, cfg.Spacing)
		surface.Resize(state.BackingWidth, state.BackingHeight, state.Scale)
		renderer.Invalidate()
		log.Debug("field resized",
			"width", state.Width, "height", state.Height, "scale", state.Scale,
			"cols", state.Layout.Cols, "rows", state.Layout.Rows)
	}))
	scope.Defer(host.OnPointerMove(func(x, y float64) { adapter.PointerMove(x, y) }))
	scope.Defer(host.OnClick(func(x, y float64) { adapter.Click(x, y) }))

	if cfg.Auto {
		if every := cfg.AutoEvery(); every > 0 {
			timers := host.Timers()
			h := timers.SetInterval(every, func() { adapter.AutoPulse() })
			scope.Defer(func() { timers.ClearInterval(h) })
		} else {
			log.Warn("auto pulse disabled: non-positive interval", "autoEveryMs", cfg.AutoEveryMs)
		}
	}

	renderer.Start()
	scope.Defer(renderer.Stop)

	log.Info("field mounted", "mode", mode, "auto", cfg.Auto, "spacing", cfg.Spacing)
	return &Instance{
		scope:    scope,
		state:    state,
		renderer: renderer,
		input:    adapter,
		mode:     mode,
	}, nil
}

// Mode is the render mode chosen at mount.
func (i *Instance) Mode() render.Mode { return i.mode }

// State exposes the field for read-only use (snapshots, diagnostics).
func (i *Instance) State() *field.State { return i.state }

// Renderer exposes the instance's renderer.
func (i *Instance) Renderer() *render.Renderer { return i.renderer }

// Input exposes the instance's input adapter.
func (i *Instance) Input() *input.Adapter { return i.input }

// Close stops the renderer, the auto-pulse timer and every listener. It is
// safe to call more than once.
func (i *Instance) Close() {
	if i.scope.Closed() {
		return
	}
	i.scope.Close()
	logging.Logger().Info("field unmounted", "ripples", i.state.Ripples.Len())
}
