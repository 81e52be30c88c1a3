// Package game hosts a dot field in an ebiten window.
//
// The ebiten loop is the single execution context: Layout reports resizes,
// Update polls input and fires interval timers, Draw runs frame callbacks
// and composites the layers. Work from other goroutines enters through Post.
package game

import (
	"image"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/dotgrid/internal/lifecycle"
	"github.com/iburimskiy/dotgrid/internal/logging"
	"github.com/iburimskiy/dotgrid/internal/render"
	"github.com/iburimskiy/dotgrid/internal/schedule"
)

// OverlayZ is the stacking order of the status overlay.
const OverlayZ = 1

const postQueueSize = 16

// Options configures a Host.
type Options struct {
	// ReducedMotion is the motion preference reported to mounts.
	ReducedMotion bool
	// FieldZ orders the field layer against the overlay.
	FieldZ int
	// Overlay, when set, supplies the status text drawn on top of (or
	// under) the field.
	Overlay func() Status
	// OnSnapshot runs when the snapshot key is pressed.
	OnSnapshot func()
}

// Host implements ebiten.Game and lifecycle.Host.
type Host struct {
	start   time.Time
	queue   *schedule.Queue
	surface *layerSurface
	opts    Options

	resize lifecycle.Listeners[func(w, h, dpr float64)]
	move   lifecycle.Listeners[func(x, y float64)]
	click  lifecycle.Listeners[func(x, y float64)]

	// last layout seen, in logical pixels
	outW, outH int
	dpr        float64

	cursor      image.Point
	cursorKnown bool

	posted chan func()
}

// NewHost creates a host. Call ebiten.RunGame with it.
func NewHost(opts Options) *Host {
	return &Host{
		start:   time.Now(),
		queue:   schedule.NewQueue(),
		surface: &layerSurface{},
		opts:    opts,
		posted:  make(chan func(), postQueueSize),
	}
}

var _ lifecycle.Host = (*Host)(nil)
var _ ebiten.Game = (*Host)(nil)

func (h *Host) Surface() render.Surface         { return h.surface }
func (h *Host) Frames() schedule.FrameScheduler { return h.queue }
func (h *Host) Timers() schedule.IntervalTimer  { return h.queue }
func (h *Host) Now() time.Duration              { return time.Since(h.start) }
func (h *Host) ReducedMotion() bool             { return h.opts.ReducedMotion }
func (h *Host) Origin() (float64, float64)      { return 0, 0 }
func (h *Host) SetFieldZ(z int)                 { h.opts.FieldZ = z }

// OnResize registers fn and, if the window has been laid out already,
// reports the current size to it right away.
func (h *Host) OnResize(fn func(w, h, dpr float64)) func() {
	detach := h.resize.Add(fn)
	if h.outW > 0 && h.outH > 0 {
		fn(float64(h.outW), float64(h.outH), h.dpr)
	}
	return detach
}

func (h *Host) OnPointerMove(fn func(x, y float64)) func() { return h.move.Add(fn) }
func (h *Host) OnClick(fn func(x, y float64)) func()       { return h.click.Add(fn) }

// Post queues fn to run on the game loop. It is safe to call from any
// goroutine; it blocks only when the queue is full.
func (h *Host) Post(fn func()) {
	h.posted <- fn
}

func (h *Host) drainPosted() {
	for {
		select {
		case fn := <-h.posted:
			fn()
		default:
			return
		}
	}
}

// Layout reports logical size changes to resize listeners and returns the
// field's backing size as the screen size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := ebiten.Monitor().DeviceScaleFactor()
	if outsideWidth != h.outW || outsideHeight != h.outH || dpr != h.dpr {
		h.outW, h.outH, h.dpr = outsideWidth, outsideHeight, dpr
		logging.Logger().Debug("window layout", "width", outsideWidth, "height", outsideHeight, "dpr", dpr)
		h.resize.Each(func(fn func(w, h, dpr float64)) {
			fn(float64(outsideWidth), float64(outsideHeight), dpr)
		})
	}
	return h.surface.size(outsideWidth, outsideHeight)
}

// toLogical converts a screen position (backing pixels) to logical pixels.
func (h *Host) toLogical(p image.Point) (float64, float64) {
	s := h.surface.scale
	if s <= 0 {
		s = 1
	}
	return float64(p.X) / s, float64(p.Y) / s
}

func (h *Host) Update() error {
	h.drainPosted()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && h.opts.OnSnapshot != nil {
		h.opts.OnSnapshot()
	}

	cx, cy := ebiten.CursorPosition()
	cur := image.Pt(cx, cy)
	// the first reading is a position, not a movement
	if h.cursorKnown && cur != h.cursor {
		x, y := h.toLogical(cur)
		h.move.Each(func(fn func(x, y float64)) { fn(x, y) })
	}
	h.cursor, h.cursorKnown = cur, true

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := h.toLogical(cur)
		h.click.Each(func(fn func(x, y float64)) { fn(x, y) })
	}
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		tx, ty := ebiten.TouchPosition(ids[0])
		x, y := h.toLogical(image.Pt(tx, ty))
		h.click.Each(func(fn func(x, y float64)) { fn(x, y) })
	}

	h.queue.RunTimers(h.Now())
	return nil
}

type layer struct {
	z    int
	draw func(screen *ebiten.Image)
}

func (h *Host) Draw(screen *ebiten.Image) {
	h.surface.ensure()
	h.surface.active = true
	h.queue.RunFrames(h.Now())
	h.surface.active = false

	layers := []layer{{z: h.opts.FieldZ, draw: h.drawField}}
	if h.opts.Overlay != nil {
		layers = append(layers, layer{z: OverlayZ, draw: h.drawOverlay})
	}
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].z < layers[j].z })
	for _, l := range layers {
		l.draw(screen)
	}
}

func (h *Host) drawField(screen *ebiten.Image) {
	if h.surface.img == nil {
		return
	}
	screen.DrawImage(h.surface.img, nil)
}

func (h *Host) drawOverlay(screen *ebiten.Image) {
	scale := h.surface.scale
	if scale <= 0 {
		scale = 1
	}
	ebitenutil.DebugPrintAt(screen, h.opts.Overlay().String(), int(12*scale), int(12*scale))
}
