package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/dotgrid/internal/chime"
	"github.com/iburimskiy/dotgrid/internal/config"
	"github.com/iburimskiy/dotgrid/internal/field"
	"github.com/iburimskiy/dotgrid/internal/game"
	"github.com/iburimskiy/dotgrid/internal/input"
	"github.com/iburimskiy/dotgrid/internal/lifecycle"
	"github.com/iburimskiy/dotgrid/internal/logging"
	"github.com/iburimskiy/dotgrid/internal/render"
	"github.com/iburimskiy/dotgrid/internal/ripple"
)

const (
	chimeSampleRate  = beep.SampleRate(44100)
	reducedMotionEnv = "DOTGRID_REDUCED_MOTION"
)

type flags struct {
	configPath    string
	reducedMotion bool
	snapshotPath  string
	snapshotAt    time.Duration
	scale         float64
	width, height int
	logLevel      string
	watch         bool
	hud           bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "YAML or JSON config file")
	flag.BoolVar(&f.reducedMotion, "reduced-motion", os.Getenv(reducedMotionEnv) == "1", "draw a single static frame")
	flag.StringVar(&f.snapshotPath, "snapshot", "", "render a PNG to this path and exit, without a window")
	flag.DurationVar(&f.snapshotAt, "snapshot-at", 0, "with -snapshot: age of a click ripple at the center (0 = none)")
	flag.Float64Var(&f.scale, "scale", 1, "with -snapshot: device pixel ratio")
	flag.IntVar(&f.width, "width", config.WindowWidth, "window or snapshot width")
	flag.IntVar(&f.height, "height", config.WindowHeight, "window or snapshot height")
	flag.StringVar(&f.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.BoolVar(&f.watch, "watch", false, "remount the field when the config file changes")
	flag.BoolVar(&f.hud, "hud", false, "show the status overlay")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(f.logLevel),
	})))

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fail(err)
	}

	if f.snapshotPath != "" {
		if err := writeSnapshot(f, cfg); err != nil {
			fail(err)
		}
		return
	}

	if err := runWindow(f, cfg); err != nil {
		_ = zenity.Error(err.Error(), zenity.Title("dotgrid"))
		fail(err)
	}
}

func fail(err error) {
	logging.Logger().Error("dotgrid failed", "err", err)
	os.Exit(1)
}

// writeSnapshot renders one frame offscreen.
func writeSnapshot(f flags, cfg config.Config) error {
	opts, err := render.OptionsFrom(cfg, render.Static)
	if err != nil {
		return err
	}
	state := field.New(func() time.Duration { return 0 })
	state.Resize(float64(f.width), float64(f.height), f.scale, cfg.Spacing)
	if f.snapshotAt > 0 {
		state.Ripples.Add(state.Width/2, state.Height/2, input.ClickStrength)
	}

	out, err := os.Create(f.snapshotPath)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := render.Snapshot(out, state, opts, f.snapshotAt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// app owns the mounted field and swaps it when the config changes.
type app struct {
	host  *game.Host
	cfg   config.Config
	inst  *lifecycle.Instance
	chime *chime.Chime
}

func (a *app) mount(cfg config.Config) error {
	var opts []lifecycle.Option
	if cfg.Chime {
		if err := a.ensureChime(); err != nil {
			logging.Logger().Warn("chime disabled", "err", err)
		} else {
			opts = append(opts, lifecycle.WithAcceptHook(a.ring))
		}
	}
	inst, err := lifecycle.Mount(a.host, cfg, opts...)
	if err != nil {
		return err
	}
	a.cfg, a.inst = cfg, inst
	a.host.SetFieldZ(cfg.ZIndex)
	return nil
}

// remount runs on the game loop.
func (a *app) remount(cfg config.Config) {
	prev := a.inst
	if prev != nil {
		prev.Close()
	}
	if err := a.mount(cfg); err != nil {
		logging.Logger().Warn("remount failed, restoring previous config", "err", err)
		if err := a.mount(a.cfg); err != nil {
			logging.Logger().Error("restore failed", "err", err)
		}
	}
}

func (a *app) ensureChime() error {
	if a.chime != nil {
		return nil
	}
	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	a.chime = chime.New(chimeSampleRate, speakerLock{})
	speaker.Play(a.chime.Streamer())
	return nil
}

func (a *app) ring(r ripple.Ripple) {
	if r.Strength >= input.ClickStrength {
		a.chime.Ring(r.Strength)
	}
}

func (a *app) status() game.Status {
	s := game.Status{Uptime: a.host.Now()}
	if a.inst != nil {
		st := a.inst.State()
		s.Mode = a.inst.Mode().String()
		s.Points = len(st.Points)
		s.Ripples = st.Ripples.Len()
	}
	return s
}

// snapshot asks for a destination and writes the current frame there.
func (a *app) snapshot() {
	if a.inst == nil {
		return
	}
	path, err := zenity.SelectFileSave(
		zenity.Title("Save snapshot"),
		zenity.Filename("dotgrid.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{Name: "PNG image", Patterns: []string{"*.png"}}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			logging.Logger().Warn("snapshot dialog failed", "err", err)
		}
		return
	}

	opts, err := render.OptionsFrom(a.cfg, render.Static)
	if err != nil {
		logging.Logger().Warn("snapshot failed", "err", err)
		return
	}
	out, err := os.Create(path)
	if err != nil {
		logging.Logger().Warn("snapshot failed", "err", err)
		return
	}
	defer out.Close()
	if err := render.Snapshot(out, a.inst.State(), opts, a.host.Now()); err != nil {
		logging.Logger().Warn("snapshot failed", "path", path, "err", err)
		return
	}
	logging.Logger().Info("snapshot saved", "path", path)
}

func runWindow(f flags, cfg config.Config) error {
	a := &app{}
	hostOpts := game.Options{
		ReducedMotion: f.reducedMotion,
		FieldZ:        cfg.ZIndex,
		OnSnapshot:    a.snapshot,
	}
	if f.hud {
		hostOpts.Overlay = a.status
	}
	a.host = game.NewHost(hostOpts)

	if err := a.mount(cfg); err != nil {
		return err
	}
	defer func() {
		if a.inst != nil {
			a.inst.Close()
		}
	}()

	if f.watch && f.configPath != "" {
		w, err := config.NewWatcher(f.configPath, func(next config.Config) {
			a.host.Post(func() { a.remount(next) })
		})
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
	}

	ebiten.SetWindowSize(f.width, f.height)
	ebiten.SetWindowTitle("dotgrid - click to pulse, S: snapshot, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a.host); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }
