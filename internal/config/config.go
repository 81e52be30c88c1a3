// Package config holds the dot-grid tunables and loads them from disk.
package config

import "time"

// Window defaults for the desktop host.
const (
	WindowWidth  = 1024
	WindowHeight = 512
)

// Config is fixed for the lifetime of a mounted field. Numeric values are not
// validated: a non-positive spacing yields an empty grid and a non-positive
// fade leaves no live ripples, but anything else outside sane ranges is
// undefined.
type Config struct {
	// Lattice pitch in logical pixels.
	Spacing float64 `yaml:"spacing" json:"spacing"`
	// Resting dot radius.
	BaseRadius float64 `yaml:"baseRadius" json:"baseRadius"`
	// Extra radius at full influence.
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
	// Ring expansion rate in px/s.
	RippleSpeed float64 `yaml:"rippleSpeed" json:"rippleSpeed"`
	// Gaussian ring thickness (sigma) in px.
	RippleWidth float64 `yaml:"rippleWidth" json:"rippleWidth"`
	// Ripple lifetime.
	FadeSeconds float64 `yaml:"fadeSeconds" json:"fadeSeconds"`

	Color      string `yaml:"color" json:"color"`
	Background string `yaml:"background" json:"background"`

	Auto        bool `yaml:"auto" json:"auto"`
	AutoEveryMs int  `yaml:"autoEveryMs" json:"autoEveryMs"`

	// Stacking order of the field layer against the host's overlay.
	ZIndex int `yaml:"zIndex" json:"zIndex"`

	// Chime plays a short tone for each click ripple.
	Chime bool `yaml:"chime" json:"chime"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Spacing:     26,
		BaseRadius:  1,
		Amplitude:   2.4,
		RippleSpeed: 240,
		RippleWidth: 18,
		FadeSeconds: 1.6,
		Color:       "#9aa4b2",
		Background:  Transparent,
		Auto:        true,
		AutoEveryMs: 2400,
		ZIndex:      0,
	}
}

// Fade is FadeSeconds as a duration.
func (c Config) Fade() time.Duration {
	return time.Duration(c.FadeSeconds * float64(time.Second))
}

// AutoEvery is AutoEveryMs as a duration.
func (c Config) AutoEvery() time.Duration {
	return time.Duration(c.AutoEveryMs) * time.Millisecond
}

// Palette is the parsed color pair.
type Palette struct {
	Dot RGBA
	// Background is nil when the surface stays transparent.
	Background *RGBA
}

// Palette parses Color and Background.
func (c Config) Palette() (Palette, error) {
	dot, err := ParseColor(c.Color)
	if err != nil {
		return Palette{}, err
	}
	p := Palette{Dot: dot}
	if !IsTransparent(c.Background) {
		bg, err := ParseColor(c.Background)
		if err != nil {
			return Palette{}, err
		}
		p.Background = &bg
	}
	return p, nil
}
