package config

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Transparent is the background value that leaves the surface unfilled.
const Transparent = "transparent"

// RGBA is a non-premultiplied color.
type RGBA = color.NRGBA

// IsTransparent reports whether s names the transparent background. The
// empty string counts as transparent.
func IsTransparent(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, Transparent)
}

// ParseColor accepts #rgb, #rgba, #rrggbb, #rrggbbaa and SVG color names.
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	if IsTransparent(s) {
		return RGBA{}, nil
	}
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return RGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}

	digits := s[1:]
	switch len(digits) {
	case 3, 4:
		var b strings.Builder
		for _, r := range digits {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		digits = b.String()
	case 6, 8:
	default:
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c := RGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}
	if len(raw) == 4 {
		c.A = raw[3]
	}
	return c, nil
}
