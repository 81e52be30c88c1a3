package config

import "errors"

var (
	// ErrUnsupportedFormat is returned for config files that are neither
	// YAML nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrInvalidColor is returned when a color value cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")
)
