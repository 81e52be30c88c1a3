package render

import (
	"io"
	"time"

	"github.com/iburimskiy/dotgrid/internal/field"
	"github.com/iburimskiy/dotgrid/internal/logging"
)

// Snapshot renders state at time now into an offscreen raster of the
// state's backing size and writes it to w as PNG.
func Snapshot(w io.Writer, state *field.State, opts Options, now time.Duration) error {
	raster := NewRaster(state.BackingWidth, state.BackingHeight, state.Scale)
	defer raster.Close()

	New(state, raster, nil, opts).Draw(now)
	if err := raster.EncodePNG(w); err != nil {
		return err
	}
	logging.Logger().Info("snapshot rendered",
		"width", state.BackingWidth, "height", state.BackingHeight,
		"points", len(state.Points), "ripples", state.Ripples.Len())
	return nil
}
