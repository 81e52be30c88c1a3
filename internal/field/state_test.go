package field

import (
	"math"
	"testing"
	"time"
)

func TestClampScale(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 1},
		{-2, 1},
		{math.NaN(), 1},
		{1, 1},
		{1.5, 1.5},
		{2, 2},
		{3, 2},
		{math.Inf(1), 2},
	}
	for _, tt := range tests {
		if got := ClampScale(tt.in); got != tt.want {
			t.Errorf("ClampScale(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResize(t *testing.T) {
	s := New(func() time.Duration { return 0 })
	s.Resize(520, 520, 3, 26)

	if s.Scale != 2 {
		t.Errorf("Scale = %v, want 2", s.Scale)
	}
	if s.BackingWidth != 1040 || s.BackingHeight != 1040 {
		t.Errorf("backing = %dx%d, want 1040x1040", s.BackingWidth, s.BackingHeight)
	}
	if len(s.Points) != 400 {
		t.Errorf("len(Points) = %d, want 400", len(s.Points))
	}

	s.Resize(100.5, 10, 1.25, 26)
	if s.BackingWidth != 126 || s.BackingHeight != 13 {
		t.Errorf("backing = %dx%d, want 126x13", s.BackingWidth, s.BackingHeight)
	}
	if s.Layout.Cols != 4 || s.Layout.Rows != 1 {
		t.Errorf("layout = %dx%d, want 4x1", s.Layout.Cols, s.Layout.Rows)
	}
}

func TestResizeToNothing(t *testing.T) {
	s := New(func() time.Duration { return 0 })
	s.Resize(520, 520, 1, 26)
	s.Resize(0, -4, 1, 26)
	if len(s.Points) != 0 {
		t.Errorf("len(Points) = %d, want 0", len(s.Points))
	}
	if s.Width != 0 || s.Height != 0 || s.BackingWidth != 0 || s.BackingHeight != 0 {
		t.Errorf("size = %vx%v backing %dx%d", s.Width, s.Height, s.BackingWidth, s.BackingHeight)
	}
}
