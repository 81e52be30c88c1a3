package ripple

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct{ now time.Duration }

func (c *fakeClock) Now() time.Duration { return c.now }

func TestAddStampsClock(t *testing.T) {
	clk := &fakeClock{now: 3 * time.Second}
	s := NewStore(clk.Now)
	r := s.Add(10, 20, 1.6)
	if r.Spawn != 3*time.Second || r.X != 10 || r.Y != 20 || r.Strength != 1.6 {
		t.Errorf("Add() = %+v", r)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestPruneRemovesAtOrBeforeCutoff(t *testing.T) {
	clk := &fakeClock{}
	s := NewStore(clk.Now)
	// out of order on purpose
	for _, at := range []time.Duration{500, 100, 300, 200, 400} {
		clk.now = at * time.Millisecond
		s.Add(0, 0, 1)
	}

	cutoff := 300 * time.Millisecond
	if removed := s.Prune(cutoff); removed != 3 {
		t.Errorf("Prune() removed %d, want 3", removed)
	}
	for _, r := range s.Ripples() {
		if r.Spawn <= cutoff {
			t.Errorf("ripple spawned at %v survived cutoff %v", r.Spawn, cutoff)
		}
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestPruneExpiredKeepsGraceWindow(t *testing.T) {
	clk := &fakeClock{}
	s := NewStore(clk.Now)
	fade := time.Second
	s.Add(0, 0, 1)

	// 1.1s old: past fade but inside the 20% grace.
	if n := s.PruneExpired(1100*time.Millisecond, fade); n != 0 {
		t.Errorf("pruned %d inside grace window", n)
	}
	if n := s.PruneExpired(1200*time.Millisecond, fade); n != 1 {
		t.Errorf("pruned %d at grace boundary, want 1", n)
	}
}

func TestLiveIsNonMutating(t *testing.T) {
	clk := &fakeClock{}
	s := NewStore(clk.Now)
	s.Add(1, 1, 1)
	clk.now = 5 * time.Second
	s.Add(2, 2, 1)

	live := s.Live(5*time.Second, time.Second)
	if len(live) != 1 || live[0].X != 2 {
		t.Fatalf("Live() = %+v, want only the recent ripple", live)
	}
	if s.Len() != 2 {
		t.Errorf("Live() mutated the store: Len() = %d", s.Len())
	}
}

func TestLiveWeightDecays(t *testing.T) {
	clk := &fakeClock{}
	s := NewStore(clk.Now)
	s.Add(0, 0, 2)
	fade := 1600 * time.Millisecond

	live := s.Live(800*time.Millisecond, fade)
	if len(live) != 1 {
		t.Fatalf("len(Live()) = %d, want 1", len(live))
	}
	want := math.Exp(-0.8/1.6) * 2
	if math.Abs(live[0].Weight-want) > 1e-12 {
		t.Errorf("Weight = %v, want %v", live[0].Weight, want)
	}
	if math.Abs(live[0].Age-0.8) > 1e-12 {
		t.Errorf("Age = %v, want 0.8", live[0].Age)
	}
}

func TestLiveBoundaryInclusive(t *testing.T) {
	clk := &fakeClock{}
	s := NewStore(clk.Now)
	s.Add(0, 0, 1)
	fade := time.Second
	if n := len(s.Live(fade, fade)); n != 1 {
		t.Errorf("ripple aged exactly fade: live = %d, want 1", n)
	}
	if n := len(s.Live(fade+time.Nanosecond, fade)); n != 0 {
		t.Errorf("ripple older than fade: live = %d, want 0", n)
	}
}

func TestLiveFutureSpawnCountsAsFresh(t *testing.T) {
	clk := &fakeClock{now: 2 * time.Second}
	s := NewStore(clk.Now)
	s.Add(0, 0, 1)

	live := s.Live(time.Second, time.Second)
	if len(live) != 1 {
		t.Fatalf("len(Live()) = %d, want 1", len(live))
	}
	if live[0].Age != 0 || live[0].Weight != 1 {
		t.Errorf("future ripple = %+v, want age 0 weight 1", live[0])
	}
}

func TestStrongerRippleNeverWeighsLess(t *testing.T) {
	clk := &fakeClock{}
	weak := NewStore(clk.Now)
	strong := NewStore(clk.Now)
	weak.Add(0, 0, 1)
	strong.Add(0, 0, 1.6)
	fade := 1600 * time.Millisecond

	for at := time.Duration(0); at <= fade; at += 50 * time.Millisecond {
		w := weak.Live(at, fade)
		st := strong.Live(at, fade)
		if len(w) != 1 || len(st) != 1 {
			t.Fatalf("at %v: live counts %d/%d", at, len(w), len(st))
		}
		if st[0].Weight < w[0].Weight {
			t.Errorf("at %v: strong weight %v < weak %v", at, st[0].Weight, w[0].Weight)
		}
	}
}
