// Package ripple stores the decaying pulses that disturb the dot grid.
package ripple

import (
	"math"
	"time"
)

// GraceFactor stretches the fade window when pruning so the exponential tail
// is not cut off while still visible.
const GraceFactor = 1.2

// Ripple is a single pulse. Strength is expected to be positive; the store
// does not check it.
type Ripple struct {
	X, Y     float64
	Spawn    time.Duration
	Strength float64
}

// Live is a ripple inside its fade window, annotated for the influence model.
type Live struct {
	X, Y float64
	// Age since spawn in seconds, never negative.
	Age float64
	// Weight is exp(-age/fade) * strength.
	Weight float64
}

// Clock reports the current time on a monotonic timeline.
type Clock func() time.Duration

// Store is an append-only, time-pruned ripple collection. It is not safe for
// concurrent use; every caller runs on the host's loop.
type Store struct {
	clock   Clock
	ripples []Ripple
}

// NewStore returns an empty store stamping ripples with clock.
func NewStore(clock Clock) *Store {
	return &Store{clock: clock}
}

// Add appends a ripple at (x, y) stamped with the current time.
func (s *Store) Add(x, y, strength float64) Ripple {
	r := Ripple{X: x, Y: y, Spawn: s.clock(), Strength: strength}
	s.ripples = append(s.ripples, r)
	return r
}

// Prune drops every ripple spawned at or before cutoff. Spawn order is not
// assumed.
func (s *Store) Prune(cutoff time.Duration) int {
	kept := s.ripples[:0]
	for _, r := range s.ripples {
		if r.Spawn > cutoff {
			kept = append(kept, r)
		}
	}
	removed := len(s.ripples) - len(kept)
	clear(s.ripples[len(kept):])
	s.ripples = kept
	return removed
}

// PruneExpired prunes with the grace cutoff now - fade*GraceFactor.
func (s *Store) PruneExpired(now, fade time.Duration) int {
	return s.Prune(now - time.Duration(float64(fade)*GraceFactor))
}

// Live returns the ripples whose age is within fade, without mutating the
// store. A spawn time later than now counts as age zero.
func (s *Store) Live(now, fade time.Duration) []Live {
	if len(s.ripples) == 0 {
		return nil
	}
	fadeSec := fade.Seconds()
	out := make([]Live, 0, len(s.ripples))
	for _, r := range s.ripples {
		age := now - r.Spawn
		if age < 0 {
			age = 0
		}
		if age > fade {
			continue
		}
		a := age.Seconds()
		out = append(out, Live{
			X:      r.X,
			Y:      r.Y,
			Age:    a,
			Weight: math.Exp(-a/fadeSec) * r.Strength,
		})
	}
	return out
}

// Len reports the number of stored ripples, live or not.
func (s *Store) Len() int { return len(s.ripples) }

// Ripples returns a copy of the stored ripples in insertion order.
func (s *Store) Ripples() []Ripple {
	out := make([]Ripple, len(s.ripples))
	copy(out, s.ripples)
	return out
}
