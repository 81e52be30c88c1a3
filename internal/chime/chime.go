// Package chime synthesizes the short tone that accompanies click ripples.
package chime

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
)

const (
	// PingDuration is the length of one tone.
	PingDuration = 220 * time.Millisecond

	baseFreq  = 660.0 // Hz at strength 1
	baseGain  = 0.16
	decayTime = 0.06 // seconds, envelope time constant
)

// Chime mixes pings into a single streamer the speaker plays for the whole
// session.
type Chime struct {
	sr    beep.SampleRate
	mixer *beep.Mixer
	lock  sync.Locker
}

// New returns a chime at sample rate sr. lock guards the mixer against the
// audio goroutine; with the beep speaker that is speaker.Lock/Unlock.
func New(sr beep.SampleRate, lock sync.Locker) *Chime {
	return &Chime{sr: sr, mixer: &beep.Mixer{}, lock: lock}
}

// Streamer is the endless mix to hand to the speaker once.
func (c *Chime) Streamer() beep.Streamer { return c.mixer }

// Ring adds a ping for a ripple of the given strength.
func (c *Chime) Ring(strength float64) {
	p := Ping(c.sr, strength)
	c.lock.Lock()
	c.mixer.Add(p)
	c.lock.Unlock()
}

// Playing reports how many pings are still sounding.
func (c *Chime) Playing() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.mixer.Len()
}

// Ping is a decaying sine. Stronger ripples sound higher and louder.
func Ping(sr beep.SampleRate, strength float64) beep.Streamer {
	s := math.Max(strength, 0)
	freq := baseFreq * (1 + 0.5*(s-1))
	if freq < baseFreq/2 {
		freq = baseFreq / 2
	}
	gain := baseGain * math.Min(s, 2)
	total := sr.N(PingDuration)
	rate := float64(sr)
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / rate
			v := gain * math.Exp(-t/decayTime) * math.Sin(2*math.Pi*freq*t)
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}
