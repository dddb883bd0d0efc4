package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/asteroids-classic/internal/object"
)

// clip describes how to synthesise one sound. Looping clips never end on
// their own and are stopped through the manager.
type clip struct {
	duration time.Duration
	loop     bool
	wave     func() func(t float64) float64
}

var clips = map[object.Sound]clip{
	object.SoundFire:   {duration: 90 * time.Millisecond, wave: sweep(1400, 300, 0.25, 0.09)},
	object.SoundThrust: {loop: true, wave: rumble(0.04, 0.35)},

	object.SoundBangSmall:  {duration: 250 * time.Millisecond, wave: burst(0.5, 0.5, 0.25)},
	object.SoundBangMedium: {duration: 400 * time.Millisecond, wave: burst(0.25, 0.6, 0.4)},
	object.SoundBangLarge:  {duration: 600 * time.Millisecond, wave: burst(0.1, 0.7, 0.6)},
	object.SoundBangShip:   {duration: 900 * time.Millisecond, wave: burst(0.08, 0.8, 0.9)},
	object.SoundBangAlien:  {duration: 700 * time.Millisecond, wave: burst(0.15, 0.7, 0.7)},

	object.SoundBeat1: {duration: 110 * time.Millisecond, wave: thump(55, 0.6, 0.11)},
	object.SoundBeat2: {duration: 110 * time.Millisecond, wave: thump(48, 0.6, 0.11)},

	object.SoundSaucerSmall: {loop: true, wave: warble(1000, 120, 9, 0.12)},
	object.SoundSaucerBig:   {loop: true, wave: warble(500, 80, 5, 0.12)},
}

// stream returns a fresh streamer for c at sample rate sr.
func (c clip) stream(sr beep.SampleRate) beep.Streamer {
	length := 0
	if !c.loop {
		length = sr.N(c.duration)
	}
	return &synth{sr: sr, length: length, wave: c.wave()}
}

// synth renders a wave function sample by sample. A zero length plays forever.
type synth struct {
	sr     beep.SampleRate
	pos    int
	length int
	wave   func(t float64) float64
}

func (s *synth) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.length > 0 && s.pos >= s.length {
			return i, i > 0
		}
		v := s.wave(float64(s.pos) / float64(s.sr))
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *synth) Err() error { return nil }

// fade falls from 1 to 0 over d seconds, quadratically.
func fade(t, d float64) float64 {
	if t >= d {
		return 0
	}
	f := 1 - t/d
	return f * f
}

// sweep is a square wave gliding from one frequency to another.
func sweep(from, to, volume, d float64) func() func(float64) float64 {
	return func() func(float64) float64 {
		return func(t float64) float64 {
			phase := from*t + (to-from)*t*t/(2*d)
			v := volume
			if math.Mod(phase, 1) >= 0.5 {
				v = -volume
			}
			return v * fade(t, d)
		}
	}
}

// burst is low-passed white noise with a decaying envelope. Smaller smoothing
// values give a deeper explosion.
func burst(smoothing, volume, d float64) func() func(float64) float64 {
	return func() func(float64) float64 {
		var last float64
		return func(t float64) float64 {
			last += (rand.Float64()*2 - 1 - last) * smoothing
			return last * volume * fade(t, d)
		}
	}
}

// rumble is endless low-passed noise.
func rumble(smoothing, volume float64) func() func(float64) float64 {
	return func() func(float64) float64 {
		var last float64
		return func(float64) float64 {
			last += (rand.Float64()*2 - 1 - last) * smoothing
			return last * volume
		}
	}
}

// thump is a short decaying sine.
func thump(freq, volume, d float64) func() func(float64) float64 {
	return func() func(float64) float64 {
		return func(t float64) float64 {
			return math.Sin(2*math.Pi*freq*t) * volume * fade(t, d)
		}
	}
}

// warble is a square wave whose pitch wobbles around base by depth Hz, rate
// times a second.
func warble(base, depth, rate, volume float64) func() func(float64) float64 {
	return func() func(float64) float64 {
		return func(t float64) float64 {
			phase := base*t + depth*(1-math.Cos(2*math.Pi*rate*t))/(2*math.Pi*rate)
			if math.Mod(phase, 1) < 0.5 {
				return volume
			}
			return -volume
		}
	}
}
