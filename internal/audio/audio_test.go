package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/tomz197/asteroids-classic/internal/logging"
	"github.com/tomz197/asteroids-classic/internal/object"
)

func TestEveryCueHasAClip(t *testing.T) {
	for _, s := range object.Sounds {
		if _, ok := clips[s]; !ok {
			t.Errorf("no clip for %q", s)
		}
	}
}

func drain(s beep.Streamer, limit int) (total int, ended bool, peak float64) {
	buf := make([][2]float64, 512)
	for total < limit {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			peak = math.Max(peak, math.Abs(frame[0]))
		}
		total += n
		if !ok {
			return total, true, peak
		}
	}
	return total, false, peak
}

func TestOneShotClipsEnd(t *testing.T) {
	sr := beep.SampleRate(8000)
	for s, c := range clips {
		total, ended, peak := drain(c.stream(sr), sr.N(c.duration)+sr.N(1e9))
		if c.loop {
			if ended {
				t.Errorf("%q: loop ended after %d samples", s, total)
			}
		} else {
			if !ended || total != sr.N(c.duration) {
				t.Errorf("%q: ended=%v after %d samples, want %d", s, ended, total, sr.N(c.duration))
			}
		}
		if peak > 1 {
			t.Errorf("%q: peak %v clips", s, peak)
		}
	}
}

func TestSilentManagerIgnoresCues(t *testing.T) {
	m := NewManager(logging.Discard())
	if !m.Silent() {
		t.Fatal("manager should start silent")
	}
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("silent manager panicked: %v", r)
		}
	}()
	for _, s := range object.Sounds {
		m.Play(s)
		m.Stop(s)
	}
	m.Close()
	if len(m.loops) != 0 {
		t.Errorf("silent manager tracked %d loops", len(m.loops))
	}
}
