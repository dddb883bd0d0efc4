package input

import (
	"slices"
	"strings"
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestTapControls(t *testing.T) {
	s := newStream(DefaultHold)
	got := s.feed([]byte("  q\rbn"), 0, t0, nil)
	want := []Event{
		{Fire, true}, {Fire, true}, {Quit, true}, {Start, true},
		{ClearAsteroids, true}, {AddLife, true},
	}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if got := s.release(t0.Add(time.Second), nil); len(got) != 0 {
		t.Errorf("tap controls released: %v", got)
	}
}

func TestHeldControlReleasesAfterHold(t *testing.T) {
	s := newStream(100 * time.Millisecond)

	if got := s.feed([]byte("w"), 0, t0, nil); !slices.Equal(got, []Event{{Thrust, true}}) {
		t.Fatalf("first press = %v", got)
	}
	// Auto-repeat keeps it down without further presses.
	if got := s.feed([]byte("ww"), 0, t0.Add(50*time.Millisecond), nil); len(got) != 0 {
		t.Errorf("repeat produced %v", got)
	}
	if got := s.release(t0.Add(140*time.Millisecond), nil); len(got) != 0 {
		t.Errorf("released too early: %v", got)
	}
	if got := s.release(t0.Add(150*time.Millisecond), nil); !slices.Equal(got, []Event{{Thrust, false}}) {
		t.Errorf("release = %v", got)
	}
}

func TestArrowKeys(t *testing.T) {
	s := newStream(DefaultHold)
	got := s.feed([]byte("\x1b[A\x1b[C\x1b[D\x1b[B"), 0, t0, nil)
	want := []Event{{Thrust, true}, {Right, true}, {Left, true}}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestSplitEscapeSequence(t *testing.T) {
	s := newStream(DefaultHold)
	s.ch <- '\x1b'
	s.ch <- '['
	if got, _ := s.Poll(t0); len(got) != 0 {
		t.Fatalf("partial sequence produced %v", got)
	}
	s.ch <- 'D'
	if got, _ := s.Poll(t0); !slices.Equal(got, []Event{{Left, true}}) {
		t.Errorf("completed sequence = %v", got)
	}
}

func TestLoneEscapeIsDropped(t *testing.T) {
	s := newStream(DefaultHold)
	s.ch <- '\x1b'
	s.Poll(t0)
	s.Poll(t0)
	if len(s.partial) != 0 {
		t.Errorf("lone escape still pending: %q", s.partial)
	}
	s.ch <- 'D'
	if got, _ := s.Poll(t0); len(got) != 1 || got[0].Control != Right {
		t.Errorf("byte after dropped escape = %v", got)
	}
}

func TestStreamCloses(t *testing.T) {
	s := StartStream(strings.NewReader(" "), DefaultHold)
	deadline := time.Now().Add(2 * time.Second)
	var events []Event
	for time.Now().Before(deadline) {
		got, open := s.Poll(t0)
		events = append(events, got...)
		if !open {
			if !slices.Equal(events, []Event{{Fire, true}}) {
				t.Errorf("events before close = %v", events)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("stream never reported closed")
}
