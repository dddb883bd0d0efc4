// Package input turns a raw terminal byte stream into press and release
// events. Terminals report only presses (plus auto-repeat), so a held control
// is released once no repeat has arrived for a short while.
package input

import (
	"io"
	"time"
)

// Control is something the player can press.
type Control int

const (
	Thrust Control = iota
	Left
	Right
	Fire
	Start
	Quit
	ClearAsteroids // debug
	AddLife        // debug
	numControls
)

func (c Control) String() string {
	switch c {
	case Thrust:
		return "thrust"
	case Left:
		return "left"
	case Right:
		return "right"
	case Fire:
		return "fire"
	case Start:
		return "start"
	case Quit:
		return "quit"
	case ClearAsteroids:
		return "clear-asteroids"
	case AddLife:
		return "add-life"
	default:
		return "unknown"
	}
}

// held reports whether a control stays down between repeats. The others act
// once per press.
func (c Control) held() bool {
	return c == Thrust || c == Left || c == Right
}

// Event is a press (Down) or release of a control.
type Event struct {
	Control Control
	Down    bool
}

// DefaultHold is how long a held control stays down after its last repeat.
const DefaultHold = 120 * time.Millisecond

// Stream reads bytes on its own goroutine and converts them to events when
// polled.
type Stream struct {
	ch      chan byte
	hold    time.Duration
	seen    [numControls]time.Time
	down    [numControls]bool
	partial []byte // unfinished escape sequence from the last poll
}

func newStream(hold time.Duration) *Stream {
	return &Stream{ch: make(chan byte, 128), hold: hold}
}

// StartStream starts reading r. The stream reports closed once r returns an
// error, including io.EOF.
func StartStream(r io.Reader, hold time.Duration) *Stream {
	s := newStream(hold)
	go func() {
		defer close(s.ch)
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			for _, b := range buf[:n] {
				s.ch <- b
			}
			if err != nil {
				return
			}
		}
	}()
	return s
}

// Poll drains pending bytes and returns the events they produce, followed by
// releases for held controls that timed out. open is false once the reader
// has gone away.
func (s *Stream) Poll(now time.Time) (events []Event, open bool) {
	buf := s.partial
	carried := len(buf)
	s.partial = nil
	open = true
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				open = false
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	events = s.feed(buf, carried, now, nil)
	return s.release(now, events), open
}

// feed parses buf and appends the resulting presses to events. The first
// carried bytes are left over from the previous poll.
func (s *Stream) feed(buf []byte, carried int, now time.Time, events []Event) []Event {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' {
			switch {
			case i+2 < len(buf) && buf[i+1] == '[':
				if c, ok := arrow(buf[i+2]); ok {
					events = s.press(c, now, events)
				}
				i += 2
				continue
			case i+1 == len(buf) || (i+2 == len(buf) && buf[i+1] == '['):
				// An unfinished sequence waits one poll for the rest; if
				// nothing arrives it was a lone escape and is dropped.
				if len(buf) > carried {
					s.partial = append(s.partial[:0], buf[i:]...)
				}
				return events
			}
			continue
		}
		if c, ok := key(b); ok {
			events = s.press(c, now, events)
		}
	}
	return events
}

func (s *Stream) press(c Control, now time.Time, events []Event) []Event {
	s.seen[c] = now
	if !c.held() {
		return append(events, Event{Control: c, Down: true})
	}
	if s.down[c] {
		return events
	}
	s.down[c] = true
	return append(events, Event{Control: c, Down: true})
}

func (s *Stream) release(now time.Time, events []Event) []Event {
	for c := range numControls {
		if s.down[c] && now.Sub(s.seen[c]) >= s.hold {
			s.down[c] = false
			events = append(events, Event{Control: c})
		}
	}
	return events
}

func arrow(b byte) (Control, bool) {
	switch b {
	case 'A':
		return Thrust, true
	case 'C':
		return Right, true
	case 'D':
		return Left, true
	}
	return 0, false
}

func key(b byte) (Control, bool) {
	switch b {
	case 'w', 'W', 'k', 'K':
		return Thrust, true
	case 'a', 'A', 'h', 'H':
		return Left, true
	case 'd', 'D', 'l', 'L':
		return Right, true
	case ' ':
		return Fire, true
	case '\r', '\n':
		return Start, true
	case 'q', 'Q', 0x03: // 0x03 is Ctrl-C in raw mode
		return Quit, true
	case 'b', 'B':
		return ClearAsteroids, true
	case 'n', 'N':
		return AddLife, true
	}
	return 0, false
}
