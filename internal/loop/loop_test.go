package loop

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/asteroids-classic/internal/game"
)

func fixedSize() (int, int, error) { return 80, 40, nil }

func newTestSession(t *testing.T) (*Session, *io.PipeWriter, *bytes.Buffer) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	var out bytes.Buffer
	s := NewSession(pr, &out, Options{Seed: 7, TermSize: fixedSize})
	return s, pw, &out
}

// stepUntil steps the session until cond holds, failing after a few seconds.
func stepUntil(t *testing.T, s *Session, cond func(done bool) bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		done, err := s.Step(time.Now())
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if cond(done) {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never held")
}

func TestSplashScreen(t *testing.T) {
	s, _, out := newTestSession(t)
	if _, err := s.Step(time.Now()); err != nil {
		t.Fatal(err)
	}
	if s.Game().Phase() != game.PhaseSplash {
		t.Fatalf("phase = %v", s.Game().Phase())
	}
	for _, want := range []string{"A s t e r o i d s", "ENTER to start", "Level 1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("splash lacks %q", want)
		}
	}
}

func TestEnterStartsGame(t *testing.T) {
	s, pw, _ := newTestSession(t)
	go pw.Write([]byte("\r"))
	stepUntil(t, s, func(bool) bool { return s.Game().Phase() == game.PhasePlaying })
	if s.Game().Ship() == nil {
		t.Error("no ship after start")
	}
}

func TestHeldKeyTurnsShip(t *testing.T) {
	s, pw, _ := newTestSession(t)
	go pw.Write([]byte("\r"))
	stepUntil(t, s, func(bool) bool { return s.Game().Phase() == game.PhasePlaying })

	start := s.Game().Ship().Rotation
	go pw.Write([]byte("d"))
	stepUntil(t, s, func(bool) bool {
		ship := s.Game().Ship()
		return ship != nil && ship.Rotation > start
	})
}

func TestQuitEndsSession(t *testing.T) {
	s, pw, _ := newTestSession(t)
	go pw.Write([]byte("q"))
	stepUntil(t, s, func(done bool) bool { return done })
}

func TestClosedInputEndsSession(t *testing.T) {
	s, pw, _ := newTestSession(t)
	pw.Close()
	stepUntil(t, s, func(done bool) bool { return done })
}

func TestRunStopsWithContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := Run(ctx, pr, &out, Options{TermSize: fixedSize}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\033[?25h") {
		t.Error("cursor not restored on exit")
	}
}
