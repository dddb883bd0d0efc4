// Package loop drives one game from a terminal: it polls input, ticks the
// simulation at the frame rate and redraws the arena, all on one goroutine.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-classic/internal/draw"
	"github.com/tomz197/asteroids-classic/internal/game"
	"github.com/tomz197/asteroids-classic/internal/input"
	"github.com/tomz197/asteroids-classic/internal/logging"
	"github.com/tomz197/asteroids-classic/internal/object"
)

// Options configures a session. Zero values pick sensible defaults.
type Options struct {
	Logger   *log.Logger
	Sound    game.SoundSink
	Scores   game.ScoreKeeper
	TopN     int
	Seed     uint64 // 0 seeds from the clock
	TermSize draw.TermSizeFunc
	Hold     time.Duration // how long a held key outlives its last repeat
}

// Run plays until the player quits, the input closes or ctx is done. A
// cancelled context is a normal shutdown and returns nil.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	s := NewSession(r, w, opts)
	defer s.Close()

	ticker := time.NewTicker(s.game.Rules().FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Session stopped", "reason", context.Cause(ctx))
			return nil
		case now := <-ticker.C:
			done, err := s.Step(now)
			if err != nil || done {
				return err
			}
		}
	}
}

// Session is one player's game and the terminal it is drawn on.
type Session struct {
	game   *game.Game
	stream *input.Stream
	canvas *draw.Canvas
	frame  *draw.Frame
	size   draw.TermSizeFunc
	logger *log.Logger
}

// NewSession prepares a game on its splash screen. Input is read from r on a
// background goroutine.
func NewSession(r io.Reader, w io.Writer, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.TermSize == nil {
		opts.TermSize = draw.DefaultTermSizeFunc
	}
	if opts.Hold <= 0 {
		opts.Hold = input.DefaultHold
	}
	if opts.TopN <= 0 {
		opts.TopN = 3
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctx := object.NewSeededContext(seed)
	gameOpts := []game.Option{game.WithLogger(opts.Logger), game.WithSound(opts.Sound)}
	if opts.Scores != nil {
		gameOpts = append(gameOpts, game.WithScores(opts.Scores, opts.TopN))
	}

	cols, rows, err := opts.TermSize()
	if err != nil {
		opts.Logger.Warn("Terminal size unknown, assuming 80x24", "error", err)
		cols, rows = 80, 24
	}

	s := &Session{
		game:   game.New(ctx, gameOpts...),
		stream: input.StartStream(r, opts.Hold),
		canvas: draw.NewCanvas(cols, rows, ctx.Rules.Size),
		frame:  draw.NewFrame(w),
		size:   opts.TermSize,
		logger: opts.Logger.With("component", "loop"),
	}
	s.frame.HideCursor()
	s.frame.ClearScreen()
	return s
}

// Game exposes the simulation, mainly for inspection.
func (s *Session) Game() *game.Game { return s.game }

// Step runs one frame: apply input, tick, redraw. done reports that the
// player quit or the input went away.
func (s *Session) Step(now time.Time) (done bool, err error) {
	events, open := s.stream.Poll(now)
	for _, e := range events {
		if s.apply(e) {
			return true, nil
		}
	}
	if !open {
		s.logger.Debug("Input closed")
		return true, nil
	}

	s.game.Tick()
	return false, s.render()
}

// Close restores the cursor and blanks the screen.
func (s *Session) Close() {
	s.frame.ClearScreen()
	s.frame.ShowCursor()
	if err := s.frame.Flush(); err != nil {
		s.logger.Debug("Final flush failed", "error", err)
	}
}

// apply forwards an input event to the game. It returns true on quit.
func (s *Session) apply(e input.Event) bool {
	g := s.game
	switch e.Control {
	case input.Quit:
		return true
	case input.Start:
		if g.Phase() == game.PhaseSplash || g.Phase() == game.PhaseGameOver {
			g.Start()
		}
		return false
	}

	k, ok := keys[e.Control]
	if !ok {
		return false
	}
	if e.Down {
		g.KeyDown(k)
	} else {
		g.KeyUp(k)
	}
	return false
}

var keys = map[input.Control]game.Key{
	input.Thrust:         game.KeyThrust,
	input.Left:           game.KeyLeft,
	input.Right:          game.KeyRight,
	input.Fire:           game.KeyFire,
	input.ClearAsteroids: game.KeyClearAsteroids,
	input.AddLife:        game.KeyAddLife,
}

func (s *Session) render() error {
	if cols, rows, err := s.size(); err == nil {
		s.canvas.Resize(cols, rows)
	}

	s.frame.ClearScreen()
	s.canvas.Clear()
	for p := range s.game.Participants() {
		s.canvas.Shape(p.Outline())
	}
	s.canvas.Render(s.frame)
	s.canvas.Border(s.frame)
	draw.DrawStatus(s.frame, s.canvas, status(s.game))
	return s.frame.Flush()
}

func status(g *game.Game) draw.Status {
	st := draw.Status{
		Score:  g.Score(),
		Level:  g.Level(),
		Legend: g.Legend(),
	}
	switch g.Phase() {
	case game.PhaseSplash:
		st.Prompt = "ENTER to start   Q to quit"
	case game.PhaseGameOver:
		st.Prompt = "ENTER to play again"
		st.HighScores = g.HighScores()
	}
	return st
}
