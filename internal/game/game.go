// Package game runs one round of asteroids: it owns the registry, the
// countdown queue and the score, lives and level, and advances them one
// fixed-length tick at a time.
package game

import (
	"iter"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/countdown"
	"github.com/tomz197/asteroids-classic/internal/logging"
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/world"
)

// Phase is the state of the round.
type Phase int

const (
	PhaseSplash Phase = iota
	PhasePlaying
	PhaseLifeLost // waiting out the delay before respawn, next level or game over
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSplash:
		return "splash"
	case PhasePlaying:
		return "playing"
	case PhaseLifeLost:
		return "life-lost"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Legends shown over the arena.
const (
	LegendTitle    = "Asteroids"
	LegendGameOver = "Game Over"
)

// never marks an unarmed game-level timer.
const never time.Duration = -1

// SoundSink receives sound cues. Play on a looping cue starts the loop; Stop
// ends it.
type SoundSink interface {
	Play(s object.Sound)
	Stop(s object.Sound)
}

type silent struct{}

func (silent) Play(object.Sound) {}
func (silent) Stop(object.Sound) {}

// Game is a single-player round. It is not safe for concurrent use: input
// and ticks must come from one goroutine.
type Game struct {
	ctx      *object.Context
	rules    *config.Rules
	logger   *log.Logger
	sound    SoundSink
	scores   ScoreKeeper
	topN     int
	registry *world.Registry
	detector *world.Detector
	timers   *countdown.Queue

	phase  Phase
	score  int
	level  int
	lives  int
	legend string

	ship    *object.Ship
	alien   *object.AlienShip
	markers []*object.Lives

	transitionAt time.Duration
	alienAt      time.Duration
	beatAt       time.Duration
	beatInterval time.Duration
	beatSecond   bool

	high    []int
	results chan scoreResult
}

// Option configures a Game.
type Option func(*Game)

// WithSound routes sound cues to sink.
func WithSound(sink SoundSink) Option {
	return func(g *Game) {
		if sink != nil {
			g.sound = sink
		}
	}
}

// WithScores submits the final score to keeper at game over and keeps the
// top n scores for display.
func WithScores(keeper ScoreKeeper, n int) Option {
	return func(g *Game) {
		g.scores = keeper
		g.topN = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New returns a game on its splash screen, with the level-one asteroid field
// drifting behind the title.
func New(ctx *object.Context, opts ...Option) *Game {
	g := &Game{
		ctx:          ctx,
		rules:        ctx.Rules,
		logger:       logging.Discard(),
		sound:        silent{},
		topN:         3,
		registry:     world.NewRegistry(),
		detector:     world.NewDetector(ctx.Rules.Size),
		timers:       countdown.New(),
		phase:        PhaseSplash,
		level:        1,
		legend:       LegendTitle,
		transitionAt: never,
		alienAt:      never,
		beatAt:       never,
		results:      make(chan scoreResult, 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "game")
	g.placeAsteroids(g.asteroidsForLevel())
	return g
}

// Tick advances the simulation by one frame: apply removals and additions,
// resolve a due transition, move everything, resolve collisions, then deliver
// due countdowns.
func (g *Game) Tick() {
	g.registry.Flush()
	g.collectScores()

	if g.transitionAt != never && g.timers.Now() >= g.transitionAt {
		g.transitionAt = never
		g.performTransition()
	}

	for p := range g.registry.All() {
		p.Move()
	}
	g.detector.Detect(g.registry, g)

	due := g.timers.Advance(g.rules.FrameInterval)
	countdown.Dispatch(due, g.registry.Lookup, g)
	g.runTimers()
}

// runTimers fires the game-level timers that are not bound to a participant.
func (g *Game) runTimers() {
	now := g.timers.Now()
	if g.alienAt != never && now >= g.alienAt {
		g.alienAt = never
		g.placeAlienShip()
	}
	if g.beatAt != never && now >= g.beatAt {
		g.beat()
	}
}

// Now is the simulated time since the game was created.
func (g *Game) Now() time.Duration { return g.timers.Now() }

func (g *Game) Phase() Phase         { return g.phase }
func (g *Game) Score() int           { return g.score }
func (g *Game) Level() int           { return g.level }
func (g *Game) Lives() int           { return g.lives }
func (g *Game) Legend() string       { return g.legend }
func (g *Game) Rules() *config.Rules { return g.rules }

// Ship is the live ship, or nil between lives.
func (g *Game) Ship() *object.Ship {
	if g.ship == nil || g.ship.Expired() {
		return nil
	}
	return g.ship
}

// Alien is the live alien ship, or nil.
func (g *Game) Alien() *object.AlienShip {
	if g.alien == nil || g.alien.Expired() {
		return nil
	}
	return g.alien
}

// Asteroids counts the asteroids in play.
func (g *Game) Asteroids() int { return g.registry.CountAsteroids() }

// Participants yields every live participant in insertion order.
func (g *Game) Participants() iter.Seq[object.Participant] {
	return g.registry.All()
}

// HighScores returns the best scores fetched at the last game over.
func (g *Game) HighScores() []int { return slices.Clone(g.high) }

// TransitionPending reports whether a respawn, level change or game over is
// scheduled.
func (g *Game) TransitionPending() bool { return g.transitionAt != never }

// AlienSpawnPending reports whether the alien ship countdown is armed.
func (g *Game) AlienSpawnPending() bool { return g.alienAt != never }
