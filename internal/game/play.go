package game

import (
	"math"
	"time"

	"github.com/tomz197/asteroids-classic/internal/object"
)

// Start begins a new round from any phase.
func (g *Game) Start() {
	g.score = 0
	g.level = 1
	g.lives = g.rules.InitialLives
	g.logger.Info("new game")
	g.startLevel()
}

// startLevel replaces everything in the arena with a fresh field for the
// current level.
func (g *Game) startLevel() {
	g.registry.Clear()
	g.timers.Reset()
	g.stopLoops()
	g.ship = nil
	g.alien = nil
	g.markers = nil
	g.transitionAt = never

	g.placeAsteroids(g.asteroidsForLevel())
	g.placeShip()
	g.drawLives()

	g.alienAt = never
	if g.alienSize() >= 0 {
		g.alienAt = g.timers.Now() + g.rules.AlienDelay
	}
	g.legend = ""
	g.setPhase(PhasePlaying)
	g.logger.Info("level started", "level", g.level, "asteroids", g.registry.CountAsteroids())
}

func (g *Game) asteroidsForLevel() int {
	return 3 + g.level
}

// placeAsteroids scatters n large asteroids near the corners of the arena.
func (g *Game) placeAsteroids(n int) {
	r := g.rules
	span := r.Size - 2*r.EdgeOffset
	for range n {
		x := r.EdgeOffset + span*float64(g.ctx.Rand.IntN(2))
		y := r.EdgeOffset + span*float64(g.ctx.Rand.IntN(2))
		a, err := object.NewAsteroid(g.ctx, g.ctx.Rand.IntN(object.AsteroidVarieties), object.AsteroidLarge, x, y)
		if err != nil {
			g.logger.Error("placing asteroid", "error", err)
			return
		}
		g.Spawn(a)
	}
}

// placeShip puts a fresh ship at the centre, facing up, and restarts the beat
// at its slowest.
func (g *Game) placeShip() {
	if g.ship != nil {
		g.ship.Expire()
	}
	x, y := g.rules.Center()
	g.ship = object.NewShip(g.ctx, x, y, -math.Pi/2)
	g.Spawn(g.ship)
	g.beatInterval = g.rules.InitialBeat
	g.beatSecond = false
	g.beatAt = g.timers.Now() + g.beatInterval
}

// drawLives redraws the row of remaining-life markers.
func (g *Game) drawLives() {
	for _, m := range g.markers {
		m.Expire()
	}
	g.markers = g.markers[:0]
	for i := range g.lives {
		m, err := object.NewLives(g.ctx, i)
		if err != nil {
			g.logger.Error("drawing lives", "error", err)
			return
		}
		g.markers = append(g.markers, m)
		g.Spawn(m)
	}
}

// alienSize is the alien ship size for the current level, or -1 for none.
func (g *Game) alienSize() int {
	switch {
	case g.level <= 1:
		return -1
	case g.level == 2:
		return object.AlienLarge
	default:
		return object.AlienSmall
	}
}

func (g *Game) placeAlienShip() {
	if g.Alien() != nil {
		return
	}
	size := g.alienSize()
	if size < 0 {
		return
	}
	a, err := object.NewAlienShip(g.ctx, size)
	if err != nil {
		g.logger.Error("placing alien ship", "error", err)
		return
	}
	g.alien = a
	g.Spawn(a)
	g.sound.Play(saucerSound(size))
	g.logger.Debug("alien ship spawned", "size", size)
}

func saucerSound(size int) object.Sound {
	if size == object.AlienSmall {
		return object.SoundSaucerSmall
	}
	return object.SoundSaucerBig
}

// scheduleTransition arms the transition timer. A later call moves the
// deadline; what happens is decided only when it is reached.
func (g *Game) scheduleTransition() {
	g.transitionAt = g.timers.Now() + g.rules.EndDelay
	g.setPhase(PhaseLifeLost)
}

func (g *Game) performTransition() {
	switch {
	case g.lives <= 0:
		g.gameOver()
	case g.registry.CountAsteroids() == 0:
		g.level++
		g.startLevel()
	default:
		g.placeShip()
		g.setPhase(PhasePlaying)
	}
}

func (g *Game) gameOver() {
	g.alienAt = never
	g.beatAt = never
	g.legend = LegendGameOver
	g.setPhase(PhaseGameOver)
	g.logger.Info("game over", "score", g.score, "level", g.level)
	g.submitScore(g.score)
}

// beat plays the next heartbeat and shortens the interval.
func (g *Game) beat() {
	if g.beatSecond {
		g.sound.Play(object.SoundBeat2)
	} else {
		g.sound.Play(object.SoundBeat1)
	}
	g.beatSecond = !g.beatSecond
	g.beatInterval = max(g.beatInterval-g.rules.BeatDelta, g.rules.FastestBeat)
	g.beatAt = g.timers.Now() + g.beatInterval
}

func (g *Game) stopLoops() {
	g.sound.Stop(object.SoundThrust)
	g.sound.Stop(object.SoundSaucerSmall)
	g.sound.Stop(object.SoundSaucerBig)
}

func (g *Game) setPhase(p Phase) {
	if g.phase == p {
		return
	}
	g.logger.Debug("phase", "from", g.phase, "to", p)
	g.phase = p
}

// Spawn registers p and lets it arm its countdowns.
func (g *Game) Spawn(p object.Participant) {
	g.registry.Add(p)
	p.Spawned(g)
}

// Schedule arms a countdown bound to p.
func (g *Game) Schedule(p object.Participant, event object.Event, delay time.Duration) {
	g.timers.Schedule(p.ID(), event, delay)
}

// AddScore credits points. The score is final once the game is over, even
// though the alien may still be shooting.
func (g *Game) AddScore(points int) {
	if g.phase == PhaseGameOver {
		return
	}
	g.score += points
}

func (g *Game) Play(s object.Sound) { g.sound.Play(s) }

// ShipDestroyed costs a life and schedules what comes next.
func (g *Game) ShipDestroyed() {
	g.ship = nil
	g.lives--
	if n := len(g.markers); n > 0 {
		g.markers[n-1].Expire()
		g.markers = g.markers[:n-1]
	}
	g.beatAt = never
	g.sound.Stop(object.SoundThrust)
	g.sound.Play(object.SoundBangShip)
	g.logger.Debug("ship destroyed", "lives", g.lives)
	g.scheduleTransition()
}

// AlienShipDestroyed silences the saucer and arms the next one.
func (g *Game) AlienShipDestroyed() {
	if g.alien != nil {
		g.sound.Stop(saucerSound(g.alien.Size()))
	}
	g.alien = nil
	g.sound.Play(object.SoundBangAlien)
	if g.registry.CountAsteroids() > 0 && g.phase != PhaseGameOver {
		g.alienAt = g.timers.Now() + g.rules.AlienDelay
	}
}

// AsteroidDestroyed ends the level once the field is empty.
func (g *Game) AsteroidDestroyed() {
	if g.phase == PhaseSplash || g.phase == PhaseGameOver {
		return
	}
	if g.registry.CountAsteroids() == 0 {
		g.alienAt = never
		g.scheduleTransition()
	}
}
