package game

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/asteroids-classic/internal/object"
)

type soundLog struct {
	played  []object.Sound
	stopped []object.Sound
}

func (s *soundLog) Play(snd object.Sound) { s.played = append(s.played, snd) }
func (s *soundLog) Stop(snd object.Sound) { s.stopped = append(s.stopped, snd) }

func (s *soundLog) count(snd object.Sound) int {
	n := 0
	for _, p := range s.played {
		if p == snd {
			n++
		}
	}
	return n
}

func newGame(t *testing.T, opts ...Option) (*Game, *soundLog) {
	t.Helper()
	sounds := &soundLog{}
	opts = append([]Option{WithSound(sounds)}, opts...)
	return New(object.NewSeededContext(1), opts...), sounds
}

// runFor ticks until at least d of simulated time has passed.
func runFor(g *Game, d time.Duration) {
	end := g.Now() + d
	for g.Now() <= end {
		g.Tick()
	}
}

// freezeAsteroids stops every asteroid so tests control all contact.
func freezeAsteroids(g *Game) {
	for p := range g.Participants() {
		if p.Kind() == object.KindAsteroid {
			p.Motion().SetVelocity(0, 0)
		}
	}
}

func count(g *Game, kind object.Kind) int {
	return g.registry.Count(kind)
}

func TestSplash(t *testing.T) {
	g, _ := newGame(t)
	if g.Phase() != PhaseSplash || g.Legend() != LegendTitle {
		t.Errorf("phase %v legend %q", g.Phase(), g.Legend())
	}
	if g.Asteroids() != 4 {
		t.Errorf("%d asteroids on splash, want 4", g.Asteroids())
	}
	if g.Ship() != nil {
		t.Error("ship on splash")
	}
	g.KeyDown(KeyFire)
	g.KeyDown(KeyAddLife)
	runFor(g, time.Second)
	if count(g, object.KindBullet) != 0 || g.Lives() != 0 {
		t.Error("splash reacted to play keys")
	}
}

func TestStart(t *testing.T) {
	g, _ := newGame(t)
	g.Start()

	ship := g.Ship()
	if ship == nil {
		t.Fatal("no ship")
	}
	if ship.X != 375 || ship.Y != 375 || ship.Rotation != -math.Pi/2 {
		t.Errorf("ship at (%v,%v) facing %v", ship.X, ship.Y, ship.Rotation)
	}
	if g.Level() != 1 || g.Lives() != 3 || g.Score() != 0 {
		t.Errorf("level %d lives %d score %d", g.Level(), g.Lives(), g.Score())
	}
	if g.Asteroids() != 4 {
		t.Errorf("%d asteroids, want 4", g.Asteroids())
	}
	if count(g, object.KindLives) != 3 {
		t.Errorf("%d lives markers", count(g, object.KindLives))
	}
	if g.Phase() != PhasePlaying || g.Legend() != "" {
		t.Errorf("phase %v legend %q", g.Phase(), g.Legend())
	}
	if g.AlienSpawnPending() {
		t.Error("alien armed on level 1")
	}
	for p := range g.Participants() {
		if p.Kind() != object.KindAsteroid {
			continue
		}
		b := p.Motion()
		for _, v := range []float64{b.X, b.Y} {
			if v != 150 && v != 600 {
				t.Errorf("asteroid at (%v,%v), want a corner", b.X, b.Y)
			}
		}
	}
}

func TestClearingFieldAdvancesLevel(t *testing.T) {
	g, _ := newGame(t)
	g.Start()
	g.KeyDown(KeyClearAsteroids)

	if !g.TransitionPending() || g.Phase() != PhaseLifeLost {
		t.Fatalf("no transition after clearing: phase %v", g.Phase())
	}
	runFor(g, 2400*time.Millisecond)
	if g.Level() != 1 {
		t.Fatalf("level changed after %v", g.Now())
	}

	runFor(g, 150*time.Millisecond)
	if g.Level() != 2 {
		t.Fatalf("level %d, want 2", g.Level())
	}
	if g.Asteroids() != 5 {
		t.Errorf("%d asteroids, want 5", g.Asteroids())
	}
	ship := g.Ship()
	if ship == nil || ship.X != 375 || ship.Y != 375 {
		t.Errorf("ship not at centre: %+v", ship)
	}
	if !g.AlienSpawnPending() {
		t.Error("alien spawn not armed")
	}
	if g.Lives() != 3 || g.Phase() != PhasePlaying {
		t.Errorf("lives %d phase %v", g.Lives(), g.Phase())
	}
}

func TestAlienArrivesOnLevelTwo(t *testing.T) {
	g, sounds := newGame(t)
	g.Start()
	g.KeyDown(KeyClearAsteroids)
	runFor(g, 2600*time.Millisecond)
	freezeAsteroids(g)

	for g.Alien() == nil && g.Now() < 20*time.Second {
		g.Tick()
	}
	alien := g.Alien()
	if alien == nil {
		t.Fatal("no alien ship")
	}
	if alien.Size() != object.AlienLarge {
		t.Errorf("alien size %d on level 2", alien.Size())
	}
	if sounds.count(object.SoundSaucerBig) != 1 {
		t.Error("saucer sound not started")
	}
}

// hitShip drops a stationary small asteroid on the ship and ticks until it
// is gone.
func hitShip(t *testing.T, g *Game) {
	t.Helper()
	ship := g.Ship()
	if ship == nil {
		t.Fatal("no ship to hit")
	}
	a, err := object.NewAsteroid(g.ctx, 2, object.AsteroidSmall, ship.X, ship.Y)
	if err != nil {
		t.Fatal(err)
	}
	a.Motion().SetVelocity(0, 0)
	g.Spawn(a)
	g.Tick()
	if g.Ship() != nil {
		t.Fatal("ship survived")
	}
}

func TestLaterTransitionWins(t *testing.T) {
	g, _ := newGame(t)
	g.Start()
	g.KeyDown(KeyClearAsteroids)
	runFor(g, time.Second)

	// Losing the ship pushes the pending deadline back.
	hitShip(t, g)
	runFor(g, 1600*time.Millisecond)
	if g.Level() != 1 || !g.TransitionPending() {
		t.Fatalf("first deadline still fired: level %d at %v", g.Level(), g.Now())
	}

	runFor(g, time.Second)
	if g.Level() != 2 || g.Lives() != 2 {
		t.Errorf("level %d lives %d, want level 2 with 2 lives", g.Level(), g.Lives())
	}
	if g.Ship() == nil || g.Phase() != PhasePlaying {
		t.Errorf("no ship on the new level, phase %v", g.Phase())
	}
}

func TestDebrisFadesAfterTwoSeconds(t *testing.T) {
	g, _ := newGame(t)
	g.Start()
	freezeAsteroids(g)
	hitShip(t, g)

	// 7 fragments from the ship, 5 from the small asteroid it rammed.
	if n := count(g, object.KindDebris); n != 12 {
		t.Fatalf("%d debris after the hit, want 12", n)
	}
	runFor(g, 1900*time.Millisecond)
	if n := count(g, object.KindDebris); n != 12 {
		t.Errorf("%d debris at 1.9s, want 12", n)
	}
	runFor(g, 200*time.Millisecond)
	if n := count(g, object.KindDebris); n != 0 {
		t.Errorf("%d debris at 2.1s, want 0", n)
	}
}

func TestRespawnRestartsBeat(t *testing.T) {
	g, sounds := newGame(t)
	g.Start()
	freezeAsteroids(g)
	runFor(g, 1900*time.Millisecond)
	if g.beatInterval >= g.rules.InitialBeat {
		t.Fatalf("beat did not speed up: %v", g.beatInterval)
	}

	hitShip(t, g)
	runFor(g, 2600*time.Millisecond)
	if g.Ship() == nil {
		t.Fatal("ship not respawned")
	}
	if g.beatInterval != g.rules.InitialBeat || g.beatSecond {
		t.Errorf("beat after respawn: interval %v, second %v", g.beatInterval, g.beatSecond)
	}
	before := sounds.count(object.SoundBeat1)
	runFor(g, g.rules.InitialBeat)
	if sounds.count(object.SoundBeat1) != before+1 {
		t.Error("respawned ship does not open with beat1")
	}
}

func TestThreeHitsEndTheGame(t *testing.T) {
	g, sounds := newGame(t)
	g.Start()
	freezeAsteroids(g)

	for want := 2; want >= 1; want-- {
		hitShip(t, g)
		if g.Lives() != want || g.Phase() != PhaseLifeLost {
			t.Fatalf("lives %d phase %v, want %d", g.Lives(), g.Phase(), want)
		}
		if count(g, object.KindLives) != want {
			t.Errorf("%d markers, want %d", count(g, object.KindLives), want)
		}
		runFor(g, 2600*time.Millisecond)
		if g.Ship() == nil || g.Phase() != PhasePlaying {
			t.Fatalf("no respawn after hit: phase %v", g.Phase())
		}
		if g.Level() != 1 {
			t.Fatalf("level %d", g.Level())
		}
	}

	hitShip(t, g)
	if g.Lives() != 0 {
		t.Fatalf("lives %d", g.Lives())
	}
	runFor(g, 2600*time.Millisecond)
	if g.Phase() != PhaseGameOver || g.Legend() != LegendGameOver {
		t.Fatalf("phase %v legend %q", g.Phase(), g.Legend())
	}
	asteroids := g.Asteroids()
	runFor(g, 5*time.Second)
	if g.Ship() != nil || g.Asteroids() != asteroids {
		t.Error("placement after game over")
	}
	if sounds.count(object.SoundBangShip) != 3 {
		t.Errorf("%d ship bangs", sounds.count(object.SoundBangShip))
	}
}

func TestBulletLimit(t *testing.T) {
	g, _ := newGame(t)
	g.Start()
	freezeAsteroids(g)

	for range 9 {
		g.KeyDown(KeyFire)
	}
	if n := count(g, object.KindBullet); n != 8 {
		t.Fatalf("%d bullets, want 8", n)
	}
	g.Tick()
	g.KeyDown(KeyFire)
	if n := count(g, object.KindBullet); n != 8 {
		t.Fatalf("ninth bullet created: %d", n)
	}

	runFor(g, 1100*time.Millisecond)
	if n := count(g, object.KindBullet); n != 0 {
		t.Fatalf("%d bullets outlived their lifetime", n)
	}
	g.KeyDown(KeyFire)
	if n := count(g, object.KindBullet); n != 1 {
		t.Errorf("%d bullets after expiry, want 1", n)
	}
}

func TestShootingScores(t *testing.T) {
	g, sounds := newGame(t)
	g.Start()
	freezeAsteroids(g)

	target, err := object.NewAsteroid(g.ctx, 3, object.AsteroidSmall, 375, 280)
	if err != nil {
		t.Fatal(err)
	}
	target.Motion().SetVelocity(0, 0)
	g.Spawn(target)

	g.KeyDown(KeyFire)
	runFor(g, 300*time.Millisecond)

	if !target.Expired() {
		t.Fatal("target survived")
	}
	if g.Score() != 100 {
		t.Errorf("score %d, want 100", g.Score())
	}
	if sounds.count(object.SoundBangSmall) != 1 {
		t.Error("no bang")
	}
	if g.TransitionPending() {
		t.Error("transition scheduled with asteroids left")
	}
}

func TestTurnAndThrust(t *testing.T) {
	g, sounds := newGame(t)
	g.Start()
	freezeAsteroids(g)
	ship := g.Ship()

	g.KeyDown(KeyRight)
	g.Tick()
	g.KeyUp(KeyRight)
	if ship.Rotation <= -math.Pi/2 {
		t.Errorf("ship did not turn right: %v", ship.Rotation)
	}

	g.KeyDown(KeyThrust)
	g.Tick()
	g.Tick()
	if ship.Motion().Speed() == 0 {
		t.Error("ship did not accelerate")
	}
	g.KeyUp(KeyThrust)
	if !slices.Contains(sounds.played, object.SoundThrust) || !slices.Contains(sounds.stopped, object.SoundThrust) {
		t.Error("thrust sound not started and stopped")
	}
}

func TestBeatSpeedsUp(t *testing.T) {
	g, sounds := newGame(t)
	g.Start()
	freezeAsteroids(g)

	runFor(g, 950*time.Millisecond)
	if sounds.count(object.SoundBeat1) != 1 || sounds.count(object.SoundBeat2) != 0 {
		t.Fatalf("beats after 950ms: %d/%d", sounds.count(object.SoundBeat1), sounds.count(object.SoundBeat2))
	}
	runFor(g, 900*time.Millisecond)
	if sounds.count(object.SoundBeat2) != 1 {
		t.Errorf("second beat missing")
	}
	if g.beatInterval != 900*time.Millisecond-2*9*time.Millisecond {
		t.Errorf("interval %v", g.beatInterval)
	}
}

func TestDebugKeysNeedAShip(t *testing.T) {
	g, _ := newGame(t)
	g.Start()
	freezeAsteroids(g)
	for range 3 {
		hitShip(t, g)
		if g.Lives() > 0 {
			runFor(g, 2600*time.Millisecond)
		}
	}

	g.KeyDown(KeyAddLife)
	g.KeyDown(KeyClearAsteroids)
	if g.Lives() != 0 || g.Asteroids() == 0 {
		t.Fatalf("debug keys acted without a ship: lives %d asteroids %d", g.Lives(), g.Asteroids())
	}
	runFor(g, 2600*time.Millisecond)
	if g.Phase() != PhaseGameOver {
		t.Errorf("phase %v, want game over", g.Phase())
	}
}

func TestAddLife(t *testing.T) {
	g, _ := newGame(t)
	g.Start()
	g.KeyDown(KeyAddLife)
	g.Tick()
	if g.Lives() != 4 || count(g, object.KindLives) != 4 {
		t.Errorf("lives %d markers %d", g.Lives(), count(g, object.KindLives))
	}
}

type memoryKeeper struct {
	mu     sync.Mutex
	scores []int
	err    error
}

func (m *memoryKeeper) Submit(_ context.Context, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.scores = append(m.scores, score)
	return nil
}

func (m *memoryKeeper) Top(_ context.Context, n int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	top := slices.Clone(m.scores)
	slices.Sort(top)
	slices.Reverse(top)
	return top[:min(n, len(top))], nil
}

func playToGameOver(t *testing.T, g *Game) {
	t.Helper()
	g.Start()
	freezeAsteroids(g)
	for range 3 {
		hitShip(t, g)
		runFor(g, 2600*time.Millisecond)
	}
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase %v", g.Phase())
	}
}

func TestGameOverSubmitsScore(t *testing.T) {
	keeper := &memoryKeeper{scores: []int{500, 9000}}
	g, _ := newGame(t, WithScores(keeper, 3))
	playToGameOver(t, g)

	deadline := time.Now().Add(2 * time.Second)
	for len(g.HighScores()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
		g.Tick()
	}
	// three small asteroids dropped on the ship
	want := []int{9000, 500, 300}
	if got := g.HighScores(); !slices.Equal(got, want) {
		t.Errorf("high scores %v, want %v", got, want)
	}
}

func TestGameOverSurvivesStoreFailure(t *testing.T) {
	keeper := &memoryKeeper{err: errors.New("disk full")}
	g, _ := newGame(t, WithScores(keeper, 3))
	playToGameOver(t, g)

	for range 20 {
		time.Sleep(2 * time.Millisecond)
		g.Tick()
	}
	if len(g.HighScores()) != 0 || g.Phase() != PhaseGameOver {
		t.Errorf("high scores %v phase %v", g.HighScores(), g.Phase())
	}
}

func TestScoreFrozenAfterGameOver(t *testing.T) {
	g, _ := newGame(t)
	playToGameOver(t, g)
	final := g.Score()

	a, err := object.NewAsteroid(g.ctx, 0, object.AsteroidSmall, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	a.Motion().SetVelocity(0, 0)
	g.Spawn(a)
	b := object.NewBullet(g.ctx, 100, 100, 0)
	b.Motion().SetVelocity(0, 0)
	g.Spawn(b)
	g.Tick()

	if !a.Expired() {
		t.Fatal("asteroid survived the bullet")
	}
	if g.Score() != final {
		t.Errorf("score %d after game over, want %d", g.Score(), final)
	}
}

func TestStartAfterGameOver(t *testing.T) {
	g, _ := newGame(t)
	playToGameOver(t, g)
	g.Start()
	if g.Phase() != PhasePlaying || g.Lives() != 3 || g.Score() != 0 || g.Ship() == nil {
		t.Errorf("restart: phase %v lives %d score %d", g.Phase(), g.Lives(), g.Score())
	}
}
