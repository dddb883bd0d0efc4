// Package object defines the participants of the simulation: the player's
// ship, asteroids, the alien ship, bullets, debris and the lives indicator.
package object

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// ErrInvalidArgument is returned by constructors given out-of-range sizes,
// varieties or shapes. Arguments are never clamped.
var ErrInvalidArgument = errors.New("invalid participant argument")

// ID identifies a participant inside the registry. Zero means unregistered.
type ID uint64

// Kind is the concrete variant of a participant.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroid
	KindAlienShip
	KindBullet
	KindAlienBullet
	KindDebris
	KindLives
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindAlienShip:
		return "alien-ship"
	case KindBullet:
		return "bullet"
	case KindAlienBullet:
		return "alien-bullet"
	case KindDebris:
		return "debris"
	case KindLives:
		return "lives"
	default:
		return "unknown"
	}
}

// Tags is a set of participant categories. A participant's Category says what
// it is; its Destroys set says which categories it destroys on contact.
type Tags uint8

const (
	TagShips Tags = 1 << iota
	TagAsteroids
	TagAliens
)

// Has reports whether any tag in o is present in t.
func (t Tags) Has(o Tags) bool {
	return t&o != 0
}

// Event names a countdown bound to a participant.
type Event string

const (
	EventTurn            Event = "turn"            // ship turn/thrust cadence
	EventFire            Event = "fire"            // alien ship shot cadence
	EventChangeDirection Event = "changeDirection" // alien ship heading perturbation
	EventTimeout         Event = "timeout"         // bullet and debris lifetime
)

// Sound names an audio cue. The simulation only emits names; playing them is
// up to whoever implements the sound sink.
type Sound string

const (
	SoundFire        Sound = "fire"
	SoundThrust      Sound = "thrust"
	SoundBangSmall   Sound = "bangSmall"
	SoundBangMedium  Sound = "bangMedium"
	SoundBangLarge   Sound = "bangLarge"
	SoundBangShip    Sound = "bangShip"
	SoundBangAlien   Sound = "bangAlienShip"
	SoundBeat1       Sound = "beat1"
	SoundBeat2       Sound = "beat2"
	SoundSaucerSmall Sound = "saucerSmall"
	SoundSaucerBig   Sound = "saucerBig"
)

// Sounds lists every cue, in a stable order.
var Sounds = []Sound{
	SoundFire, SoundThrust,
	SoundBangSmall, SoundBangMedium, SoundBangLarge, SoundBangShip, SoundBangAlien,
	SoundBeat1, SoundBeat2, SoundSaucerSmall, SoundSaucerBig,
}

// Context is the simulation context handed to every constructor: the random
// source and the constant table. One seed reproduces a whole game.
type Context struct {
	Rand  *rand.Rand
	Rules *config.Rules
}

// NewContext returns a context with the default rules.
func NewContext(rng *rand.Rand) *Context {
	return &Context{Rand: rng, Rules: config.DefaultRules()}
}

// NewSeededContext is NewContext with a PCG source built from seed.
func NewSeededContext(seed uint64) *Context {
	return NewContext(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// angle returns a uniformly random direction.
func (c *Context) angle() float64 {
	return c.Rand.Float64() * 2 * math.Pi
}

// Controller is the game orchestrator as seen by participants. Behaviours
// report outcomes through it and never touch the registry directly.
type Controller interface {
	// Spawn registers a participant; it becomes live no later than the next tick.
	Spawn(p Participant)
	// Schedule arms a one-shot countdown for p.
	Schedule(p Participant, event Event, delay time.Duration)
	AddScore(points int)
	Play(s Sound)
	ShipDestroyed()
	AlienShipDestroyed()
	AsteroidDestroyed()
}

// Participant is any simulated entity with a position, an outline and
// reactions to collisions and countdowns.
type Participant interface {
	ID() ID
	SetID(id ID)
	Kind() Kind
	// Category is what the participant is; Destroys is what it destroys.
	Category() Tags
	Destroys() Tags

	Motion() *physics.Body
	// Outline is the world-space shape used for drawing and collisions.
	Outline() physics.Shape
	// Radius bounds the outline around the participant's position.
	Radius() float64
	Move()

	Expired() bool
	Expire()

	// Spawned runs once, right after the participant is registered.
	Spawned(c Controller)
	CollidedWith(other Participant, c Controller)
	CountdownComplete(event Event, c Controller)
}

// Base carries the state and default behaviour shared by all participants.
// Concrete types embed it and override what they need.
type Base struct {
	physics.Body

	ctx     *Context
	id      ID
	expired bool
	shape   physics.Shape
	radius  float64
}

func newBase(ctx *Context, shape physics.Shape) Base {
	return Base{ctx: ctx, shape: shape, radius: shape.Radius()}
}

// ID returns the registry identity.
func (b *Base) ID() ID { return b.id }

// SetID is called once by the registry.
func (b *Base) SetID(id ID) { b.id = id }

// Motion exposes the kinematic state.
func (b *Base) Motion() *physics.Body { return &b.Body }

// Outline transforms the local shape by position and rotation.
func (b *Base) Outline() physics.Shape {
	return b.shape.Transform(b.X, b.Y, b.Rotation)
}

// Radius bounds the outline.
func (b *Base) Radius() float64 { return b.radius }

// Move advances one tick and wraps around the arena.
func (b *Base) Move() {
	b.Body.Move(b.ctx.Rules.Size)
}

// Expired reports whether the participant has left the game.
func (b *Base) Expired() bool { return b.expired }

// Expire removes the participant from play. Idempotent.
func (b *Base) Expire() { b.expired = true }

// Spawned does nothing by default.
func (b *Base) Spawned(Controller) {}

// CollidedWith does nothing by default.
func (b *Base) CollidedWith(Participant, Controller) {}

// CountdownComplete does nothing by default.
func (b *Base) CountdownComplete(Event, Controller) {}

func (b *Base) setShape(shape physics.Shape) {
	b.shape = shape
	b.radius = shape.Radius()
}

// DestroyedBy reports whether contact with other destroys p.
func DestroyedBy(p, other Participant) bool {
	return other.Destroys().Has(p.Category())
}
