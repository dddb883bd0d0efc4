package object

import (
	"fmt"
	"math"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Alien ship sizes.
const (
	AlienSmall = 0
	AlienLarge = 1
)

// The saucer outline: body, dome and skirt.
var alienOutline = physics.Shape{Rings: [][]physics.Point{
	physics.Ring(-20, 10, -10, 3, 10, 3, 20, 10),
	physics.Ring(-20, 10, -10, 17, 10, 17, 20, 10),
	physics.Ring(-10, 3, -6, -5, 6, -5, 10, 3),
}}

// AlienShip crosses the arena on a wandering heading and shoots at intervals.
type AlienShip struct {
	Base

	size    int
	heading float64
}

// NewAlienShip creates an alien ship just off the left edge at a random
// height, heading left or right.
func NewAlienShip(ctx *Context, size int) (*AlienShip, error) {
	if size != AlienSmall && size != AlienLarge {
		return nil, fmt.Errorf("alien ship size %d: %w", size, ErrInvalidArgument)
	}

	rules := ctx.Rules
	shape := alienOutline.Scale(rules.AlienScale[size])
	a := &AlienShip{
		Base:    newBase(ctx, shape),
		size:    size,
		heading: rules.AlienHeadings[ctx.Rand.IntN(len(rules.AlienHeadings))],
	}
	// Just past the right edge, which wraps to the left.
	a.SetPosition(physics.Wrap(rules.Size+5, rules.Size), 150+ctx.Rand.Float64()*400)
	a.changeVelocity()
	return a, nil
}

func (a *AlienShip) Kind() Kind     { return KindAlienShip }
func (a *AlienShip) Category() Tags { return TagAliens }
func (a *AlienShip) Destroys() Tags { return TagShips | TagAsteroids }

// Size is 0 for the small ship, 1 for the large one.
func (a *AlienShip) Size() int { return a.size }

// Heading is the general direction of travel.
func (a *AlienShip) Heading() float64 { return a.heading }

func (a *AlienShip) speed() float64 {
	return a.ctx.Rules.AlienSpeed - 3*float64(a.size)
}

// changeVelocity sets the direction to the heading plus -1, 0 or 1 radian.
func (a *AlienShip) changeVelocity() {
	delta := float64(a.ctx.Rand.IntN(3) - 1)
	a.SetVelocity(a.speed(), a.heading+delta)
}

// Spawned arms the firing and steering cadences.
func (a *AlienShip) Spawned(c Controller) {
	rules := a.ctx.Rules
	c.Schedule(a, EventFire, rules.AlienShotDelay)
	c.Schedule(a, EventChangeDirection, rules.AlienMovementDelay)
}

// CountdownComplete fires or steers, then re-arms the same countdown.
func (a *AlienShip) CountdownComplete(event Event, c Controller) {
	if a.Expired() {
		return
	}
	rules := a.ctx.Rules
	switch event {
	case EventFire:
		direction := math.Pi / 2
		if a.size == AlienLarge {
			direction = a.ctx.angle()
		}
		b := NewAlienBullet(a.ctx, a.X, a.Y, direction)
		b.Move()
		c.Spawn(b)
		c.Play(SoundFire)
		c.Schedule(a, EventFire, rules.AlienShotDelay)
	case EventChangeDirection:
		a.changeVelocity()
		c.Schedule(a, EventChangeDirection, rules.AlienMovementDelay)
	}
}

// CollidedWith destroys the alien ship and awards its score.
func (a *AlienShip) CollidedWith(other Participant, c Controller) {
	if a.Expired() || !DestroyedBy(a, other) {
		return
	}
	a.Expire()
	SpawnShipDebris(c, a.ctx, a.X, a.Y)
	c.AddScore(a.ctx.Rules.AlienScore[a.size])
	c.AlienShipDestroyed()
}
