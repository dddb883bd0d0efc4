package object

import (
	"fmt"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Asteroid sizes. Larger sizes split into two of the next size down.
const (
	AsteroidSmall  = 0
	AsteroidMedium = 1
	AsteroidLarge  = 2
)

// AsteroidVarieties is the number of distinct asteroid outlines.
const AsteroidVarieties = 4

var asteroidOutlines = [AsteroidVarieties]physics.Shape{
	physics.Polygon(0, -30, 28, -15, 20, 20, 4, 8, -1, 30, -12, 15, -5, 2, -25, 7, -10, -25),
	physics.Polygon(10, -28, 7, -16, 30, -9, 30, 9, 10, 13, 5, 30, -8, 28, -6, 6, -27, 12, -30, -11, -6, -15, -6, -28),
	physics.Polygon(10, -30, 30, 0, 15, 30, 0, 15, -15, 30, -30, 0, -10, -30),
	physics.Polygon(30, 0, 20, 28, 0, 30, -20, 18, -30, 0, -20, -25, 0, -30, 30, -20),
}

var asteroidBangs = [3]Sound{SoundBangSmall, SoundBangMedium, SoundBangLarge}

// Asteroid drifts in a straight line and splits when destroyed.
type Asteroid struct {
	Base

	size    int
	variety int
}

// NewAsteroid creates an asteroid of the given variety and size at (x, y),
// moving in a random direction at a random speed up to the size's cap.
func NewAsteroid(ctx *Context, variety, size int, x, y float64) (*Asteroid, error) {
	if variety < 0 || variety >= AsteroidVarieties {
		return nil, fmt.Errorf("asteroid variety %d: %w", variety, ErrInvalidArgument)
	}
	if size < AsteroidSmall || size > AsteroidLarge {
		return nil, fmt.Errorf("asteroid size %d: %w", size, ErrInvalidArgument)
	}

	rules := ctx.Rules
	a := &Asteroid{
		Base:    newBase(ctx, asteroidOutlines[variety].Scale(rules.AsteroidScale[size])),
		size:    size,
		variety: variety,
	}
	a.SetPosition(x, y)
	// 1-Float64 lies in (0, 1], so the asteroid is never at rest.
	speed := rules.AsteroidMaxSpeed[size] * (1 - ctx.Rand.Float64())
	a.SetVelocity(speed, ctx.angle())
	a.SetRotation(ctx.angle())
	return a, nil
}

func (a *Asteroid) Kind() Kind     { return KindAsteroid }
func (a *Asteroid) Category() Tags { return TagAsteroids }
func (a *Asteroid) Destroys() Tags { return TagShips | TagAliens }

// Size is the size index: 0 small, 1 medium, 2 large.
func (a *Asteroid) Size() int { return a.size }

// Variety is the outline index.
func (a *Asteroid) Variety() int { return a.variety }

// CollidedWith splits or removes the asteroid, awards its score and leaves
// debris behind.
func (a *Asteroid) CollidedWith(other Participant, c Controller) {
	if a.Expired() || !DestroyedBy(a, other) {
		return
	}
	a.Expire()

	rules := a.ctx.Rules
	c.AddScore(rules.AsteroidScore[a.size])
	c.Play(asteroidBangs[a.size])
	SpawnAsteroidDebris(c, a.ctx, a.X, a.Y)

	if a.size > AsteroidSmall {
		for range 2 {
			child, err := NewAsteroid(a.ctx, a.ctx.Rand.IntN(AsteroidVarieties), a.size-1, a.X, a.Y)
			if err != nil {
				// unreachable: size-1 and IntN are always in range
				continue
			}
			c.Spawn(child)
		}
	}
	c.AsteroidDestroyed()
}
