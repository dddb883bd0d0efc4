package object

import (
	"fmt"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

// DebrisShape selects the outline of a debris fragment.
type DebrisShape int

const (
	DebrisDot DebrisShape = iota
	DebrisLine
)

var debrisOutlines = map[DebrisShape]physics.Shape{
	DebrisDot:  physics.Ellipse(1, 1, 4),
	DebrisLine: physics.Line(10),
}

// Debris is a decorative fragment left by an explosion. It never collides.
type Debris struct {
	Base
}

// NewDebris creates a fragment drifting slowly away from (x, y).
func NewDebris(ctx *Context, x, y float64, shape DebrisShape) (*Debris, error) {
	outline, ok := debrisOutlines[shape]
	if !ok {
		return nil, fmt.Errorf("debris shape %d: %w", shape, ErrInvalidArgument)
	}
	rules := ctx.Rules
	d := &Debris{Base: newBase(ctx, outline)}
	d.SetPosition(x, y)
	speed := rules.DebrisMinSpeed + ctx.Rand.Float64()*(rules.DebrisMaxSpeed-rules.DebrisMinSpeed)
	d.SetVelocity(speed, ctx.angle())
	d.SetRotation(ctx.angle())
	return d, nil
}

func (d *Debris) Kind() Kind     { return KindDebris }
func (d *Debris) Category() Tags { return 0 }
func (d *Debris) Destroys() Tags { return 0 }

// Spawned arms the lifetime countdown.
func (d *Debris) Spawned(c Controller) {
	c.Schedule(d, EventTimeout, d.ctx.Rules.DebrisDuration)
}

func (d *Debris) CountdownComplete(event Event, _ Controller) {
	if event == EventTimeout {
		d.Expire()
	}
}

// SpawnAsteroidDebris scatters five dots.
func SpawnAsteroidDebris(c Controller, ctx *Context, x, y float64) {
	spawnDebris(c, ctx, x, y, DebrisDot, 5)
}

// SpawnShipDebris scatters five dots and two hull fragments.
func SpawnShipDebris(c Controller, ctx *Context, x, y float64) {
	spawnDebris(c, ctx, x, y, DebrisDot, 5)
	spawnDebris(c, ctx, x, y, DebrisLine, 2)
}

func spawnDebris(c Controller, ctx *Context, x, y float64, shape DebrisShape, n int) {
	for range n {
		d, err := NewDebris(ctx, x, y, shape)
		if err != nil {
			return
		}
		c.Spawn(d)
	}
}
