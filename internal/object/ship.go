package object

import (
	"github.com/tomz197/asteroids-classic/internal/physics"
)

var (
	shipOutline = physics.Polygon(21, 0, -21, 12, -14, 10, -14, -10, -21, -12)
	shipFlame   = physics.Polygon(-14, 5, -30, 0, -14, -5)
	shipNose    = physics.Point{X: 20, Y: 0}
)

// Ship is the player's ship. Turning and thrust are not applied every frame:
// a recurring countdown samples the control flags, so the ship moves in
// deliberately coarse steps.
type Ship struct {
	Base

	thrust    bool
	turnRight bool
	turnLeft  bool
	flame     bool // flame drawn this turn tick
}

// NewShip creates a ship at rest at (x, y) facing direction.
func NewShip(ctx *Context, x, y, direction float64) *Ship {
	s := &Ship{Base: newBase(ctx, shipOutline)}
	s.SetPosition(x, y)
	s.SetRotation(direction)
	s.radius = shipOutline.Append(shipFlame).Radius()
	return s
}

func (s *Ship) Kind() Kind     { return KindShip }
func (s *Ship) Category() Tags { return TagShips }
func (s *Ship) Destroys() Tags { return TagAsteroids | TagAliens }

// SetThrust turns the engine on or off.
func (s *Ship) SetThrust(on bool) {
	s.thrust = on
	if !on {
		s.flame = false
	}
}

func (s *Ship) SetTurnRight(on bool) { s.turnRight = on }
func (s *Ship) SetTurnLeft(on bool)  { s.turnLeft = on }

// Thrusting reports whether the engine is on.
func (s *Ship) Thrusting() bool { return s.thrust }

// Nose returns the world position bullets are fired from.
func (s *Ship) Nose() physics.Point {
	return s.TransformPoint(shipNose)
}

// Outline includes the flame on alternate turn ticks while thrusting.
func (s *Ship) Outline() physics.Shape {
	shape := shipOutline
	if s.flame {
		shape = shape.Append(shipFlame)
	}
	return shape.Transform(s.X, s.Y, s.Rotation)
}

// Move applies friction before integrating velocity.
func (s *Ship) Move() {
	s.ApplyFriction(s.ctx.Rules.ShipFriction)
	s.Base.Move()
}

// Spawned arms the turn/thrust cadence.
func (s *Ship) Spawned(c Controller) {
	c.Schedule(s, EventTurn, s.ctx.Rules.MovementDelay)
}

// CountdownComplete samples the control flags on each turn tick.
func (s *Ship) CountdownComplete(event Event, c Controller) {
	if event != EventTurn || s.Expired() {
		return
	}
	rules := s.ctx.Rules
	// Thrust pushes along the heading held before this tick's turn.
	if s.thrust {
		s.Accelerate(rules.ShipAcceleration, rules.SpeedLimit)
		s.flame = !s.flame
	} else {
		s.flame = false
	}
	if s.turnRight {
		s.Rotate(rules.TurnRadians)
	} else if s.turnLeft {
		s.Rotate(-rules.TurnRadians)
	}
	c.Schedule(s, EventTurn, rules.MovementDelay)
}

// CollidedWith destroys the ship on contact with asteroids and alien fire.
func (s *Ship) CollidedWith(other Participant, c Controller) {
	if s.Expired() || !DestroyedBy(s, other) {
		return
	}
	s.Expire()
	SpawnShipDebris(c, s.ctx, s.X, s.Y)
	c.ShipDestroyed()
}
