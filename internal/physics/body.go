package physics

import "math"

// Body is the kinematic state of a participant: position, velocity and
// rotation. Velocity is stored as components; speed and direction are derived.
type Body struct {
	X, Y     float64 // Position
	VX, VY   float64 // Velocity per tick
	Rotation float64 // Facing, radians; 0 points right, positive turns clockwise on screen
}

// SetPosition places the body.
func (b *Body) SetPosition(x, y float64) {
	b.X = x
	b.Y = y
}

// SetVelocity sets the velocity from a speed and a direction angle.
func (b *Body) SetVelocity(speed, direction float64) {
	b.VX = math.Cos(direction) * speed
	b.VY = math.Sin(direction) * speed
}

// Speed is the velocity magnitude.
func (b *Body) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Direction is the velocity angle; zero for a body at rest.
func (b *Body) Direction() float64 {
	return math.Atan2(b.VY, b.VX)
}

// SetRotation sets the facing angle.
func (b *Body) SetRotation(angle float64) {
	b.Rotation = angle
}

// Rotate turns the body by delta radians.
func (b *Body) Rotate(delta float64) {
	b.Rotation += delta
}

// Accelerate adds amount along the current rotation. The resulting speed never
// exceeds limit.
func (b *Body) Accelerate(amount, limit float64) {
	b.VX += math.Cos(b.Rotation) * amount
	b.VY += math.Sin(b.Rotation) * amount

	speed := b.Speed()
	if speed > limit && speed > 0 {
		scale := limit / speed
		b.VX *= scale
		b.VY *= scale
	}
}

// ApplyFriction slows the body by |coefficient| without reversing it.
func (b *Body) ApplyFriction(coefficient float64) {
	friction := math.Abs(coefficient)
	speed := b.Speed()
	if speed <= friction {
		b.VX = 0
		b.VY = 0
		return
	}
	scale := (speed - friction) / speed
	b.VX *= scale
	b.VY *= scale
}

// Move advances the position by one tick of velocity and wraps it into the
// size×size arena.
func (b *Body) Move(size float64) {
	b.X = Wrap(b.X+b.VX, size)
	b.Y = Wrap(b.Y+b.VY, size)
}

// TransformPoint maps a local point through the body's rotation and position.
func (b *Body) TransformPoint(p Point) Point {
	sin, cos := math.Sincos(b.Rotation)
	return Point{
		X: b.X + p.X*cos - p.Y*sin,
		Y: b.Y + p.X*sin + p.Y*cos,
	}
}
