package object

import (
	"github.com/tomz197/asteroids-classic/internal/physics"
)

var (
	bulletOutline      = physics.Ellipse(1.5, 1.5, 6)
	alienBulletOutline = physics.Ellipse(3, 3, 8)
)

// Bullet is a projectile fired by the player or by the alien ship. It expires
// on its first destructive contact or when its lifetime runs out.
type Bullet struct {
	Base

	kind     Kind
	destroys Tags
}

// NewBullet creates a player bullet at (x, y) travelling in direction.
func NewBullet(ctx *Context, x, y, direction float64) *Bullet {
	return newBullet(ctx, KindBullet, bulletOutline, ctx.Rules.BulletSpeed, TagAsteroids|TagAliens, x, y, direction)
}

// NewAlienBullet creates an alien bullet, slightly slower than the player's.
func NewAlienBullet(ctx *Context, x, y, direction float64) *Bullet {
	return newBullet(ctx, KindAlienBullet, alienBulletOutline, ctx.Rules.BulletSpeed-1, TagShips|TagAsteroids, x, y, direction)
}

func newBullet(ctx *Context, kind Kind, shape physics.Shape, speed float64, destroys Tags, x, y, direction float64) *Bullet {
	b := &Bullet{
		Base:     newBase(ctx, shape),
		kind:     kind,
		destroys: destroys,
	}
	b.SetPosition(x, y)
	b.SetVelocity(speed, direction)
	return b
}

func (b *Bullet) Kind() Kind { return b.kind }

// Category is empty: nothing destroys a bullet, it only expires.
func (b *Bullet) Category() Tags { return 0 }
func (b *Bullet) Destroys() Tags { return b.destroys }

// Spawned arms the lifetime countdown.
func (b *Bullet) Spawned(c Controller) {
	c.Schedule(b, EventTimeout, b.ctx.Rules.BulletDuration)
}

// CollidedWith expires the bullet when it hits something it destroys.
func (b *Bullet) CollidedWith(other Participant, _ Controller) {
	if b.destroys.Has(other.Category()) {
		b.Expire()
	}
}

func (b *Bullet) CountdownComplete(event Event, _ Controller) {
	if event == EventTimeout {
		b.Expire()
	}
}
