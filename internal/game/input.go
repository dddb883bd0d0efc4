package game

import (
	"github.com/tomz197/asteroids-classic/internal/object"
)

// Key is a control the player can press.
type Key int

const (
	KeyThrust Key = iota
	KeyLeft
	KeyRight
	KeyFire
	KeyClearAsteroids // debug: destroy the whole field; needs a live ship
	KeyAddLife        // debug; needs a live ship
)

// KeyDown handles a key press. Keys that need a ship do nothing without one.
func (g *Game) KeyDown(k Key) {
	ship := g.Ship()
	switch k {
	case KeyThrust:
		if ship != nil && !ship.Thrusting() {
			ship.SetThrust(true)
			g.sound.Play(object.SoundThrust)
		}
	case KeyLeft:
		if ship != nil {
			ship.SetTurnLeft(true)
		}
	case KeyRight:
		if ship != nil {
			ship.SetTurnRight(true)
		}
	case KeyFire:
		g.fire()
	case KeyClearAsteroids:
		if ship != nil {
			g.registry.ClearAsteroids()
			g.AsteroidDestroyed()
		}
	case KeyAddLife:
		if ship != nil {
			g.lives++
			g.drawLives()
		}
	}
}

// KeyUp handles a key release.
func (g *Game) KeyUp(k Key) {
	ship := g.Ship()
	switch k {
	case KeyThrust:
		g.sound.Stop(object.SoundThrust)
		if ship != nil {
			ship.SetThrust(false)
		}
	case KeyLeft:
		if ship != nil {
			ship.SetTurnLeft(false)
		}
	case KeyRight:
		if ship != nil {
			ship.SetTurnRight(false)
		}
	}
}

// fire launches a bullet from the ship's nose unless the bullet limit is
// reached.
func (g *Game) fire() {
	ship := g.Ship()
	if ship == nil {
		return
	}
	if g.registry.Count(object.KindBullet) >= g.rules.BulletLimit {
		return
	}
	nose := ship.Nose()
	g.Spawn(object.NewBullet(g.ctx, nose.X, nose.Y, ship.Rotation))
	g.sound.Play(object.SoundFire)
}
