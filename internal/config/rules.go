package config

import (
	"math"
	"time"
)

// Rules is the fixed constant table that governs the simulation.
// Every component receives it through object.Context rather than reading globals.
type Rules struct {
	// Arena
	Size          float64       // Width and height of the square arena
	FrameInterval time.Duration // Time between ticks
	EdgeOffset    float64       // Distance from the edges of newly placed asteroids
	EndDelay      time.Duration // Pause between a life ending and the next screen

	// Ship
	SpeedLimit       float64
	ShipAcceleration float64
	ShipFriction     float64 // Negative by convention
	TurnRadians      float64
	MovementDelay    time.Duration // Cadence of the ship's turn/thrust updates
	InitialLives     int

	// Bullets
	BulletSpeed    float64
	BulletDuration time.Duration
	BulletLimit    int

	// Asteroids, indexed by size: 0 small, 1 medium, 2 large
	AsteroidScale    [3]float64
	AsteroidScore    [3]int
	AsteroidMaxSpeed [3]float64

	// Alien ships, indexed by size: 0 small, 1 large
	AlienScale         [2]float64
	AlienScore         [2]int
	AlienSpeed         float64 // Speed of the small ship; large ships are 3 slower
	AlienHeadings      [2]float64
	AlienDelay         time.Duration // Spawn delay after a level starts or an alien dies
	AlienMovementDelay time.Duration
	AlienShotDelay     time.Duration

	// Beat
	InitialBeat time.Duration
	FastestBeat time.Duration
	BeatDelta   time.Duration

	// Debris
	DebrisDuration time.Duration
	DebrisMinSpeed float64
	DebrisMaxSpeed float64

	// Lives indicator layout
	LabelOffset    float64
	LifeWidth      float64
	LifeHeight     float64
	LifeSeparation float64
}

// DefaultRules returns the classic arcade constants.
func DefaultRules() *Rules {
	return &Rules{
		Size:          750,
		FrameInterval: 33 * time.Millisecond,
		EdgeOffset:    150,
		EndDelay:      2500 * time.Millisecond,

		SpeedLimit:       10,
		ShipAcceleration: 0.25,
		ShipFriction:     -0.10,
		TurnRadians:      math.Pi / 70,
		MovementDelay:    5 * time.Millisecond,
		InitialLives:     3,

		BulletSpeed:    17,
		BulletDuration: 1000 * time.Millisecond,
		BulletLimit:    8,

		AsteroidScale:    [3]float64{0.5, 1.0, 2.0},
		AsteroidScore:    [3]int{100, 50, 20},
		AsteroidMaxSpeed: [3]float64{8, 5, 3},

		AlienScale:         [2]float64{0.5, 1.0},
		AlienScore:         [2]int{1000, 200},
		AlienSpeed:         8,
		AlienHeadings:      [2]float64{math.Pi, 0},
		AlienDelay:         5000 * time.Millisecond,
		AlienMovementDelay: 1000 * time.Millisecond,
		AlienShotDelay:     3000 * time.Millisecond,

		InitialBeat: 900 * time.Millisecond,
		FastestBeat: 300 * time.Millisecond,
		BeatDelta:   9 * time.Millisecond,

		DebrisDuration: 2000 * time.Millisecond,
		DebrisMinSpeed: 1,
		DebrisMaxSpeed: 3,

		LabelOffset:    30,
		LifeWidth:      12,
		LifeHeight:     22,
		LifeSeparation: 20,
	}
}

// Center returns the middle of the arena.
func (r *Rules) Center() (x, y float64) {
	return r.Size / 2, r.Size / 2
}
