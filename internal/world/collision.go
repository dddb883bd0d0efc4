package world

import (
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Detector runs the per-tick collision pass. It keeps its scratch buffers
// between ticks.
type Detector struct {
	size  float64
	grid  *physics.SpatialGrid
	parts []object.Participant
	shape []physics.Shape
	ready []bool
	near  []int
}

// NewDetector returns a detector for a size×size arena.
func NewDetector(size float64) *Detector {
	return &Detector{size: size}
}

// Detect tests every unordered pair of live participants once, in insertion
// order, and calls CollidedWith on both members of each overlapping pair.
// A participant expired earlier in the pass takes no part in later pairs.
// It returns the number of overlapping pairs.
func (d *Detector) Detect(r *Registry, c object.Controller) int {
	r.begin()
	defer r.end()

	d.parts = d.parts[:0]
	maxRadius := 0.0
	for _, p := range r.live {
		if p.Expired() {
			continue
		}
		d.parts = append(d.parts, p)
		maxRadius = max(maxRadius, p.Radius())
	}
	if len(d.parts) < 2 {
		return 0
	}
	d.prepare(2 * maxRadius)

	hits := 0
	for i, a := range d.parts {
		if a.Expired() {
			continue
		}
		ba := a.Motion()
		d.near = d.grid.Neighbours(ba.X, ba.Y, d.near[:0])
		for _, j := range d.near {
			if j <= i {
				continue
			}
			if a.Expired() {
				break
			}
			b := d.parts[j]
			if b.Expired() {
				continue
			}
			bb := b.Motion()
			if !physics.CirclesOverlap(ba.X, ba.Y, a.Radius(), bb.X, bb.Y, b.Radius()) {
				continue
			}
			if !physics.Overlaps(d.outline(i), d.outline(j)) {
				continue
			}
			hits++
			a.CollidedWith(b, c)
			b.CollidedWith(a, c)
		}
	}
	return hits
}

// prepare fills the grid and resets the outline cache.
func (d *Detector) prepare(cell float64) {
	cell = max(cell, 1)
	if d.grid == nil || d.grid.CellSize() < cell {
		d.grid = physics.NewSpatialGrid(d.size, d.size, cell)
	} else {
		d.grid.Clear()
	}
	for i, p := range d.parts {
		b := p.Motion()
		d.grid.Insert(b.X, b.Y, i)
	}

	n := len(d.parts)
	if cap(d.shape) < n {
		d.shape = make([]physics.Shape, n)
		d.ready = make([]bool, n)
	}
	d.shape = d.shape[:n]
	d.ready = d.ready[:n]
	clear(d.ready)
}

// outline computes the world outline of part i on first use.
func (d *Detector) outline(i int) physics.Shape {
	if !d.ready[i] {
		d.shape[i] = d.parts[i].Outline()
		d.ready[i] = true
	}
	return d.shape[i]
}
