// Package physics provides the motion, shape and overlap primitives shared by
// every participant.
package physics

import "math"

// Point is a 2D coordinate. Local points are relative to a participant's origin,
// world points are arena coordinates with the origin at the top-left.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap. Touching circles count, so the
// check is safe as a broad phase in front of an inclusive shape test.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) <= minDist*minDist
}

// Wrap maps v into [0, size). Values that round up to size after wrapping from
// the negative side land just under size.
func Wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
		if v >= size {
			v = math.Nextafter(size, 0)
		}
	}
	return v
}
