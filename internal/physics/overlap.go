package physics

// Overlaps reports whether the areas of two world-space shapes intersect.
// Only rings have area; segments are ignored. Shapes that merely touch along an
// edge or at a vertex are treated as overlapping.
func Overlaps(a, b Shape) bool {
	for _, ra := range a.Rings {
		for _, rb := range b.Rings {
			if ringsOverlap(ra, rb) {
				return true
			}
		}
	}
	return false
}

// ringsOverlap handles concave rings: either some pair of edges intersects or
// one ring lies entirely inside the other.
func ringsOverlap(a, b []Point) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}

	for i := range a {
		a1, a2 := a[i], a[(i+1)%len(a)]
		for j := range b {
			if segmentsIntersect(a1, a2, b[j], b[(j+1)%len(b)]) {
				return true
			}
		}
	}

	// No edge crossings: overlap means containment, so one vertex decides.
	return ContainsPoint(b, a[0]) || ContainsPoint(a, b[0])
}

// ContainsPoint is the even-odd ray test for a closed ring.
func ContainsPoint(ring []Point, p Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			x := pj.X + (p.Y-pj.Y)*(pi.X-pj.X)/(pi.Y-pj.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func orientation(p, q, r Point) int {
	v := (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// onSegment assumes p, q, r are collinear and checks whether r lies on pq.
func onSegment(p, q, r Point) bool {
	return min(p.X, q.X) <= r.X && r.X <= max(p.X, q.X) &&
		min(p.Y, q.Y) <= r.Y && r.Y <= max(p.Y, q.Y)
}

func segmentsIntersect(p1, p2, q1, q2 Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	switch {
	case o1 == 0 && onSegment(p1, p2, q1):
		return true
	case o2 == 0 && onSegment(p1, p2, q2):
		return true
	case o3 == 0 && onSegment(q1, q2, p1):
		return true
	case o4 == 0 && onSegment(q1, q2, p2):
		return true
	}
	return false
}
