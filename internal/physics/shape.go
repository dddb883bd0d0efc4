package physics

import "math"

// Segment is a zero-area stroke. Segments are drawn but never collide.
type Segment struct {
	A, B Point
}

// Shape is an outline made of closed rings (areas) and open segments.
type Shape struct {
	Rings    [][]Point
	Segments []Segment
}

// Ring builds a closed ring from x,y pairs. It panics on an odd count, which
// can only come from a programming error in a fixed outline table.
func Ring(coords ...float64) []Point {
	if len(coords)%2 != 0 {
		panic("physics: Ring needs x,y pairs")
	}
	ring := make([]Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		ring = append(ring, Point{X: coords[i], Y: coords[i+1]})
	}
	return ring
}

// Polygon is a Shape holding a single ring.
func Polygon(coords ...float64) Shape {
	return Shape{Rings: [][]Point{Ring(coords...)}}
}

// Ellipse approximates an axis-aligned ellipse centred on the origin with n vertices.
func Ellipse(width, height float64, n int) Shape {
	if n < 3 {
		n = 3
	}
	ring := make([]Point, n)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = Point{X: math.Cos(a) * width / 2, Y: math.Sin(a) * height / 2}
	}
	return Shape{Rings: [][]Point{ring}}
}

// Line is a horizontal segment of the given length centred on the origin.
func Line(length float64) Shape {
	return Shape{Segments: []Segment{{
		A: Point{X: -length / 2},
		B: Point{X: length / 2},
	}}}
}

// Append returns a shape holding the parts of both s and o.
func (s Shape) Append(o Shape) Shape {
	out := Shape{
		Rings:    make([][]Point, 0, len(s.Rings)+len(o.Rings)),
		Segments: make([]Segment, 0, len(s.Segments)+len(o.Segments)),
	}
	out.Rings = append(append(out.Rings, s.Rings...), o.Rings...)
	out.Segments = append(append(out.Segments, s.Segments...), o.Segments...)
	return out
}

// Scale multiplies every coordinate by f.
func (s Shape) Scale(f float64) Shape {
	return s.mapPoints(func(p Point) Point {
		return Point{X: p.X * f, Y: p.Y * f}
	})
}

// Transform rotates the shape about the origin and then translates it to (x, y).
func (s Shape) Transform(x, y, rotation float64) Shape {
	sin, cos := math.Sincos(rotation)
	return s.mapPoints(func(p Point) Point {
		return Point{
			X: x + p.X*cos - p.Y*sin,
			Y: y + p.X*sin + p.Y*cos,
		}
	})
}

// Radius is the largest distance of any vertex from the origin. Computed on a
// local shape it bounds the outline at any rotation.
func (s Shape) Radius() float64 {
	r2 := 0.0
	visit := func(p Point) {
		if d := p.X*p.X + p.Y*p.Y; d > r2 {
			r2 = d
		}
	}
	for _, ring := range s.Rings {
		for _, p := range ring {
			visit(p)
		}
	}
	for _, seg := range s.Segments {
		visit(seg.A)
		visit(seg.B)
	}
	return math.Sqrt(r2)
}

// Empty reports whether the shape has no parts at all.
func (s Shape) Empty() bool {
	return len(s.Rings) == 0 && len(s.Segments) == 0
}

func (s Shape) mapPoints(fn func(Point) Point) Shape {
	out := Shape{
		Rings:    make([][]Point, len(s.Rings)),
		Segments: make([]Segment, len(s.Segments)),
	}
	for i, ring := range s.Rings {
		mapped := make([]Point, len(ring))
		for j, p := range ring {
			mapped[j] = fn(p)
		}
		out.Rings[i] = mapped
	}
	for i, seg := range s.Segments {
		out.Segments[i] = Segment{A: fn(seg.A), B: fn(seg.B)}
	}
	return out
}
