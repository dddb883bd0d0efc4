// Package draw renders the arena to a character terminal using half-block
// glyphs, which give each cell two square-ish pixels.
package draw

import (
	"math"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Block glyphs used by Render.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a pixel buffer covering a square arena, scaled uniformly to the
// largest square that fits the terminal and centred in it.
type Canvas struct {
	cols, rows int
	pixels     []bool // [py*cols + px], rows*2 pixel rows

	arena      float64
	scale      float64 // pixels per arena unit
	offX, offY float64 // pixel position of the arena origin

	// Arena bounds in pixels, max exclusive.
	minX, minY, maxX, maxY int
}

// NewCanvas returns a canvas for a cols×rows terminal showing an arena of
// the given side length.
func NewCanvas(cols, rows int, arena float64) *Canvas {
	c := &Canvas{arena: arena}
	c.Resize(cols, rows)
	return c
}

// Resize adapts the canvas to new terminal dimensions. The pixel buffer is
// reallocated only when the size actually changed.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols != c.cols || rows != c.rows || c.pixels == nil {
		c.pixels = make([]bool, cols*rows*2)
		c.cols, c.rows = cols, rows
	}

	w, h := float64(cols), float64(rows*2)
	c.scale = min(w, h) / c.arena
	side := c.arena * c.scale
	c.offX = math.Floor((w - side) / 2)
	c.offY = math.Floor((h - side) / 2)

	c.minX, c.minY = int(c.offX), int(c.offY)
	c.maxX = min(int(math.Ceil(c.offX+side)), cols)
	c.maxY = min(int(math.Ceil(c.offY+side)), rows*2)
}

// Size is the terminal size the canvas was last laid out for.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Clear switches every pixel off.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Floor(c.offX + x*c.scale)), int(math.Floor(c.offY + y*c.scale))
}

// setPixel clips to the arena so wrapped shapes never bleed into the margins.
func (c *Canvas) setPixel(px, py int) {
	if px < c.minX || px >= c.maxX || py < c.minY || py >= c.maxY {
		return
	}
	c.pixels[py*c.cols+px] = true
}

// Set lights the pixel under an arena coordinate.
func (c *Canvas) Set(x, y float64) {
	c.setPixel(c.toPixel(x, y))
}

// Line draws a segment between two arena coordinates using Bresenham's
// algorithm in pixel space.
func (c *Canvas) Line(a, b physics.Point) {
	x1, y1 := c.toPixel(a.X, a.Y)
	x2, y2 := c.toPixel(b.X, b.Y)

	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Shape strokes every ring (closed) and segment of a world-space outline.
func (c *Canvas) Shape(s physics.Shape) {
	for _, ring := range s.Rings {
		n := len(ring)
		if n == 1 {
			c.Set(ring[0].X, ring[0].Y)
			continue
		}
		for i := range n {
			c.Line(ring[i], ring[(i+1)%n])
		}
	}
	for _, seg := range s.Segments {
		c.Line(seg.A, seg.B)
	}
}

// Cell maps an arena coordinate to a 1-based terminal column and row, for
// placing text over the drawing.
func (c *Canvas) Cell(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

// Bounds is the 1-based cell rectangle covered by the arena, inclusive.
func (c *Canvas) Bounds() (left, top, right, bottom int) {
	return c.minX + 1, c.minY/2 + 1, c.maxX, (c.maxY-1)/2 + 1
}

// Render writes every lit cell. Unlit cells are skipped; the caller clears
// the screen first.
func (c *Canvas) Render(f *Frame) {
	for row := range c.rows {
		top := row * 2 * c.cols
		bottom := top + c.cols
		for col := range c.cols {
			var ch rune
			switch up, down := c.pixels[top+col], c.pixels[bottom+col]; {
			case up && down:
				ch = BlockFull
			case up:
				ch = BlockUpperHalf
			case down:
				ch = BlockLowerHalf
			default:
				continue
			}
			f.MoveCursor(col+1, row+1)
			f.WriteRune(ch)
		}
	}
}

// Border frames the arena with box-drawing lines where the terminal leaves a
// margin for them.
func (c *Canvas) Border(f *Frame) {
	left, top, right, bottom := c.Bounds()
	hasSides := left > 1 && right < c.cols
	hasEnds := top > 1 && bottom < c.rows

	if hasEnds {
		for col := left; col <= right; col++ {
			f.WriteAt(col, top-1, "─")
			f.WriteAt(col, bottom+1, "─")
		}
	}
	if hasSides {
		for row := top; row <= bottom; row++ {
			f.WriteAt(left-1, row, "│")
			f.WriteAt(right+1, row, "│")
		}
	}
	if hasSides && hasEnds {
		f.WriteAt(left-1, top-1, "┌")
		f.WriteAt(right+1, top-1, "┐")
		f.WriteAt(left-1, bottom+1, "└")
		f.WriteAt(right+1, bottom+1, "┘")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
