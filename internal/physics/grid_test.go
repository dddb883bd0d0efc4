package physics

import (
	"slices"
	"testing"
)

func TestGridNeighboursWrapAndDedupe(t *testing.T) {
	g := NewSpatialGrid(750, 750, 150)
	g.Insert(10, 10, 0)   // top-left cell
	g.Insert(740, 740, 1) // bottom-right cell, adjacent across both seams
	g.Insert(375, 375, 2) // centre, two cells away
	g.Insert(20, 30, 3)

	got := g.Neighbours(5, 5, nil)
	if want := []int{0, 1, 3}; !slices.Equal(got, want) {
		t.Errorf("neighbours = %v, want %v", got, want)
	}

	g.Clear()
	if got := g.Neighbours(5, 5, nil); len(got) != 0 {
		t.Errorf("after clear: %v", got)
	}
}

func TestGridNarrowWorldReportsOnce(t *testing.T) {
	g := NewSpatialGrid(100, 100, 60) // 2x2 cells: the 3x3 walk revisits cells
	g.Insert(10, 10, 0)
	g.Insert(90, 90, 1)

	got := g.Neighbours(10, 10, []int{7})
	if want := []int{7, 0, 1}; !slices.Equal(got, want) {
		t.Errorf("neighbours = %v, want %v", got, want)
	}
}
