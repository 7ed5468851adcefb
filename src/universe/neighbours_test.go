package universe

import (
	"sort"
	"testing"

	"github.com/pkg/errors"
)

func TestClassifyCounts(t *testing.T) {
	g := newTestGrid(t, 5, 4)
	counts := map[PositionClass]int{}
	for pos := 0; pos < g.Len(); pos++ {
		c, err := g.Classify(pos)
		if err != nil {
			t.Fatal(err)
		}
		counts[c]++
	}
	expects := map[PositionClass]int{
		BottomLeftCorner:  1,
		TopLeftCorner:     1,
		BottomRightCorner: 1,
		TopRightCorner:    1,
		LeftEdge:          2,
		RightEdge:         2,
		BottomEdge:        3,
		TopEdge:           3,
		Interior:          6,
	}
	for c, n := range expects {
		if counts[c] != n {
			t.Errorf("%v: %d cells, expected %d", c, counts[c], n)
		}
	}
}

//every position falls in exactly the class its coordinates describe
func TestClassifyMatchesCoordinates(t *testing.T) {
	for _, d := range [][2]int{{2, 2}, {3, 3}, {5, 4}, {4, 9}} {
		g := newTestGrid(t, d[0], d[1])
		for pos := 0; pos < g.Len(); pos++ {
			xy := g.coord(pos)
			left, right := xy.X == 0, xy.X == g.Width()-1
			bottom, top := xy.Y == 0, xy.Y == g.Height()-1
			var expected PositionClass
			switch {
			case left && bottom:
				expected = BottomLeftCorner
			case left && top:
				expected = TopLeftCorner
			case left:
				expected = LeftEdge
			case right && bottom:
				expected = BottomRightCorner
			case right && top:
				expected = TopRightCorner
			case right:
				expected = RightEdge
			case bottom:
				expected = BottomEdge
			case top:
				expected = TopEdge
			default:
				expected = Interior
			}
			if c := g.classify(pos); c != expected {
				t.Fatalf("%dx%d %v classified %v, expected %v", d[0], d[1], xy, c, expected)
			}
		}
	}
}

func TestClassifyOutOfRange(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	if _, err := g.Classify(9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Classify(9) error = %v", err)
	}
}

func coordsOf(g *Grid, positions []int) []Coord {
	coords := make([]Coord, 0, len(positions))
	for _, p := range positions {
		coords = append(coords, g.coord(p))
	}
	sortCoords(coords)
	return coords
}

func sortCoords(coords []Coord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].X != coords[j].X {
			return coords[i].X < coords[j].X
		}
		return coords[i].Y < coords[j].Y
	})
}

func equalCoords(a []Coord, b []Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWrappedNeighboursPerClass(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	g.SetWrapped(true)
	cases := []struct {
		class PositionClass
		cell  Coord
		want  []Coord
	}{
		{BottomLeftCorner, Coord{0, 0}, []Coord{{4, 4}, {4, 0}, {4, 1}, {0, 4}, {0, 1}, {1, 4}, {1, 0}, {1, 1}}},
		{TopLeftCorner, Coord{0, 4}, []Coord{{4, 3}, {4, 4}, {4, 0}, {0, 3}, {0, 0}, {1, 3}, {1, 4}, {1, 0}}},
		{LeftEdge, Coord{0, 2}, []Coord{{4, 1}, {4, 2}, {4, 3}, {0, 1}, {0, 3}, {1, 1}, {1, 2}, {1, 3}}},
		{BottomRightCorner, Coord{4, 0}, []Coord{{3, 4}, {3, 0}, {3, 1}, {4, 4}, {4, 1}, {0, 4}, {0, 0}, {0, 1}}},
		{TopRightCorner, Coord{4, 4}, []Coord{{3, 3}, {3, 4}, {3, 0}, {4, 3}, {4, 0}, {0, 3}, {0, 4}, {0, 0}}},
		{RightEdge, Coord{4, 2}, []Coord{{3, 1}, {3, 2}, {3, 3}, {4, 1}, {4, 3}, {0, 1}, {0, 2}, {0, 3}}},
		{BottomEdge, Coord{2, 0}, []Coord{{1, 4}, {1, 0}, {1, 1}, {2, 4}, {2, 1}, {3, 4}, {3, 0}, {3, 1}}},
		{TopEdge, Coord{2, 4}, []Coord{{1, 3}, {1, 4}, {1, 0}, {2, 3}, {2, 0}, {3, 3}, {3, 4}, {3, 0}}},
		{Interior, Coord{2, 2}, []Coord{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 3}, {3, 1}, {3, 2}, {3, 3}}},
	}
	for _, c := range cases {
		t.Run(c.class.String(), func(t *testing.T) {
			pos := g.index(c.cell.X, c.cell.Y)
			if got := g.classify(pos); got != c.class {
				t.Fatalf("%v classified %v", c.cell, got)
			}
			n, err := g.Neighbours(pos)
			if err != nil {
				t.Fatal(err)
			}
			want := append([]Coord(nil), c.want...)
			sortCoords(want)
			if got := coordsOf(g, n); !equalCoords(got, want) {
				t.Fatalf("neighbours of %v = %v, expected %v", c.cell, got, want)
			}

			//only the expected neighbours are alive, every one of them must be counted
			g.Clear()
			settle(t, g, c.want...)
			if count, _ := g.NeighbourCount(pos); count != 8 {
				t.Fatalf("live neighbours of %v = %d, expected 8", c.cell, count)
			}
			g.Clear()
		})
	}
}

func TestBoundedNeighbourCountsOnFullGrid(t *testing.T) {
	g := newTestGrid(t, 6, 4)
	for pos := 0; pos < g.Len(); pos++ {
		g.toggle(pos)
	}
	expects := map[PositionClass]int{
		BottomLeftCorner:  3,
		TopLeftCorner:     3,
		BottomRightCorner: 3,
		TopRightCorner:    3,
		LeftEdge:          5,
		RightEdge:         5,
		BottomEdge:        5,
		TopEdge:           5,
		Interior:          8,
	}
	for pos := 0; pos < g.Len(); pos++ {
		count, err := g.NeighbourCount(pos)
		if err != nil {
			t.Fatal(err)
		}
		c := g.classify(pos)
		if count != expects[c] {
			t.Fatalf("bounded %v (%v) counted %d, expected %d", g.coord(pos), c, count, expects[c])
		}
	}

	g.SetWrapped(true)
	for pos := 0; pos < g.Len(); pos++ {
		if count, _ := g.NeighbourCount(pos); count != 8 {
			t.Fatalf("wrapped %v counted %d, expected 8", g.coord(pos), count)
		}
	}
}

//referenceNeighbours derives adjacency from the toroidal or plain distance of every other cell
func referenceNeighbours(g *Grid, pos int) []Coord {
	a := g.coord(pos)
	var ref []Coord
	for other := 0; other < g.Len(); other++ {
		if other == pos {
			continue
		}
		b := g.coord(other)
		dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
		if g.Wrapped() {
			dx = min(dx, g.Width()-dx)
			dy = min(dy, g.Height()-dy)
		}
		if dx <= 1 && dy <= 1 {
			ref = append(ref, b)
		}
	}
	sortCoords(ref)
	return ref
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestNeighboursMatchReference(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 2}, {2, 1}, {1, 5}, {5, 1}, {2, 2}, {2, 3}, {3, 2}, {3, 3}, {4, 4}, {6, 5}, {7, 3}}
	for _, d := range sizes {
		for _, wrapped := range []bool{false, true} {
			g := newTestGrid(t, d[0], d[1])
			g.SetWrapped(wrapped)
			for pos := 0; pos < g.Len(); pos++ {
				n, err := g.Neighbours(pos)
				if err != nil {
					t.Fatal(err)
				}
				got := coordsOf(g, n)
				if want := referenceNeighbours(g, pos); !equalCoords(got, want) {
					t.Fatalf("%dx%d wrapped=%v neighbours of %v = %v, expected %v", d[0], d[1], wrapped, g.coord(pos), got, want)
				}
			}
		}
	}
}

func TestDegenerateGridsNeverCountTwice(t *testing.T) {
	cases := []struct {
		w, h    int
		wrapped bool
		count   int
	}{
		{1, 1, true, 0},
		{1, 1, false, 0},
		{2, 2, true, 3},
		{2, 2, false, 3},
		{1, 3, true, 2},
		{3, 1, true, 2},
		{2, 5, true, 5},
	}
	for _, c := range cases {
		g := newTestGrid(t, c.w, c.h)
		g.SetWrapped(c.wrapped)
		for pos := 0; pos < g.Len(); pos++ {
			g.toggle(pos)
		}
		for pos := 0; pos < g.Len(); pos++ {
			if count, _ := g.NeighbourCount(pos); count != c.count {
				t.Fatalf("%dx%d wrapped=%v full grid %v counted %d, expected %d", c.w, c.h, c.wrapped, g.coord(pos), count, c.count)
			}
		}
	}
}

func TestWrappedNeighbourSymmetry(t *testing.T) {
	for _, d := range [][2]int{{3, 3}, {4, 5}, {6, 3}, {8, 8}} {
		g := newTestGrid(t, d[0], d[1])
		g.SetWrapped(true)
		for a := 0; a < g.Len(); a++ {
			na, _ := g.Neighbours(a)
			if len(na) != 8 {
				t.Fatalf("%dx%d %v has %d wrapped neighbours", d[0], d[1], g.coord(a), len(na))
			}
			for _, b := range na {
				nb, _ := g.Neighbours(b)
				if !contains(nb, a) {
					t.Fatalf("%dx%d %v is a neighbour of %v but not the other way round", d[0], d[1], g.coord(b), g.coord(a))
				}
			}
		}
	}
}

func TestInteriorCountsAgreeAcrossTopologies(t *testing.T) {
	g := newTestGrid(t, 12, 9)
	if err := g.Seed(50, 7); err != nil {
		t.Fatal(err)
	}
	for pos := 0; pos < g.Len(); pos++ {
		if g.classify(pos) != Interior {
			continue
		}
		g.SetWrapped(false)
		bounded, _ := g.NeighbourCount(pos)
		g.SetWrapped(true)
		wrapped, _ := g.NeighbourCount(pos)
		if bounded != wrapped {
			t.Fatalf("interior %v: bounded %d, wrapped %d", g.coord(pos), bounded, wrapped)
		}
	}
}

func TestNeighbourCountOutOfRange(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	if _, err := g.NeighbourCount(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("NeighbourCount(-1) error = %v", err)
	}
	if _, err := g.Neighbours(9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Neighbours(9) error = %v", err)
	}
}
