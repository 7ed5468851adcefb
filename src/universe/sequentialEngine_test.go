package universe

import (
	"testing"

	"github.com/pkg/errors"
)

func TestNextState(t *testing.T) {
	for n := 0; n <= 8; n++ {
		if got := nextState(true, n); got != (n == 2 || n == 3) {
			t.Errorf("live cell with %d neighbours -> %v", n, got)
		}
		if got := nextState(false, n); got != (n == 3) {
			t.Errorf("dead cell with %d neighbours -> %v", n, got)
		}
	}
}

func TestLonelyCellDies(t *testing.T) {
	for _, wrapped := range []bool{false, true} {
		g := newTestGrid(t, 5, 5)
		g.SetWrapped(wrapped)
		settle(t, g, Coord{2, 2})
		if count, _ := g.NeighbourCount(g.index(2, 2)); count != 0 {
			t.Fatalf("lonely cell has %d neighbours", count)
		}
		g.Step()
		expectLive(t, g)
		if g.Population() != 0 || g.Generation() != 1 {
			t.Fatalf("population %d generation %d", g.Population(), g.Generation())
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	g.SetWrapped(true)
	settle(t, g, Coord{2, 1}, Coord{2, 2}, Coord{2, 3})

	g.Step()
	expectLive(t, g, Coord{1, 2}, Coord{2, 2}, Coord{3, 2})

	g.Step()
	expectLive(t, g, Coord{2, 1}, Coord{2, 2}, Coord{2, 3})
	if g.Generation() != 2 {
		t.Fatalf("generation %d, expected 2", g.Generation())
	}
}

func TestLTrominoBecomesBlock(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	settle(t, g, Coord{1, 1}, Coord{2, 1}, Coord{1, 2})
	g.Step()
	expectLive(t, g, Coord{1, 1}, Coord{2, 1}, Coord{1, 2}, Coord{2, 2})
	if changed := g.Step(); changed != 0 {
		t.Fatalf("block changed %d cells", changed)
	}
}

func TestBlockIsStill(t *testing.T) {
	for _, size := range []int{4, 5, 9} {
		for _, wrapped := range []bool{false, true} {
			g := newTestGrid(t, size, size)
			g.SetWrapped(wrapped)
			block := []Coord{{1, 1}, {2, 1}, {1, 2}, {2, 2}}
			settle(t, g, block...)
			for _, c := range block {
				if n, _ := g.NeighbourCount(g.index(c.X, c.Y)); n != 3 {
					t.Fatalf("block cell %v sees %d neighbours", c, n)
				}
			}
			for i := 0; i < 10; i++ {
				if changed := g.Step(); changed != 0 {
					t.Fatalf("%dx%d wrapped=%v block changed %d cells in generation %d", size, size, wrapped, changed, i)
				}
			}
			expectLive(t, g, block...)
		}
	}
}

func TestBirthNeedsExactlyThree(t *testing.T) {
	cases := []struct {
		name  string
		cells []Coord
		born  bool
	}{
		{"two", []Coord{{1, 1}, {3, 3}}, false},
		{"three", []Coord{{1, 1}, {3, 1}, {2, 3}}, true},
		{"four", []Coord{{1, 1}, {3, 1}, {1, 3}, {3, 3}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := newTestGrid(t, 5, 5)
			settle(t, g, c.cells...)
			target := g.index(2, 2)
			changes := g.ComputeChangeSet()
			if contains(changes, target) != c.born {
				t.Fatalf("change-set %v, birth of (2, 2) expected %v", coordsOf(g, changes), c.born)
			}
			g.Step()
			if alive, _ := g.Alive(target); alive != c.born {
				t.Fatalf("(2, 2) alive=%v after step", alive)
			}
		})
	}
}

func TestComputeChangeSetDoesNotMutate(t *testing.T) {
	g := newTestGrid(t, 10, 8)
	g.SetWrapped(true)
	if err := g.Seed(30, 3); err != nil {
		t.Fatal(err)
	}
	before := liveSet(g)
	population := g.Population()
	changes := g.ComputeChangeSet()
	if len(changes) == 0 {
		t.Fatal("random soup should change")
	}
	after := liveSet(g)
	if len(before) != len(after) || g.Population() != population || g.Generation() != 0 {
		t.Fatal("computing the change-set mutated the grid")
	}
	for c := range before {
		if !after[c] {
			t.Fatalf("cell %v changed", c)
		}
	}
}

func TestApplyChangeSet(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	settle(t, g, Coord{2, 1}, Coord{2, 2}, Coord{2, 3})
	changes := g.ComputeChangeSet()
	if err := g.ApplyChangeSet(changes); err != nil {
		t.Fatal(err)
	}
	expectLive(t, g, Coord{1, 2}, Coord{2, 2}, Coord{3, 2})
	if g.Generation() != 0 {
		t.Fatal("applying a change-set alone must not count a generation")
	}

	if err := g.ApplyChangeSet([]int{0, 1, 25}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("ApplyChangeSet with 25 error = %v", err)
	}
	expectLive(t, g, Coord{1, 2}, Coord{2, 2}, Coord{3, 2})
}

func TestGliderWrapsAround(t *testing.T) {
	g := newTestGrid(t, 8, 8)
	g.SetWrapped(true)
	s, err := BuiltinTemplates[0].Stamp()
	if err != nil {
		t.Fatal(err)
	}
	if err := PlaceStamp(g, Coord{2, 2}, s); err != nil {
		t.Fatal(err)
	}
	start := liveSet(g)
	for i := 0; i < 32; i++ {
		g.Step()
		if g.Population() != 5 {
			t.Fatalf("glider population %d in generation %d", g.Population(), g.Generation())
		}
	}
	end := liveSet(g)
	for c := range start {
		if !end[c] {
			t.Fatalf("glider did not return to its start after 32 generations, %v missing", c)
		}
	}
}

func TestPopulationMatchesGrid(t *testing.T) {
	for _, wrapped := range []bool{false, true} {
		g := newTestGrid(t, 20, 15)
		g.SetWrapped(wrapped)
		if err := g.Seed(120, 42); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 40; i++ {
			g.Step()
			if g.Population() != g.LiveCells() {
				t.Fatalf("wrapped=%v generation %d: population %d, live cells %d", wrapped, g.Generation(), g.Population(), g.LiveCells())
			}
		}
		if g.Generation() != 40 {
			t.Fatalf("generation %d, expected 40", g.Generation())
		}
	}
}
