package universe

import "github.com/pkg/errors"

//PositionClass tells where a cell sits relative to the grid border
type PositionClass int

const (
	Interior PositionClass = iota
	LeftEdge
	RightEdge
	BottomEdge
	TopEdge
	BottomLeftCorner
	TopLeftCorner
	BottomRightCorner
	TopRightCorner
)

var positionClassNames = map[PositionClass]string{
	Interior:          "interior",
	LeftEdge:          "left edge",
	RightEdge:         "right edge",
	BottomEdge:        "bottom edge",
	TopEdge:           "top edge",
	BottomLeftCorner:  "bottom-left corner",
	TopLeftCorner:     "top-left corner",
	BottomRightCorner: "bottom-right corner",
	TopRightCorner:    "top-right corner",
}

func (c PositionClass) String() string {
	if n, ok := positionClassNames[c]; ok {
		return n
	}
	return "unknown"
}

//moore holds the (dx, dy) of the eight neighbours, left is -height and up is +1 in list positions
var moore = [8]Coord{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

//Classify returns the position class of the list position
//the left column wins over the right one and the bottom row over the top one,
//which only matters for grids one or two cells wide or high
func (g *Grid) Classify(pos int) (PositionClass, error) {
	if pos < 0 || pos >= len(g.cells) {
		return Interior, errors.Wrapf(ErrIndexOutOfRange, "[Classify] position %d outside [0, %d)", pos, len(g.cells))
	}
	return g.classify(pos), nil
}

func (g *Grid) classify(pos int) PositionClass {
	yMax := g.height
	left := pos < yMax
	right := pos >= yMax*g.width-yMax
	bottom := pos%yMax == 0
	top := (pos+1)%yMax == 0

	switch {
	case left && bottom:
		return BottomLeftCorner
	case left && top:
		return TopLeftCorner
	case left:
		return LeftEdge
	case right && bottom:
		return BottomRightCorner
	case right && top:
		return TopRightCorner
	case right:
		return RightEdge
	case bottom:
		return BottomEdge
	case top:
		return TopEdge
	}
	return Interior
}

//resolve maps a possibly out of grid coordinate to a list position
//bounded grids report false outside, wrapped grids fold onto the opposite edge
func (g *Grid) resolve(x int, y int) (int, bool) {
	if g.wrapped {
		x = (x%g.width + g.width) % g.width
		y = (y%g.height + g.height) % g.height
		return g.index(x, y), true
	}
	if !g.inside(x, y) {
		return 0, false
	}
	return g.index(x, y), true
}

//Neighbours returns the distinct list positions of the Moore neighbourhood under the current topology
//the cell itself is never its own neighbour, even when a narrow wrapped grid folds back onto it
func (g *Grid) Neighbours(pos int) ([]int, error) {
	if pos < 0 || pos >= len(g.cells) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "[Neighbours] position %d outside [0, %d)", pos, len(g.cells))
	}
	var buf [8]int
	return append([]int(nil), g.neighbours(pos, &buf)...), nil
}

func (g *Grid) neighbours(pos int, buf *[8]int) []int {
	found := buf[:0]
	if g.classify(pos) == Interior {
		h := g.height
		return append(found, pos-h-1, pos-h, pos-h+1, pos-1, pos+1, pos+h-1, pos+h, pos+h+1)
	}
	xy := g.coord(pos)
	for _, d := range moore {
		n, ok := g.resolve(xy.X+d.X, xy.Y+d.Y)
		if !ok || n == pos || contains(found, n) {
			continue
		}
		found = append(found, n)
	}
	return found
}

func contains(list []int, v int) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

//NeighbourCount returns the number of live neighbours (0..8) of the list position
func (g *Grid) NeighbourCount(pos int) (int, error) {
	if pos < 0 || pos >= len(g.cells) {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "[NeighbourCount] position %d outside [0, %d)", pos, len(g.cells))
	}
	return g.liveNeighbours(pos), nil
}

func (g *Grid) liveNeighbours(pos int) int {
	var buf [8]int
	liveNeighbours := 0
	for _, n := range g.neighbours(pos, &buf) {
		if g.cells[n] {
			liveNeighbours++
		}
	}
	return liveNeighbours
}
