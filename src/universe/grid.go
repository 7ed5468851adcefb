package universe

import "github.com/pkg/errors"

type Cell bool

//Area is a read-only copy of the grid for viewers, Entities[y][x]
type Area struct {
	Width    int
	Height   int
	Entities [][]Cell
}

//Coord is the (x, y) grid position of a cell, (0, 0) is the bottom-left corner
type Coord struct {
	X int
	Y int
}

/*
	Grid owns the cell states of the universe.
	Cells are stored column by column: the list position of (x, y) is x*height + y,
	so moving right adds height and moving up adds 1.
	The grid also owns the population and generation counters.
*/
type Grid struct {
	width      int
	height     int
	cells      []Cell
	wrapped    bool
	population int
	generation int
}

//NewGrid allocates a grid with all cells dead and both counters at zero
func NewGrid(width int, height int) (*Grid, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, errors.Wrap(err, "[NewGrid]")
	}
	return &Grid{width: width, height: height, cells: make([]Cell, width*height)}, nil
}

func checkDimensions(width int, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "%d x %d", width, height)
	}
	return nil
}

func (g *Grid) Width() int { return g.width }

func (g *Grid) Height() int { return g.height }

//Len returns the number of cells
func (g *Grid) Len() int { return len(g.cells) }

func (g *Grid) Population() int { return g.population }

func (g *Grid) Generation() int { return g.generation }

func (g *Grid) Wrapped() bool { return g.wrapped }

//SetWrapped switches between toroidal and bounded topology, storage is not touched
func (g *Grid) SetWrapped(wrapped bool) { g.wrapped = wrapped }

//Index converts (x, y) to the list position
func (g *Grid) Index(x int, y int) (int, error) {
	if !g.inside(x, y) {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "[Index] (%d, %d) outside %d x %d", x, y, g.width, g.height)
	}
	return g.index(x, y), nil
}

//Coord converts the list position back to (x, y)
func (g *Grid) Coord(pos int) (Coord, error) {
	if pos < 0 || pos >= len(g.cells) {
		return Coord{}, errors.Wrapf(ErrIndexOutOfRange, "[Coord] position %d outside [0, %d)", pos, len(g.cells))
	}
	return g.coord(pos), nil
}

func (g *Grid) index(x int, y int) int { return x*g.height + y }

func (g *Grid) coord(pos int) Coord { return Coord{X: pos / g.height, Y: pos % g.height} }

func (g *Grid) inside(x int, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

//Alive returns the state of the cell at the list position
func (g *Grid) Alive(pos int) (bool, error) {
	if pos < 0 || pos >= len(g.cells) {
		return false, errors.Wrapf(ErrIndexOutOfRange, "[Alive] position %d outside [0, %d)", pos, len(g.cells))
	}
	return bool(g.cells[pos]), nil
}

//AliveAt returns the state of the cell at (x, y)
func (g *Grid) AliveAt(x int, y int) (bool, error) {
	pos, err := g.Index(x, y)
	if err != nil {
		return false, err
	}
	return bool(g.cells[pos]), nil
}

//Toggle flips the cell at the list position and moves the population counter with it
func (g *Grid) Toggle(pos int) error {
	if pos < 0 || pos >= len(g.cells) {
		return errors.Wrapf(ErrIndexOutOfRange, "[Toggle] position %d outside [0, %d)", pos, len(g.cells))
	}
	g.toggle(pos)
	return nil
}

//ToggleAt flips the cell at (x, y)
func (g *Grid) ToggleAt(x int, y int) error {
	pos, err := g.Index(x, y)
	if err != nil {
		return err
	}
	g.toggle(pos)
	return nil
}

func (g *Grid) toggle(pos int) {
	g.cells[pos] = !g.cells[pos]
	if g.cells[pos] {
		g.population++
	} else {
		g.population--
	}
}

//Resize drops every cell and allocates a dead grid of the new size, counters restart at zero
//the grid is not seeded
func (g *Grid) Resize(width int, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return errors.Wrap(err, "[Resize]")
	}
	g.width = width
	g.height = height
	g.cells = make([]Cell, width*height)
	g.population = 0
	g.generation = 0
	return nil
}

//Clear kills every cell and resets both counters, dimensions are kept
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = false
	}
	g.population = 0
	g.generation = 0
}

//LiveCells counts alive cells by walking the storage, used to cross-check the population counter
func (g *Grid) LiveCells() int {
	liveCells := 0
	for _, c := range g.cells {
		if c {
			liveCells++
		}
	}
	return liveCells
}

//Area copies the grid into rows for rendering
func (g *Grid) Area() Area {
	a := createArea(g.width, g.height)
	for pos, c := range g.cells {
		xy := g.coord(pos)
		a.Entities[xy.Y][xy.X] = c
	}
	return a
}

//createArea allocates the new area backed by one slice
func createArea(width int, height int) Area {
	area := Area{Width: width, Height: height, Entities: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range area.Entities {
		start := width * i
		area.Entities[i] = b[start : start+width : start+width]
	}
	return area
}
