package universe

import "github.com/pkg/errors"

/*
	Engines compute the change-set of one generation: the list positions whose state flips.
	All neighbour counts are taken from the grid as it is before the step,
	the grid is only mutated once the whole change-set is known.
*/
type Engine interface {
	Name() string
	ChangeSet(g *Grid) []int
}

//SequentialEngine walks every cell in list order on the calling goroutine
type SequentialEngine struct{}

func NewSequentialEngine() Engine {
	return SequentialEngine{}
}

func (SequentialEngine) Name() string { return "sequential" }

func (SequentialEngine) ChangeSet(g *Grid) []int {
	return g.changeSet(0, len(g.cells), nil)
}

//nextState applies B3/S23 to one cell
func nextState(alive bool, liveNeighbours int) bool {
	if liveNeighbours == 3 {
		return true
	}
	return alive && liveNeighbours == 2
}

//changeSet appends the flipping positions of [from, to) to dst
func (g *Grid) changeSet(from int, to int, dst []int) []int {
	for pos := from; pos < to; pos++ {
		alive := bool(g.cells[pos])
		if nextState(alive, g.liveNeighbours(pos)) != alive {
			dst = append(dst, pos)
		}
	}
	return dst
}

//ComputeChangeSet returns the positions that flip in the next generation
func (g *Grid) ComputeChangeSet() []int {
	return SequentialEngine{}.ChangeSet(g)
}

//ApplyChangeSet flips every position of the change-set
//positions are checked first, an invalid one leaves the grid as it was
func (g *Grid) ApplyChangeSet(changes []int) error {
	for _, pos := range changes {
		if pos < 0 || pos >= len(g.cells) {
			return errors.Wrapf(ErrIndexOutOfRange, "[ApplyChangeSet] position %d outside [0, %d)", pos, len(g.cells))
		}
	}
	for _, pos := range changes {
		g.toggle(pos)
	}
	return nil
}

//Step advances one generation with the sequential engine
func (g *Grid) Step() int {
	return g.StepWith(SequentialEngine{})
}

//StepWith computes the change-set with e, applies it and counts the generation
//it returns the number of cells that flipped
func (g *Grid) StepWith(e Engine) int {
	changes := e.ChangeSet(g)
	for _, pos := range changes {
		g.toggle(pos)
	}
	g.generation++
	return len(changes)
}
