package universe

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

/*
	Engine with multithreaded computation algorithm
	the grid is split into strips of whole columns, each strip is computed by an individual goroutine.
	Goroutines only read the grid, the strips are joined in list order
	so the result equals the one of the sequential engine.
*/

const (
	DefMinColumnsPerWorker = 3 //minimum columns for one worker
)

type MultithreadedEngine struct {
	workers int
}

//workArea describes the list positions [from, to) handled by one worker
type workArea struct {
	from    int
	to      int
	changes []int
}

//NewMultithreadedEngine creates the engine, workers <= 0 means one worker per CPU
func NewMultithreadedEngine(workers int) Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &MultithreadedEngine{workers: workers}
}

func (me *MultithreadedEngine) Name() string { return "multithreaded" }

func (me *MultithreadedEngine) Workers() int { return me.workers }

//ChangeSet computes every work area concurrently and joins the results
func (me *MultithreadedEngine) ChangeSet(g *Grid) []int {
	workAreas := me.workAreas(g)
	var eg errgroup.Group
	for i := range workAreas {
		wa := &workAreas[i]
		eg.Go(func() error {
			wa.changes = g.changeSet(wa.from, wa.to, nil)
			return nil
		})
	}
	_ = eg.Wait()

	total := 0
	for _, wa := range workAreas {
		total += len(wa.changes)
	}
	changes := make([]int, 0, total)
	for _, wa := range workAreas {
		changes = append(changes, wa.changes...)
	}
	return changes
}

//workAreas splits the grid columns between the workers
func (me *MultithreadedEngine) workAreas(g *Grid) []workArea {
	columnsPerWorker := g.width / me.workers
	if columnsPerWorker < DefMinColumnsPerWorker {
		columnsPerWorker = DefMinColumnsPerWorker
	} else if columnsPerWorker*me.workers < g.width {
		columnsPerWorker++
	}
	workAreas := make([]workArea, 0, me.workers)
	for x1 := 0; x1 < g.width; x1 += columnsPerWorker {
		x2 := x1 + columnsPerWorker
		if x2 > g.width {
			x2 = g.width
		}
		workAreas = append(workAreas, workArea{from: x1 * g.height, to: x2 * g.height})
	}
	return workAreas
}
