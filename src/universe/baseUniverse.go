package universe

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

//Options represents the Universe's configurable options
type Options struct {
	Width    int
	Height   int
	Interval time.Duration
	MaxSteps int
	Wrapped  bool
	Advanced map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	Changed       int //cells flipped by the last step
	IterationTime time.Duration
	Wrapped       bool
	StampSize     int
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 100
	DefHeight             = 100
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

var DefaultUniverseOptions = Options{
	Width:    DefWidth,
	Height:   DefHeight,
	Interval: DefSimulationInterval,
	MaxSteps: DefMaxSteps,
	Wrapped:  true,
}

var errRunCancelled = errors.New("run cancelled")

type command struct {
	fn   func() error
	done chan error
}

//BaseUniverse is the universe's engine host
//implements Universe interface
//the grid is owned by the main loop goroutine, every other goroutine reaches it through exec
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		Area
		sync.Mutex
	}
	grid       *Grid
	engine     Engine
	stamp      Stamp
	templates  *templateLibrary
	runID      int
	stateCh    chan Status
	views      []Viewer
	controlCh  chan command
	closeCh    chan struct{}
	loopDone   chan struct{}
	intervalCh chan struct{}
	closeOnce  sync.Once
}

//NewBaseUniverse creates the BaseUniverse instance with an empty grid
//e == nil selects the sequential engine
func NewBaseUniverse(o *Options, e Engine, stateCh chan Status) (*BaseUniverse, error) {
	if o == nil {
		d := DefaultUniverseOptions
		o = &d
	}
	if e == nil {
		e = NewSequentialEngine()
	}
	grid, err := NewGrid(o.Width, o.Height)
	if err != nil {
		return nil, errors.Wrap(err, "[NewBaseUniverse]")
	}
	grid.SetWrapped(o.Wrapped)

	u := BaseUniverse{
		options:    *o,
		grid:       grid,
		engine:     e,
		templates:  newTemplateLibrary(),
		controlCh:  make(chan command),
		closeCh:    make(chan struct{}),
		loopDone:   make(chan struct{}),
		intervalCh: make(chan struct{}, 1),
		stateCh:    stateCh,
	}
	u.options.Advanced = map[string]interface{}{"engine": e.Name()}
	for k, v := range o.Advanced {
		u.options.Advanced[k] = v
	}
	if me, ok := e.(*MultithreadedEngine); ok {
		u.options.Advanced["Workers"] = me.Workers()
	}
	for _, t := range BuiltinTemplates {
		if err := u.templates.add(t); err != nil {
			return nil, errors.Wrap(err, "[NewBaseUniverse]")
		}
	}
	u.syncState()
	go u.mainLoop()
	return &u, nil
}

//exec runs fn on the main loop and waits for its result
func (u *BaseUniverse) exec(fn func() error) error {
	c := command{fn: fn, done: make(chan error, 1)}
	select {
	case u.controlCh <- c:
	case <-u.loopDone:
		return ErrUniverseClosed
	}
	return <-c.done
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	defer close(u.loopDone)
	for {
		select {
		case cmd := <-u.controlCh:
			cmd.done <- cmd.fn()
		case <-u.closeCh:
			return
		}
	}
}

//AddTemplate adds the template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) error {
	return u.exec(func() error {
		return u.templates.add(tmpl)
	})
}

//Templates lists the registered templates in registration order
func (u *BaseUniverse) Templates() (list []Template) {
	_ = u.exec(func() error {
		list = u.templates.list()
		return nil
	})
	return
}

//SettleTemplate places the named template with its (0, 0) at x, y
func (u *BaseUniverse) SettleTemplate(name string, x int, y int) error {
	return u.mutate(func() error {
		s, err := u.templates.stamp(name)
		if err != nil {
			return errors.Wrap(err, "[SettleTemplate]")
		}
		return PlaceStamp(u.grid, Coord{x, y}, s)
	})
}

//LoadTemplate makes the named template the current stamp
func (u *BaseUniverse) LoadTemplate(name string) error {
	return u.mutate(func() error {
		s, err := u.templates.stamp(name)
		if err != nil {
			return errors.Wrap(err, "[LoadTemplate]")
		}
		u.stamp = s
		return nil
	})
}

//Seed flips n distinct random cells of the current grid
func (u *BaseUniverse) Seed(n int, rngSeed int64) error {
	return u.mutate(func() error {
		return u.grid.Seed(n, rngSeed)
	})
}

//Regenerate stops the simulation, rebuilds the grid with the new size and seeds it
//the seed points are drawn before the old grid is dropped, a failure leaves the universe as it was
func (u *BaseUniverse) Regenerate(width int, height int, seeds int, rngSeed int64) error {
	return u.mutate(func() error {
		next, err := NewGrid(width, height)
		if err != nil {
			return errors.Wrap(err, "[Regenerate]")
		}
		seedPoints, err := GenerateSeedPoints(next, seeds, newSeedRNG(rngSeed))
		if err != nil {
			return errors.Wrap(err, "[Regenerate]")
		}
		u.cancelRun()
		if err := u.grid.Resize(width, height); err != nil {
			return err
		}
		u.options.Width = width
		u.options.Height = height
		return ApplySeedPoints(u.grid, seedPoints)
	})
}

//SetInterval changes the pause between two steps of a run, a running loop picks it up on its next tick
func (u *BaseUniverse) SetInterval(interval time.Duration) error {
	if interval < 0 {
		return errors.Wrapf(ErrInvalidInterval, "[SetInterval] %v", interval)
	}
	return u.mutate(func() error {
		u.options.Interval = interval
		select {
		case u.intervalCh <- struct{}{}:
		default:
		}
		return nil
	})
}

//InverseCell inverses the cell state at point x, y
func (u *BaseUniverse) InverseCell(x int, y int) error {
	return u.mutate(func() error {
		return u.grid.ToggleAt(x, y)
	})
}

//CaptureStamp stores the live cells as the current stamp and returns its size
func (u *BaseUniverse) CaptureStamp() (size int, err error) {
	err = u.mutate(func() error {
		u.stamp = CaptureStamp(u.grid)
		size = u.stamp.Len()
		return nil
	})
	return
}

//PlaceStamp places the current stamp with its (0, 0) at x, y
func (u *BaseUniverse) PlaceStamp(x int, y int) error {
	return u.mutate(func() error {
		return PlaceStamp(u.grid, Coord{x, y}, u.stamp)
	})
}

//ClearStamp forgets the current stamp
func (u *BaseUniverse) ClearStamp() error {
	return u.mutate(func() error {
		u.stamp.Clear()
		return nil
	})
}

//SetWrapped switches the topology
func (u *BaseUniverse) SetWrapped(wrapped bool) error {
	return u.mutate(func() error {
		u.grid.SetWrapped(wrapped)
		u.options.Wrapped = wrapped
		return nil
	})
}

//AliveAt reads the cell from the last published area
func (u *BaseUniverse) AliveAt(x int, y int) (bool, error) {
	u.area.Lock()
	defer u.area.Unlock()
	if x < 0 || y < 0 || x >= u.area.Width || y >= u.area.Height {
		return false, errors.Wrapf(ErrIndexOutOfRange, "[AliveAt] (%d, %d) outside %d x %d", x, y, u.area.Width, u.area.Height)
	}
	return bool(u.area.Entities[y][x]), nil
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	_ = u.exec(func() error {
		u.views = append(u.views, v)
		return nil
	})
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() (o Options) {
	if err := u.exec(func() error {
		o = u.options
		return nil
	}); err != nil {
		o = u.options
	}
	return
}

//Area returns the last published copy of the grid
func (u *BaseUniverse) Area() Area {
	u.area.Lock()
	defer u.area.Unlock()
	return u.area.Area
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	_ = u.exec(u.run)
}

//Stop stops the universe simulation
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	_ = u.exec(u.stop)
}

//Step do one simulation step and returns when it is applied
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	_ = u.exec(func() error {
		u.step()
		return nil
	})
}

//Clear clears the universe (kill all cells and reset all counters)
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	_ = u.exec(u.clear)
}

//Close stops the main loop and waits until it exits
//must not be called from a Viewer's Refresh
func (u *BaseUniverse) Close() {
	u.closeOnce.Do(func() { close(u.closeCh) })
	<-u.loopDone
}

//mutate runs fn on the main loop and publishes the new state when it succeeds
func (u *BaseUniverse) mutate(fn func() error) error {
	return u.exec(func() error {
		if err := fn(); err != nil {
			return err
		}
		u.syncState()
		u.refreshView()
		return nil
	})
}

//syncState copies the grid counters and cells to the published state
func (u *BaseUniverse) syncState() {
	u.state.Lock()
	u.state.IterationNum = u.grid.Generation()
	u.state.LiveCells = u.grid.Population()
	u.state.Wrapped = u.grid.Wrapped()
	u.state.StampSize = u.stamp.Len()
	u.state.Unlock()

	a := u.grid.Area()
	u.area.Lock()
	u.area.Area = a
	u.area.Unlock()
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.closeCh: //nobody reads the statuses of a closing universe
		}
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() error {
	if u.state.RunningMode == RunningStateRun {
		return nil
	}
	u.runID++
	id := u.runID
	u.switchRunningState(RunningStateRun)
	go func() {
		for {
			var interval time.Duration
			err := u.exec(func() error {
				if u.runID != id || u.state.RunningMode != RunningStateRun {
					return errRunCancelled
				}
				u.step()
				interval = u.options.Interval
				return nil
			})
			if err != nil {
				return
			}
			if interval > 0 {
				select {
				case <-time.After(interval):
				case <-u.intervalCh: //the interval was changed, step now
				case <-u.closeCh:
					return
				}
			}
		}
	}()
	return nil
}

//cancelRun makes a running loop exit on its next tick and returns to the manual mode
func (u *BaseUniverse) cancelRun() {
	u.runID++
	if u.state.RunningMode != RunningStateManual {
		u.switchRunningState(RunningStateManual)
	}
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() error {
	u.cancelRun()
	return nil
}

//step does the new one state calculation for entire universe
//the generation is applied as a whole before any other command can run
func (u *BaseUniverse) step() {
	finished := false
	rm := u.state.RunningMode
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	defer func() {
		if finished {
			u.runID++
			u.switchRunningState(RunningStateFinished)
		} else {
			u.switchRunningState(rm)
		}
		u.refreshView()
	}()

	if u.options.MaxSteps != 0 && u.grid.Generation() >= u.options.MaxSteps {
		finished = true
		return
	}
	u.switchRunningState(RunningStateStep)
	start := time.Now()
	changed := u.grid.StepWith(u.engine)
	u.syncState()
	u.state.Lock()
	u.state.Changed = changed
	u.state.IterationTime = time.Since(start)
	u.state.Unlock()
	if u.grid.Population() == 0 || changed == 0 {
		finished = true
	}
}

//clear clears the universe data, reset all counters
func (u *BaseUniverse) clear() error {
	u.runID++
	u.grid.Clear()
	u.syncState()
	u.state.Lock()
	u.state.Changed = 0
	u.state.IterationTime = 0
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
	u.refreshView()
	return nil
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
