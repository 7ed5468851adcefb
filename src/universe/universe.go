package universe

import (
	"sort"
	"time"
)

//Universe is the surface offered to the hosts
//every call is executed by the universe's control loop, one at a time
type Universe interface {
	Status() Status
	Options() Options
	Area() Area
	StateCh() chan Status
	AliveAt(x int, y int) (bool, error)
	AddTemplate(tmpl Template) error
	Templates() []Template
	SettleTemplate(name string, x int, y int) error
	LoadTemplate(name string) error
	Seed(n int, rngSeed int64) error
	Regenerate(width int, height int, seeds int, rngSeed int64) error
	InverseCell(x int, y int) error
	CaptureStamp() (int, error)
	PlaceStamp(x int, y int) error
	ClearStamp() error
	SetWrapped(wrapped bool) error
	SetInterval(interval time.Duration) error
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

//Engines maps the engine names to their constructors, workers is used by the multithreaded engine only
var Engines = map[string]func(workers int) Engine{
	"sequential": func(int) Engine {
		return NewSequentialEngine()
	},
	"multithreaded": NewMultithreadedEngine,
}

//EngineNames returns the sorted engine names
func EngineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(Engines))
	for k := range Engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}
