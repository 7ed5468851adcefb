package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"lifegrid/src/config"
	"lifegrid/src/universe"
	"lifegrid/src/view"
)

//EnvOptions are the host options which are not part of the configuration file
type EnvOptions struct {
	configPath  string
	interactive bool
	bounded     bool
	template    string
	anchorX     int
	anchorY     int
}

func main() {
	eo, cfg, err := initOptions()
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	var stateCh chan universe.Status

	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u, err := newUniverse(eo, cfg, stateCh)
	if err != nil {
		log.Fatalln(aurora.Red(err.Error()))
	}

	if eo.interactive {
		v := view.NewViewTerminal(cfg.Seeds, cfg.RngSeed)
		u.RegisterViewer(v)
		v.Start()
		u.Close()
	} else {
		v := view.NewConsoleOut(10)
		u.RegisterViewer(v)
		v.Start()

		startTime := time.Now()
		u.Run()
		for {
			st := <-stateCh
			if st.RunningMode == universe.RunningStateFinished {
				log.Printf("finished in %v", time.Since(startTime).Round(time.Millisecond))
				break
			}
		}
		u.Close()
		close(stateCh)
	}
}

//newUniverse builds the universe from the configuration and settles the initial population
func newUniverse(eo *EnvOptions, cfg config.Config, stateCh chan universe.Status) (*universe.BaseUniverse, error) {
	engine, err := cfg.NewEngine()
	if err != nil {
		return nil, err
	}
	u, err := universe.NewBaseUniverse(cfg.UniverseOptions(), engine, stateCh)
	if err != nil {
		return nil, err
	}
	templates, err := cfg.UniverseTemplates()
	if err != nil {
		u.Close()
		return nil, err
	}
	for _, t := range templates {
		if err := u.AddTemplate(t); err != nil {
			u.Close()
			return nil, err
		}
	}
	//seeds toggle cells, so they go onto the dead grid before the template is placed
	if err := u.Seed(cfg.Seeds, cfg.RngSeed); err != nil {
		u.Close()
		return nil, errors.Wrap(err, "seeding")
	}
	if eo.template != "" {
		if err := u.SettleTemplate(eo.template, eo.anchorX, eo.anchorY); err != nil {
			u.Close()
			return nil, errors.Wrapf(err, "settling template %q", eo.template)
		}
	}
	return u, nil
}

//unset marks a numeric flag which was not given on the command line
const unset = -1

//initOptions merges the defaults, the configuration file and the command line flags
func initOptions() (eo *EnvOptions, cfg config.Config, err error) {
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	eo, cfg, err = parseOptions(flaggy.DefaultParser, os.Args[1:])
	if err == nil && !eo.interactive {
		fmt.Println(aurora.Cyan("\"The Life\" game simulation, use -h for the options"))
	}
	return
}

func parseOptions(p *flaggy.Parser, args []string) (eo *EnvOptions, cfg config.Config, err error) {
	flags := config.Config{
		Width:    unset,
		Height:   unset,
		Interval: unset,
		MaxSteps: unset,
		Seeds:    unset,
		RngSeed:  math.MinInt64,
		Workers:  unset,
	}
	eo = &EnvOptions{}
	p.String(&eo.configPath, "c", "config", "Path to the yaml configuration file")
	p.Int(&flags.Width, "x", "width", "Width of a simulation field")
	p.Int(&flags.Height, "y", "height", "Height of a simulation field")
	p.Duration(&flags.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	p.Int(&flags.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	p.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	p.Int(&flags.Seeds, "r", "random", "Number of random seed cells")
	p.Int64(&flags.RngSeed, "d", "rngSeed", "Seed of the random generator")
	p.Bool(&eo.bounded, "b", "bounded", "Bounded field, the edges do not wrap")
	p.String(&flags.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.EngineNames(), "|")+"]")
	p.Int(&flags.Workers, "w", "workers", "Workers of the multithreaded engine, 0 is the number of CPUs")
	p.String(&eo.template, "t", "template", "Template to settle before the start")
	p.Int(&eo.anchorX, "a", "anchorX", "X of the settled template")
	p.Int(&eo.anchorY, "o", "anchorY", "Y of the settled template")

	if err = p.ParseArgs(args); err != nil {
		return
	}

	if cfg, err = config.Load(eo.configPath); err != nil {
		return
	}
	mergeFlags(&cfg, flags, eo)

	err = cfg.Validate()
	return
}

//mergeFlags overrides the file values with the flags given on the command line
func mergeFlags(cfg *config.Config, flags config.Config, eo *EnvOptions) {
	if flags.Width != unset {
		cfg.Width = flags.Width
	}
	if flags.Height != unset {
		cfg.Height = flags.Height
	}
	if flags.Interval != unset {
		cfg.Interval = flags.Interval
	}
	if flags.MaxSteps != unset {
		cfg.MaxSteps = flags.MaxSteps
	}
	if flags.Seeds != unset {
		cfg.Seeds = flags.Seeds
	}
	if flags.RngSeed != math.MinInt64 {
		cfg.RngSeed = flags.RngSeed
	}
	if flags.Engine != "" {
		cfg.Engine = flags.Engine
	}
	if flags.Workers != unset {
		cfg.Workers = flags.Workers
	}
	if eo.bounded {
		cfg.Wrapped = false
	}
}
