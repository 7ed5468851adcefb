package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"lifegrid/src/universe"
)

//ConsoleOut prints the simulation progress for the non interactive mode
type ConsoleOut struct {
	u          universe.Universe
	w          io.Writer
	startTime  time.Time
	progressBy int
}

//NewConsoleOut creates the viewer writing to stdout, progress is printed every progressBy iterations
func NewConsoleOut(progressBy int) *ConsoleOut {
	return NewConsoleOutTo(os.Stdout, progressBy)
}

func NewConsoleOutTo(w io.Writer, progressBy int) *ConsoleOut {
	if progressBy <= 0 {
		progressBy = 10
	}
	return &ConsoleOut{w: w, progressBy: progressBy}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
			"Last changed":   st.Changed,
		}
		_, _ = fmt.Fprintln(c.w, aurora.Red("\nFinished:"))
		c.printHashData(resultData)
	} else if st.RunningMode == universe.RunningStateRun {
		if st.IterationNum%c.progressBy == 0 {
			_, _ = fmt.Fprintf(c.w, "  %s: %v, %s: %v\n",
				aurora.Green("Iterations done"), st.IterationNum,
				aurora.Green("live cells"), st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	topology := "wrapped"
	if !o.Wrapped {
		topology = "bounded"
	}
	_, _ = fmt.Fprintln(c.w, aurora.Cyan("Running configuration:"))
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v (%s)\n", o.Width, o.Height, topology)
	_, _ = fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	_, _ = fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	_, _ = fmt.Fprintf(c.w, "  Initial live cells: %v\n", c.u.Status().LiveCells)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
