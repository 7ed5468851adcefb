package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"lifegrid/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal host
//the field is drawn with y growing upwards, the bottom line of the view is y == 0
type ConsoleUI struct {
	u          universe.Universe
	g          *gocui.Gui
	k          []keyBindings
	liveFiller string
	deadFiller string
	seeds      int
	rngSeed    int64
	template   int
	message    string //last command result, touched by the gui goroutine only
	nextWidth  int    //size of the next regenerate, 0 keeps the current one
	nextHeight int
}

//limits of the step interval set from the keyboard
const (
	minKeyInterval = time.Millisecond
	maxKeyInterval = 10 * time.Second
	resizeStep     = 10
)

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateStep:     "do the step",
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the terminal UI, seeds and rngSeed are used by the noise and regenerate commands
func NewViewTerminal(seeds int, rngSeed int64) *ConsoleUI {

	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
		seeds:      seeds,
		rngSeed:    rngSeed,
		template:   -1,
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Noise", t.cmdNoise, ""},
		{'g', "G", "Regenerate", t.cmdRegenerate, ""},
		{'t', "T", "Topology", t.cmdTopology, ""},
		{'k', "K", "Capture stamp", t.cmdCaptureStamp, ""},
		{'p', "P", "Next template", t.cmdNextTemplate, ""},
		{'x', "X", "Drop stamp", t.cmdClearStamp, ""},
		{'f', "F", "Faster", t.cmdFaster, ""},
		{'l', "L", "Slower", t.cmdSlower, ""},
		{'>', ">", "Grow next grid", t.cmdGrow, ""},
		{'<', "<", "Shrink next grid", t.cmdShrink, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle cell / place stamp", t.cmdMouseClick, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

//Refresh is called by the universe control loop, it must not call back into the universe synchronously
func (t *ConsoleUI) Refresh() {
	t.renderField(t.u.Area())
	t.renderConfiguration()
	t.renderStatus()
}

func (t *ConsoleUI) renderField(a universe.Area) {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			return e
		}
		//the entire field is redrawing at once
		v.Clear()

		crop := false
		maxW, maxH := v.Size()
		if a.Width > maxW || a.Height > maxH {
			crop = true
		}

		var b bytes.Buffer

		for i := 0; i < a.Height; i++ {
			//discard the data outside the view area
			if i >= maxH {
				break
			}
			//line feed char
			if i != 0 {
				b.WriteByte(10)
			}
			if crop && i == (maxH-1) {
				b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
				break
			}
			for j, e := range a.Entities[a.Height-1-i] {
				if j >= maxW {
					break
				}
				if e {
					b.WriteString(t.liveFiller)
				} else {
					b.WriteString(t.deadFiller)
				}
			}
		}
		_, _ = fmt.Fprint(v, b.String())
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := t.g.View("status"); e == nil {
			v.Clear()
			topology := "wrapped"
			if !s.Wrapped {
				topology = "bounded"
			}
			_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Changed", "%v", s.Changed))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
			_, _ = fmt.Fprintln(v, t.renderProp("Topology", "%v", topology))
			_, _ = fmt.Fprintln(v, t.renderProp("Stamp", "%v cells", s.StampSize))
			if t.message != "" {
				_, _ = fmt.Fprintln(v, " "+t.message)
			}
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
			if t.nextWidth > 0 {
				_, _ = fmt.Fprintln(v, t.renderProp("Next dimension", "%v x %v", t.nextWidth, t.nextHeight))
			}
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
			_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", c.Advanced["engine"]))
			_, _ = fmt.Fprintln(v, t.renderProp("Seeds", "%v", t.seeds))
			_, _ = fmt.Fprintln(v, t.renderProp("Rng seed", "%v", t.rngSeed))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil

	} else {
		if _, err := t.headerLayout(g, 3, "This is \"The Life\" game simulation"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		v.Wrap = true
		t.renderStatus()
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Battle Field"
		v.Frame = true
	}
	t.renderField(t.u.Area())

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			panic(fmt.Sprintf("Terminal width is too small: %v", maxX))
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

//report keeps the result of the last command for the status panel
func (t *ConsoleUI) report(err error, okMessage string) {
	if err != nil {
		t.message = aurora.Red(err.Error()).String()
	} else {
		t.message = okMessage
	}
	t.renderStatus()
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.u.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.u.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	return nil
}

//cmdNoise flips a fresh set of random cells on the current grid
func (t *ConsoleUI) cmdNoise(_ *gocui.View) error {
	t.rngSeed++
	t.report(t.u.Seed(t.seeds, t.rngSeed), fmt.Sprintf("noise: %d cells", t.seeds))
	return nil
}

//cmdRegenerate rebuilds the grid with the next dimension (the current one if not changed) and a new rng seed
func (t *ConsoleUI) cmdRegenerate(_ *gocui.View) error {
	w, h := t.nextWidth, t.nextHeight
	if w == 0 {
		a := t.u.Area()
		w, h = a.Width, a.Height
	}
	t.rngSeed++
	err := t.u.Regenerate(w, h, t.seeds, t.rngSeed)
	if err == nil {
		t.nextWidth, t.nextHeight = 0, 0
	}
	t.report(err, fmt.Sprintf("regenerated %d x %d with rng seed %d", w, h, t.rngSeed))
	t.renderConfiguration()
	return nil
}

func (t *ConsoleUI) cmdGrow(_ *gocui.View) error {
	t.resizeNext(resizeStep)
	return nil
}

func (t *ConsoleUI) cmdShrink(_ *gocui.View) error {
	t.resizeNext(-resizeStep)
	return nil
}

//resizeNext changes the dimension used by the next regenerate
func (t *ConsoleUI) resizeNext(delta int) {
	w, h := t.nextWidth, t.nextHeight
	if w == 0 {
		a := t.u.Area()
		w, h = a.Width, a.Height
	}
	t.nextWidth, t.nextHeight = nextSize(w, h, delta)
	t.report(nil, fmt.Sprintf("next regenerate: %d x %d", t.nextWidth, t.nextHeight))
	t.renderConfiguration()
}

func (t *ConsoleUI) cmdFaster(_ *gocui.View) error {
	t.changeInterval(true)
	return nil
}

func (t *ConsoleUI) cmdSlower(_ *gocui.View) error {
	t.changeInterval(false)
	return nil
}

func (t *ConsoleUI) changeInterval(faster bool) {
	interval := scaleInterval(t.u.Options().Interval, faster)
	t.report(t.u.SetInterval(interval), fmt.Sprintf("interval: %v", interval))
}

//scaleInterval halves or doubles the step interval, halving below minKeyInterval gives 0 (no pause)
func scaleInterval(d time.Duration, faster bool) time.Duration {
	if faster {
		d /= 2
		if d < minKeyInterval {
			return 0
		}
		return d
	}
	if d < minKeyInterval {
		return minKeyInterval
	}
	d *= 2
	if d > maxKeyInterval {
		return maxKeyInterval
	}
	return d
}

//nextSize grows both sides by delta, a side never drops below 1
func nextSize(width int, height int, delta int) (int, int) {
	width += delta
	height += delta
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func (t *ConsoleUI) cmdTopology(_ *gocui.View) error {
	t.report(t.u.SetWrapped(!t.u.Status().Wrapped), "")
	return nil
}

func (t *ConsoleUI) cmdCaptureStamp(_ *gocui.View) error {
	size, err := t.u.CaptureStamp()
	t.report(err, fmt.Sprintf("stamp captured: %d cells", size))
	return nil
}

//cmdNextTemplate loads the next registered template as the current stamp
func (t *ConsoleUI) cmdNextTemplate(_ *gocui.View) error {
	list := t.u.Templates()
	if len(list) == 0 {
		return nil
	}
	t.template = (t.template + 1) % len(list)
	tmpl := list[t.template]
	t.report(t.u.LoadTemplate(tmpl.Name), fmt.Sprintf("template %s: %s", tmpl.Name, tmpl.Descr))
	return nil
}

func (t *ConsoleUI) cmdClearStamp(_ *gocui.View) error {
	t.report(t.u.ClearStamp(), "stamp dropped")
	return nil
}

//cmdMouseClick toggles the clicked cell and places the current stamp there when one is stored
func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	x, y := cellAt(t.u.Area(), cx, cy)
	if err := t.u.InverseCell(x, y); err != nil {
		t.report(err, "")
		return nil
	}
	if t.u.Status().StampSize > 0 {
		t.report(t.u.PlaceStamp(x, y), "stamp placed")
	}
	return nil
}

//cellAt converts the view position to the cell coordinates, the view's top line is the top row
func cellAt(a universe.Area, cx int, cy int) (x int, y int) {
	return cx, a.Height - 1 - cy
}
