package universe

import "github.com/pkg/errors"

//Template is a named stamp which can be settled anywhere on the universe or loaded as the current stamp
type Template struct {
	Name  string  //template name
	Descr string  //template descr
	Cells []Coord //cells relative to (0, 0)
}

//BuiltinTemplates are registered on every new universe
var BuiltinTemplates = []Template{
	{"glider", "travels one cell diagonally every 4 generations", []Coord{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}},
	{"blinker", "period 2 oscillator", []Coord{{0, 0}, {1, 0}, {2, 0}}},
	{"block", "2x2 still life", []Coord{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	{"sample", "the test sample with 3 stable patterns", []Coord{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}},
}

//Stamp converts the template cells into a stamp
func (t Template) Stamp() (Stamp, error) {
	s, err := NewStamp(t.Cells)
	if err != nil {
		return Stamp{}, errors.Wrapf(err, "[Template.Stamp] template %q", t.Name)
	}
	return s, nil
}

//templateLibrary keeps templates by name in insertion order
type templateLibrary struct {
	names     []string
	templates map[string]Template
	stamps    map[string]Stamp
}

func newTemplateLibrary() *templateLibrary {
	return &templateLibrary{templates: map[string]Template{}, stamps: map[string]Stamp{}}
}

//add registers the template, a template with the same name is replaced
func (l *templateLibrary) add(t Template) error {
	if t.Name == "" {
		return errors.New("[templateLibrary.add] template name is empty")
	}
	s, err := t.Stamp()
	if err != nil {
		return err
	}
	if _, ok := l.templates[t.Name]; !ok {
		l.names = append(l.names, t.Name)
	}
	l.templates[t.Name] = t
	l.stamps[t.Name] = s
	return nil
}

func (l *templateLibrary) stamp(name string) (Stamp, error) {
	s, ok := l.stamps[name]
	if !ok {
		return Stamp{}, errors.Wrapf(ErrUnknownTemplate, "%q", name)
	}
	return s, nil
}

func (l *templateLibrary) list() []Template {
	list := make([]Template, 0, len(l.names))
	for _, n := range l.names {
		list = append(list, l.templates[n])
	}
	return list
}
