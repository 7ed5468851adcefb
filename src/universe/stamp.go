package universe

import "github.com/pkg/errors"

/*
	Stamp is a set of cell offsets captured from a grid.
	The offsets are the captured (x, y) positions, i.e. relative to (0, 0),
	placing the stamp at an anchor adds the anchor to every offset.
*/
type Stamp struct {
	offsets []Coord
}

//NewStamp builds a stamp from offsets, duplicates are dropped and negative offsets rejected
func NewStamp(offsets []Coord) (Stamp, error) {
	s := Stamp{offsets: make([]Coord, 0, len(offsets))}
	seen := make(map[Coord]struct{}, len(offsets))
	for _, o := range offsets {
		if o.X < 0 || o.Y < 0 {
			return Stamp{}, errors.Wrapf(ErrIndexOutOfRange, "[NewStamp] negative offset (%d, %d)", o.X, o.Y)
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		s.offsets = append(s.offsets, o)
	}
	return s, nil
}

//CaptureStamp records every live cell of the grid, later changes of the grid do not affect the stamp
func CaptureStamp(g *Grid) Stamp {
	s := Stamp{}
	for pos, c := range g.cells {
		if c {
			s.offsets = append(s.offsets, g.coord(pos))
		}
	}
	return s
}

//Offsets returns a copy of the stamp offsets
func (s Stamp) Offsets() []Coord {
	return append([]Coord(nil), s.offsets...)
}

func (s Stamp) Len() int { return len(s.offsets) }

func (s Stamp) Empty() bool { return len(s.offsets) == 0 }

//Clear empties the stamp
func (s *Stamp) Clear() { s.offsets = nil }

//PlaceStamp makes every target anchor+offset alive, live targets are left alone
//if any target falls outside the grid nothing is placed
func PlaceStamp(g *Grid, anchor Coord, s Stamp) error {
	for _, o := range s.offsets {
		x, y := anchor.X+o.X, anchor.Y+o.Y
		if !g.inside(x, y) {
			return errors.Wrapf(ErrIndexOutOfRange, "[PlaceStamp] target (%d, %d) outside %d x %d", x, y, g.width, g.height)
		}
	}
	for _, o := range s.offsets {
		pos := g.index(anchor.X+o.X, anchor.Y+o.Y)
		if !g.cells[pos] {
			g.toggle(pos)
		}
	}
	return nil
}
