package universe

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

//DefSeedRetryFactor bounds the random draws of one seed set to DefSeedRetryFactor*(n+1)
const DefSeedRetryFactor = 64

//NewRNG returns a deterministic random source for the seed value
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

//newSeedRNG builds the random source of Grid.Seed and Regenerate
var newSeedRNG = NewRNG

//GenerateSeedPoints draws n distinct positions uniformly from the grid
//duplicates are rejected while drawing, so the result never holds one
func GenerateSeedPoints(g *Grid, n int, rng *rand.Rand) ([]Coord, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrNegativeSeedCount, "[GenerateSeedPoints] %d", n)
	}
	if n >= len(g.cells) {
		return nil, errors.Wrapf(ErrSeedCountTooLarge, "[GenerateSeedPoints] %d seeds for %d cells", n, len(g.cells))
	}
	seedPoints := make([]Coord, 0, n)
	taken := make(map[int]struct{}, n)
	maxDraws := DefSeedRetryFactor * (n + 1)
	for draws := 0; len(seedPoints) < n; draws++ {
		if draws >= maxDraws {
			return nil, errors.Wrapf(ErrDuplicateSeedRetryExhausted, "[GenerateSeedPoints] %d of %d seeds after %d draws", len(seedPoints), n, draws)
		}
		seedPoint := Coord{X: rng.IntN(g.width), Y: rng.IntN(g.height)}
		pos := g.index(seedPoint.X, seedPoint.Y)
		if _, ok := taken[pos]; ok {
			continue
		}
		taken[pos] = struct{}{}
		seedPoints = append(seedPoints, seedPoint)
	}
	return seedPoints, nil
}

//ApplySeedPoints flips every seed point, on a dead grid this makes them alive
func ApplySeedPoints(g *Grid, seedPoints []Coord) error {
	for _, p := range seedPoints {
		if !g.inside(p.X, p.Y) {
			return errors.Wrapf(ErrIndexOutOfRange, "[ApplySeedPoints] (%d, %d) outside %d x %d", p.X, p.Y, g.width, g.height)
		}
	}
	for _, p := range seedPoints {
		g.toggle(g.index(p.X, p.Y))
	}
	return nil
}

//Seed generates n seed points from rngSeed and applies them
func (g *Grid) Seed(n int, rngSeed int64) error {
	seedPoints, err := GenerateSeedPoints(g, n, newSeedRNG(rngSeed))
	if err != nil {
		return err
	}
	return ApplySeedPoints(g, seedPoints)
}
