package universe

import "github.com/pkg/errors"

//error kinds returned by the engine
//every operation returning one of them leaves the grid untouched
var (
	ErrInvalidDimension            = errors.New("invalid grid dimension")
	ErrSeedCountTooLarge           = errors.New("seed count must be less than the number of cells")
	ErrNegativeSeedCount           = errors.New("seed count must not be negative")
	ErrIndexOutOfRange             = errors.New("index out of range")
	ErrDuplicateSeedRetryExhausted = errors.New("too many duplicate seed points")
	ErrUnknownTemplate             = errors.New("unknown template")
	ErrUniverseClosed              = errors.New("universe is closed")
	ErrInvalidInterval             = errors.New("step interval must not be negative")
)
