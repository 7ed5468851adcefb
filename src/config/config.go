package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"lifegrid/src/universe"
)

//default values of the host configuration
const (
	DefSeeds   = 5
	DefRngSeed = 42
	DefEngine  = "sequential"
)

//TemplateFile is a template as it is written in the configuration file
type TemplateFile struct {
	Name  string  `yaml:"name"`
	Descr string  `yaml:"descr"`
	Cells [][]int `yaml:"cells"`
}

//Config is the whole host configuration
//the file values replace the defaults, the command line flags replace the file values
type Config struct {
	Width     int            `yaml:"width"`
	Height    int            `yaml:"height"`
	Seeds     int            `yaml:"seeds"`
	RngSeed   int64          `yaml:"rng_seed"`
	Wrapped   bool           `yaml:"wrapped"`
	Interval  time.Duration  `yaml:"interval"`
	MaxSteps  int            `yaml:"max_steps"`
	Engine    string         `yaml:"engine"`
	Workers   int            `yaml:"workers"`
	Templates []TemplateFile `yaml:"templates"`
}

//Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Width:    universe.DefWidth,
		Height:   universe.DefHeight,
		Seeds:    DefSeeds,
		RngSeed:  DefRngSeed,
		Wrapped:  true,
		Interval: universe.DefSimulationInterval,
		MaxSteps: universe.DefMaxSteps,
		Engine:   DefEngine,
	}
}

//Load reads the yaml file over the defaults, an empty path gives the defaults
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "[config.Load]")
	}
	if err := Parse(body, &c); err != nil {
		return c, errors.Wrapf(err, "[config.Load] %s", path)
	}
	return c, nil
}

//Parse decodes the yaml document into c, keys missing in the document keep their values
func Parse(body []byte, c *Config) error {
	if err := yaml.Unmarshal(body, c); err != nil {
		return errors.Wrap(err, "decoding configuration yaml")
	}
	return nil
}

//Validate checks the configuration before anything is built from it
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(universe.ErrInvalidDimension, "[Validate] %d x %d", c.Width, c.Height)
	}
	if c.Seeds < 0 {
		return errors.Wrapf(universe.ErrNegativeSeedCount, "[Validate] %d", c.Seeds)
	}
	if c.Seeds >= c.Width*c.Height {
		return errors.Wrapf(universe.ErrSeedCountTooLarge, "[Validate] %d seeds for %d cells", c.Seeds, c.Width*c.Height)
	}
	if c.Interval < 0 {
		return errors.Errorf("[Validate] negative interval %v", c.Interval)
	}
	if c.MaxSteps < 0 {
		return errors.Errorf("[Validate] negative max steps %d", c.MaxSteps)
	}
	if _, ok := universe.Engines[c.Engine]; !ok {
		return errors.Errorf("[Validate] unknown engine %q, expected one of %v", c.Engine, universe.EngineNames())
	}
	if _, err := c.UniverseTemplates(); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	return nil
}

//UniverseOptions converts the configuration to the universe options
func (c Config) UniverseOptions() *universe.Options {
	o := universe.DefaultUniverseOptions
	o.Width = c.Width
	o.Height = c.Height
	o.Interval = c.Interval
	o.MaxSteps = c.MaxSteps
	o.Wrapped = c.Wrapped
	return &o
}

//NewEngine builds the configured engine
func (c Config) NewEngine() (universe.Engine, error) {
	newEngine, ok := universe.Engines[c.Engine]
	if !ok {
		return nil, errors.Errorf("[NewEngine] unknown engine %q", c.Engine)
	}
	return newEngine(c.Workers), nil
}

//UniverseTemplates converts the file templates, every cell must be a non negative [x, y] pair
func (c Config) UniverseTemplates() ([]universe.Template, error) {
	list := make([]universe.Template, 0, len(c.Templates))
	for _, tf := range c.Templates {
		if tf.Name == "" {
			return nil, errors.New("template without name")
		}
		cells := make([]universe.Coord, 0, len(tf.Cells))
		for i, cell := range tf.Cells {
			if len(cell) != 2 {
				return nil, errors.Errorf("template %q: cell %d has %d coordinates", tf.Name, i, len(cell))
			}
			if cell[0] < 0 || cell[1] < 0 {
				return nil, errors.Wrapf(universe.ErrIndexOutOfRange, "template %q: cell %d is %v", tf.Name, i, cell)
			}
			cells = append(cells, universe.Coord{X: cell[0], Y: cell[1]})
		}
		list = append(list, universe.Template{Name: tf.Name, Descr: tf.Descr, Cells: cells})
	}
	return list, nil
}
