package experiments

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"propnet/meta"
)

// Config describes one throughput run: random playouts on one game with one
// propagation strategy.
type Config struct {
	ID         int           `yaml:"id"`
	Game       string        `yaml:"game"`
	Strategy   string        `yaml:"strategy"`
	Goroutines int           `yaml:"goroutines"`
	Duration   time.Duration `yaml:"duration"`
	Playouts   int           `yaml:"playouts"` // stop after this many playouts, 0 for no limit
	Prune      bool          `yaml:"prune"`
	Factor     bool          `yaml:"factor"`
	Seed       uint64        `yaml:"seed"`
}

// Setup is the YAML document accepted by LoadSetup.
type Setup struct {
	Output string   `yaml:"output"`
	Runs   []Config `yaml:"runs"`
}

func (c Config) withDefaults() Config {
	if c.Game == "" {
		c.Game = "tictactoe"
	}
	if c.Strategy == "" {
		c.Strategy = "full"
	}
	if c.Goroutines <= 0 {
		c.Goroutines = meta.GO_ROUTINES
	}
	if c.Duration <= 0 && c.Playouts <= 0 {
		c.Duration = meta.DURATION_MS * time.Millisecond
	}
	if c.Seed == 0 {
		c.Seed = meta.SEED
	}
	return c
}

func LoadSetup(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read setup")
	}
	var setup Setup
	if err := yaml.Unmarshal(data, &setup); err != nil {
		return nil, errors.Wrapf(err, "failed to parse setup %s", path)
	}
	for i := range setup.Runs {
		if setup.Runs[i].ID == 0 {
			setup.Runs[i].ID = i + 1
		}
		setup.Runs[i] = setup.Runs[i].withDefaults()
	}
	return &setup, nil
}
