// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jjtimmons/qdenovo/internal/qubo"
	"github.com/jjtimmons/qdenovo/internal/solve"
	"github.com/spf13/viper"
)

var (
	// RootSettingsFile is the default path to a user's settings file
	RootSettingsFile = filepath.Join(home(), ".qdenovo", "settings.yaml")
)

// Config is the root-level settings struct and is a mix
// of settings available in settings.yaml and those
// available from the command line
type Config struct {
	// the number of mismatches allowed in an overlap
	Mismatches int `mapstructure:"mismatches"`

	// reward for every read in some position, p0
	PenaltyReward float64 `mapstructure:"penalty-reward"`

	// penalty for a read in more than one position, p1
	PenaltyLocation float64 `mapstructure:"penalty-location"`

	// penalty for a position holding more than one read, p2. Same as p1 if unset
	PenaltyVisit float64 `mapstructure:"penalty-visit"`

	// whether the last read links back to the first
	OpenPath bool `mapstructure:"open-path"`

	// which solver to use: enumerate or maxsat
	Solver string `mapstructure:"solver"`

	// the most variables the enumerate solver accepts
	SolverMaxVars int `mapstructure:"solver-max-vars"`

	// scale of QUBO coefficients before they're rounded to MaxSAT weights
	MaxSATScale float64 `mapstructure:"maxsat-scale"`

	// the Chimera target's rows, columns and shore size
	ChimeraRows  int `mapstructure:"chimera-rows"`
	ChimeraCols  int `mapstructure:"chimera-cols"`
	ChimeraShore int `mapstructure:"chimera-shore"`

	// path to a precomputed embedding, JSON
	Embedding string `mapstructure:"embedding"`

	// whether to log progress
	Verbose bool `mapstructure:"verbose"`

	// number of inputs to solve in parallel with batch, 0 for one per CPU
	Workers int `mapstructure:"workers"`
}

// New returns a new Config struct populated by
// Viper settings (either from the local settings.yaml)
// and/or command line arguments
func New() *Config {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}

	if !viper.IsSet("penalty-visit") {
		c.PenaltyVisit = c.PenaltyLocation
	}

	return &c
}

// Load reads a settings file into viper. A missing file is fine if it's the
// default settings file.
func Load(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && path == RootSettingsFile {
		return nil
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return nil
}

// Weights are the QUBO weights from the penalty settings.
func (c *Config) Weights() qubo.Weights {
	return qubo.Weights{
		Reward:   c.PenaltyReward,
		Location: c.PenaltyLocation,
		Visit:    c.PenaltyVisit,
		OpenPath: c.OpenPath,
	}
}

// Validate checks the settings that can't be caught when they're parsed.
func (c *Config) Validate() error {
	if c.Mismatches < 0 {
		return fmt.Errorf("mismatches must be at least 0, got %d", c.Mismatches)
	}
	switch c.Solver {
	case "enumerate", "maxsat":
	default:
		return fmt.Errorf("unknown solver %q: use enumerate or maxsat", c.Solver)
	}
	if c.ChimeraRows < 0 || c.ChimeraCols < 0 || c.ChimeraShore < 0 {
		return fmt.Errorf("chimera dimensions can't be negative: %d %d %d", c.ChimeraRows, c.ChimeraCols, c.ChimeraShore)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers can't be negative, got %d", c.Workers)
	}
	return nil
}

func setDefaults() {
	w := qubo.DefaultWeights()
	viper.SetDefault("mismatches", 0)
	viper.SetDefault("penalty-reward", w.Reward)
	viper.SetDefault("penalty-location", w.Location)
	viper.SetDefault("open-path", false)
	viper.SetDefault("solver", "enumerate")
	viper.SetDefault("solver-max-vars", solve.DefaultMaxVars)
	viper.SetDefault("maxsat-scale", solve.DefaultScale)
	viper.SetDefault("chimera-rows", 3)
	viper.SetDefault("chimera-cols", 3)
	viper.SetDefault("chimera-shore", 4)
	viper.SetDefault("verbose", false)
	viper.SetDefault("workers", 0)
}

// home is the user's home directory, or the working directory if there isn't one
func home() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
