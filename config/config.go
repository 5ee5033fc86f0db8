// Package config loads the settings of the westworld simulation.
//
// Values are layered: built-in defaults, then an optional YAML file, then a
// .env file and the process environment. Environment variables carry the
// WESTWORLD_ prefix, e.g. WESTWORLD_TICK_INTERVAL=250ms or
// WESTWORLD_MINER_COMFORT_LEVEL=8.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/enetx/stackfsm/internal/logging"
	"github.com/enetx/stackfsm/westworld"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "WESTWORLD_"

// Config is the complete simulation configuration.
type Config struct {
	// TickInterval is the pause between two ticks of the driver loop.
	TickInterval time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	// MaxTicks stops the simulation after that many ticks; 0 runs until every agent stops.
	MaxTicks uint64 `yaml:"max_ticks" env:"MAX_TICKS"`
	// Parallel updates agents concurrently within a tick.
	Parallel bool `yaml:"parallel" env:"PARALLEL"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	// MetricsAddr enables the HTTP status server when non-empty.
	MetricsAddr string `yaml:"metrics_addr" env:"METRICS_ADDR"`
	// Seed seeds the agents' random decisions; 0 picks a random seed.
	Seed uint64 `yaml:"seed" env:"SEED"`

	Miner   westworld.MinerConfig   `yaml:"miner" envPrefix:"MINER_"`
	Partner westworld.PartnerConfig `yaml:"partner" envPrefix:"PARTNER_"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TickInterval: 800 * time.Millisecond,
		LogLevel:     "info",
		Miner:        westworld.DefaultMinerConfig(),
		Partner:      westworld.DefaultPartnerConfig(),
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped when
// path is empty), a .env file in the working directory if present, and the
// environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	// The .env file is optional.
	_ = godotenv.Load()

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingFile, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Join(ErrReadingFile, fmt.Errorf("%s: %w", path, err))
	}

	return nil
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.Join(ErrInvalidConfig, fmt.Errorf(format, args...))
	}

	switch {
	case c.TickInterval < 0:
		return invalid("tick_interval must not be negative, got %s", c.TickInterval)
	case c.Miner.ComfortLevel < 0:
		return invalid("miner.comfort_level must not be negative, got %d", c.Miner.ComfortLevel)
	case c.Miner.MaxNuggets <= 0:
		return invalid("miner.max_nuggets must be positive, got %d", c.Miner.MaxNuggets)
	case c.Miner.ThirstLevel < 0:
		return invalid("miner.thirst_level must not be negative, got %d", c.Miner.ThirstLevel)
	case c.Miner.TirednessThreshold < 0:
		return invalid("miner.tiredness_threshold must not be negative, got %d", c.Miner.TirednessThreshold)
	case c.Partner.BathroomChance < 0 || c.Partner.BathroomChance > 1:
		return invalid("partner.bathroom_chance must be within [0, 1], got %g", c.Partner.BathroomChance)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}
