// Package config loads the engine tuning file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML tuning file
type Config struct {
	Pathfinding Pathfinding `yaml:"pathfinding"`
	Simulation  Simulation  `yaml:"simulation"`
	Log         Log         `yaml:"log"`
}

// Pathfinding holds engine-tuned search constants. Their exact values are
// tuning choices; the search stays correct for any valid setting.
type Pathfinding struct {
	MaxPathLength  int `yaml:"max_path_length"`  // steps kept per search
	RetryBudget    int `yaml:"retry_budget"`     // ticks to wait on a blocked step
	SoftBlockCost  int `yaml:"soft_block_cost"`  // weight of a tile held by a stationary unit
	MovingUnitCost int `yaml:"moving_unit_cost"` // extra weight of a tile held by a moving unit
	MaxExpansions  int `yaml:"max_expansions"`   // 0 = unbounded
}

type Simulation struct {
	TickRate float64 `yaml:"tick_rate"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Default returns the stock tuning
func Default() Config {
	return Config{
		Pathfinding: DefaultPathfinding(),
		Simulation:  Simulation{TickRate: 20},
		Log:         Log{Level: "info"},
	}
}

// DefaultPathfinding returns the stock search constants
func DefaultPathfinding() Pathfinding {
	return Pathfinding{
		MaxPathLength:  28,
		RetryBudget:    10,
		SoftBlockCost:  1000,
		MovingUnitCost: 2,
	}
}

// Load reads and validates a YAML file. Keys missing from the file keep
// their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults, rejecting unknown keys
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting
func (c Config) Validate() error {
	if err := c.Pathfinding.Validate(); err != nil {
		return err
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive, got %v", c.Simulation.TickRate)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Validate reports the first out-of-range search constant
func (p Pathfinding) Validate() error {
	switch {
	case p.MaxPathLength < 1:
		return fmt.Errorf("pathfinding.max_path_length must be at least 1, got %d", p.MaxPathLength)
	case p.RetryBudget < 0:
		return fmt.Errorf("pathfinding.retry_budget must not be negative, got %d", p.RetryBudget)
	case p.MovingUnitCost < 0:
		return fmt.Errorf("pathfinding.moving_unit_cost must not be negative, got %d", p.MovingUnitCost)
	case p.SoftBlockCost <= 1+p.MovingUnitCost:
		return fmt.Errorf("pathfinding.soft_block_cost must exceed any passable tile cost, got %d", p.SoftBlockCost)
	case p.MaxExpansions < 0:
		return fmt.Errorf("pathfinding.max_expansions must not be negative, got %d", p.MaxExpansions)
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level
func (l Log) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", l.Level)
}
