package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultColumns    = 24
	DefaultRows       = 16
	DefaultDt         = 1.0 / 60
	DefaultDuration   = 10.0
	DefaultIterations = 2
)

// Config holds the tunable parameters of a simulation run. Gravity, the gust
// bound, and the timestep clamp are fixed model constants and deliberately
// not configurable.
type Config struct {
	Columns    int         `yaml:"columns"`
	Rows       int         `yaml:"rows"`
	Dt         float64     `yaml:"dt"`
	Duration   float64     `yaml:"duration"`
	Iterations int         `yaml:"iterations"`
	Seed       int64       `yaml:"seed"`
	Cuts       []CutConfig `yaml:"cuts,omitempty"`
}

// CutConfig schedules one cut segment, in cloth coordinates (unit square,
// y down), to fire at simulation time At.
type CutConfig struct {
	At    float64 `yaml:"at"`
	FromX float64 `yaml:"from_x"`
	FromY float64 `yaml:"from_y"`
	ToX   float64 `yaml:"to_x"`
	ToY   float64 `yaml:"to_y"`
}

func DefaultConfig() *Config {
	return &Config{
		Columns:    DefaultColumns,
		Rows:       DefaultRows,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Iterations: DefaultIterations,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects parameter combinations the engine cannot run.
func (c *Config) Validate() error {
	if c.Columns < 2 || c.Rows < 2 {
		return fmt.Errorf("grid must be at least 2x2, got %dx%d", c.Columns, c.Rows)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	return nil
}
