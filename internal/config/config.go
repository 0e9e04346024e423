// Package config provides configuration loading for the mussel bed simulator.
// It supports loading from YAML files and MUSSEL_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"musselbed-sim/internal/simulation"

	"gopkg.in/yaml.v3"
)

// MusselConfig contains all simulator settings.
type MusselConfig struct {
	// Model holds the IBM parameters.
	Model ModelConfig `json:"model" yaml:"model"`

	// Run controls seeding and parallelism.
	Run RunConfig `json:"run" yaml:"run"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// ModelConfig mirrors simulation.Params with YAML names.
type ModelConfig struct {
	// N is the number of mussels.
	N int `json:"n" yaml:"n"`

	// Length is the side of the square bed.
	Length float64 `json:"length" yaml:"length"`

	// EndTime is the number of timesteps to simulate.
	EndTime int `json:"end_time" yaml:"end_time"`

	// P1 weights the short-range density, P2 the long-range density and
	// P3 is the baseline agitation of an isolated mussel.
	P1 float64 `json:"p1" yaml:"p1"`
	P2 float64 `json:"p2" yaml:"p2"`
	P3 float64 `json:"p3" yaml:"p3"`

	// D1 and D2 are the short and long neighbourhood radii.
	D1 float64 `json:"d1" yaml:"d1"`
	D2 float64 `json:"d2" yaml:"d2"`
}

// RunConfig controls how a run is executed, not what it models.
type RunConfig struct {
	// Seed seeds the run's random generator. Zero picks a time-based seed.
	Seed uint64 `json:"seed" yaml:"seed"`

	// Workers bounds distance-matrix parallelism. 0 or 1 runs serially.
	Workers int `json:"workers" yaml:"workers"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `json:"level" yaml:"level"`

	// Format is "text" (default) or "json".
	Format string `json:"format" yaml:"format"`
}

// Default returns a MusselConfig with the reference parameter set.
func Default() *MusselConfig {
	p := simulation.DefaultParams()
	return &MusselConfig{
		Model: ModelConfig{
			N:       p.N,
			Length:  p.Length,
			EndTime: p.EndTime,
			P1:      p.P1,
			P2:      p.P2,
			P3:      p.P3,
			D1:      p.D1,
			D2:      p.D2,
		},
		Run: RunConfig{
			Seed:    0,
			Workers: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load returns the defaults overlaid with the given YAML file (if path is
// non-empty) and then with environment variables.
func Load(path string) (*MusselConfig, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Keys missing from the file keep their default values.
func LoadFromFile(path string) (*MusselConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// Params converts the model section into engine parameters.
func (c *MusselConfig) Params() simulation.Params {
	m := c.Model
	return simulation.Params{
		N:       m.N,
		Length:  m.Length,
		EndTime: m.EndTime,
		P1:      m.P1,
		P2:      m.P2,
		P3:      m.P3,
		D1:      m.D1,
		D2:      m.D2,
	}
}

// Validate checks that the configuration is valid.
func (c *MusselConfig) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}

	if c.Run.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Run.Workers)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	validFormats := map[string]bool{"": true, "text": true, "json": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Logging.Format)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *MusselConfig) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"MUSSEL_N", &config.Model.N},
		{"MUSSEL_STEPS", &config.Model.EndTime},
		{"MUSSEL_WORKERS", &config.Run.Workers},
	}
	for _, e := range ints {
		if v := os.Getenv(e.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", e.key, err)
			}
			*e.dst = n
		}
	}

	if v := os.Getenv("MUSSEL_LENGTH"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing MUSSEL_LENGTH: %w", err)
		}
		config.Model.Length = f
	}

	if v := os.Getenv("MUSSEL_SEED"); v != "" {
		s, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing MUSSEL_SEED: %w", err)
		}
		config.Run.Seed = s
	}

	if v := os.Getenv("MUSSEL_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	return nil
}
