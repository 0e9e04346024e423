package main

import (
	"fmt"
	"io"
	"log/slog"

	"musselbed-sim/internal/config"
	"musselbed-sim/internal/logging"

	"github.com/spf13/cobra"
)

// addModelFlags registers the model and run flags shared by run, chart and
// view. Flag defaults only document the built-in values; a flag overrides the
// config file and environment only when it is set explicitly.
func addModelFlags(cmd *cobra.Command) {
	d := config.Default()
	f := cmd.Flags()
	f.Int("n", d.Model.N, "Number of mussels")
	f.Float64("length", d.Model.Length, "Side of the square bed")
	f.Int("steps", d.Model.EndTime, "Number of timesteps (EndTime)")
	f.Float64("p1", d.Model.P1, "Weight of the short-range density")
	f.Float64("p2", d.Model.P2, "Weight of the long-range density")
	f.Float64("p3", d.Model.P3, "Baseline agitation of an isolated mussel")
	f.Float64("d1", d.Model.D1, "Short-range neighbourhood radius")
	f.Float64("d2", d.Model.D2, "Long-range neighbourhood radius")
	f.Uint64("seed", 0, "Random seed (0 picks one from the clock)")
	f.Int("workers", d.Run.Workers, "Goroutines used for the distance matrix")
}

// loadConfig resolves defaults -> config file -> environment -> flags and
// validates the result.
func loadConfig(cmd *cobra.Command) (*config.MusselConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("n") {
		cfg.Model.N, _ = f.GetInt("n")
	}
	if f.Changed("length") {
		cfg.Model.Length, _ = f.GetFloat64("length")
	}
	if f.Changed("steps") {
		cfg.Model.EndTime, _ = f.GetInt("steps")
	}
	floatFlags := map[string]*float64{
		"p1": &cfg.Model.P1,
		"p2": &cfg.Model.P2,
		"p3": &cfg.Model.P3,
		"d1": &cfg.Model.D1,
		"d2": &cfg.Model.D2,
	}
	for name, dst := range floatFlags {
		if f.Changed(name) {
			*dst, _ = f.GetFloat64(name)
		}
	}
	if f.Changed("seed") {
		cfg.Run.Seed, _ = f.GetUint64("seed")
	}
	if f.Changed("workers") {
		cfg.Run.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("log-level") {
		cfg.Logging.Level, _ = f.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger described by cfg, writing to w.
func newLogger(cfg *config.MusselConfig, w io.Writer) *slog.Logger {
	if cfg.Logging.Format == "json" {
		return logging.NewJSONLogger(cfg.Logging.Level, w)
	}
	return logging.NewLogger(cfg.Logging.Level, w)
}
