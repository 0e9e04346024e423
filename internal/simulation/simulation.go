package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"musselbed-sim/internal/common"
	"musselbed-sim/internal/density"
	"musselbed-sim/internal/logging"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
)

// Options controls how a run is executed. The zero value runs serially with
// a time-based seed and no logging.
type Options struct {
	// Seed seeds the run's PCG generator. Zero picks a time-based seed.
	Seed uint64

	// Rand, when set, is used instead of a generator built from Seed.
	Rand *rand.Rand

	// Workers bounds distance-matrix parallelism. 0 or 1 runs serially.
	Workers int

	// Logger receives run and step logs. Nil discards them.
	Logger *slog.Logger

	// Initial overrides the uniform random placement. Must hold N points.
	Initial []common.Point
}

// Simulation holds the state of one mussel bed run.
type Simulation struct {
	params  Params
	runID   string
	seed    uint64
	rng     *rand.Rand
	workers int
	logger  *slog.Logger

	ids       []string
	positions []common.Point
	history   *History
	step      int // Next timestep index

	// Per-agent values from the most recent step
	betas     []float64
	stepSizes []float64
	headings  []float64
}

// NewSimulation validates p and places the mussels.
func NewSimulation(p Params, opts Options) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if opts.Initial != nil && len(opts.Initial) != p.N {
		return nil, fmt.Errorf("%w: %d initial positions for %d mussels", ErrInvalidParams, len(opts.Initial), p.N)
	}

	seed := opts.Seed
	rng := opts.Rand
	if rng == nil {
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	runID := fmt.Sprintf("run-%s", uuid.NewString()[:8])
	s := &Simulation{
		params:    p,
		runID:     runID,
		seed:      seed,
		rng:       rng,
		workers:   opts.Workers,
		logger:    logger.With("run_id", runID),
		ids:       make([]string, p.N),
		history:   newHistory(runID, seed, p),
		betas:     make([]float64, p.N),
		stepSizes: make([]float64, p.N),
		headings:  make([]float64, p.N),
	}

	if opts.Initial != nil {
		s.positions = common.ClonePoints(opts.Initial)
	} else {
		s.positions = common.RandomPoints(rng, p.N, p.Length)
	}
	for i := range s.ids {
		s.ids[i] = newMusselID()
	}
	return s, nil
}

// Run builds a simulation from p and seed and runs it to completion.
func Run(ctx context.Context, p Params, seed uint64) (*History, error) {
	s, err := NewSimulation(p, Options{Seed: seed})
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

// Run steps the simulation until EndTime and returns the full history.
func (s *Simulation) Run(ctx context.Context) (*History, error) {
	s.logger.Info("starting simulation", "seed", s.seed, "params", s.params.String(), "workers", s.workers)
	start := time.Now()

	for !s.Done() {
		if err := s.Step(ctx); err != nil {
			return nil, err
		}
	}

	s.logger.Info("simulation finished", "steps", s.step, "elapsed", time.Since(start))
	return s.history, nil
}

// Step advances every mussel by one timestep. The density read phase
// completes before any position is written.
func (s *Simulation) Step(ctx context.Context) error {
	if s.Done() {
		return ErrFinished
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("step %d: %w", s.step, err)
	}

	// 1. Read phase: distances, densities and β
	coeffs := density.Coefficients{P1: s.params.P1, P2: s.params.P2, P3: s.params.P3, D1: s.params.D1, D2: s.params.D2}
	field, err := density.Compute(ctx, s.positions, coeffs, s.workers)
	if err != nil {
		return fmt.Errorf("step %d: %w", s.step, err)
	}
	copy(s.betas, field.Beta)

	// 2. Draw all step sizes, then all headings
	DrawStepSizes(s.rng, s.betas, s.stepSizes)
	DrawHeadings(s.rng, s.headings)

	// 3. Write phase
	for i := range s.positions {
		s.positions[i] = Move(s.positions[i], s.headings[i], s.stepSizes[i], s.params.Length)
	}
	s.history.record(s.step, s.positions)

	if s.logger.Enabled(ctx, slog.LevelDebug) {
		n := float64(len(s.betas))
		s.logger.Debug("step",
			"t", s.step,
			"mean_beta", floats.Sum(s.betas)/n,
			"mean_step", floats.Sum(s.stepSizes)/n,
			"max_step", floats.Max(s.stepSizes),
		)
	}
	if s.logger.Enabled(ctx, logging.LevelTrace) {
		for i, id := range s.ids {
			logging.Trace(s.logger, "mussel", "t", s.step, "id", id,
				"pos", s.positions[i].String(), "beta", s.betas[i], "step", s.stepSizes[i])
		}
	}

	s.step++
	return nil
}

// Done reports whether EndTime steps have been taken.
func (s *Simulation) Done() bool {
	return s.step >= s.params.EndTime
}

// CurrentStep returns the index of the next step to run.
func (s *Simulation) CurrentStep() int {
	return s.step
}

// Params returns the run's parameters.
func (s *Simulation) Params() Params {
	return s.params
}

// RunID returns the identifier attached to logs and history.
func (s *Simulation) RunID() string {
	return s.runID
}

// Seed returns the seed the generator was built from (0 if Options.Rand
// was supplied).
func (s *Simulation) Seed() uint64 {
	return s.seed
}

// History returns the history recorded so far.
func (s *Simulation) History() *History {
	return s.history
}

// Positions returns a copy of the current positions.
func (s *Simulation) Positions() []common.Point {
	return common.ClonePoints(s.positions)
}

// Mussels returns id-tagged views of the current positions.
func (s *Simulation) Mussels() []Mussel {
	out := make([]Mussel, len(s.positions))
	for i, p := range s.positions {
		out[i] = Mussel{ID: s.ids[i], Position: p}
	}
	return out
}

// Betas returns a copy of the β values used in the most recent step.
func (s *Simulation) Betas() []float64 {
	return append([]float64(nil), s.betas...)
}

// StepSizes returns a copy of the step lengths drawn in the most recent step.
func (s *Simulation) StepSizes() []float64 {
	return append([]float64(nil), s.stepSizes...)
}
