package simulation

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParams is wrapped by every parameter validation failure.
	ErrInvalidParams = errors.New("invalid simulation parameters")

	// ErrFinished is returned by Step once EndTime steps have been taken.
	ErrFinished = errors.New("simulation finished")
)

// Params holds the model parameters of one run.
type Params struct {
	N       int     // Number of mussels
	Length  float64 // Side of the square bed
	EndTime int     // Number of timesteps

	// Agitation = P1·density(D1) + P2·density(D2) + P3
	P1 float64
	P2 float64
	P3 float64

	D1 float64 // Short-range neighbourhood radius
	D2 float64 // Long-range neighbourhood radius
}

// DefaultParams returns a parameter set that forms visible clumps within a
// few hundred steps. P1/D1² + P2/D2² ≥ 0 keeps the agitation score at or
// above P3, so β never exceeds 1/P3.
func DefaultParams() Params {
	return Params{
		N:       300,
		Length:  50,
		EndTime: 200,
		P1:      -0.3,
		P2:      10,
		P3:      1,
		D1:      1,
		D2:      5,
	}
}

// Validate checks the parameters before any state is allocated, so that a
// bad configuration fails instead of producing NaN or Inf positions.
func (p Params) Validate() error {
	if p.N <= 0 {
		return fmt.Errorf("%w: n must be positive, got %d", ErrInvalidParams, p.N)
	}
	if p.EndTime < 0 {
		return fmt.Errorf("%w: end time must be non-negative, got %d", ErrInvalidParams, p.EndTime)
	}
	if !(p.Length > 0) || math.IsInf(p.Length, 0) {
		return fmt.Errorf("%w: length must be positive and finite, got %v", ErrInvalidParams, p.Length)
	}
	if !(p.D1 > 0) || math.IsInf(p.D1, 0) {
		return fmt.Errorf("%w: d1 must be positive and finite, got %v", ErrInvalidParams, p.D1)
	}
	if !(p.D2 > 0) || math.IsInf(p.D2, 0) {
		return fmt.Errorf("%w: d2 must be positive and finite, got %v", ErrInvalidParams, p.D2)
	}
	for i, v := range []float64{p.P1, p.P2, p.P3} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: p%d must be finite, got %v", ErrInvalidParams, i+1, v)
		}
	}
	return nil
}

// String returns a compact representation for logs.
func (p Params) String() string {
	return fmt.Sprintf("N=%d Length=%g EndTime=%d P=(%g, %g, %g) D=(%g, %g)",
		p.N, p.Length, p.EndTime, p.P1, p.P2, p.P3, p.D1, p.D2)
}
