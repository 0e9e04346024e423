// Package analysis measures how aggregated a mussel bed is.
//
// The main measure is the Clark–Evans index R: the observed mean
// nearest-neighbour distance divided by 0.5/√ρ, the value expected for the
// same density ρ under complete spatial randomness. R ≈ 1 for a random
// layout, R < 1 for clumped beds and R > 1 for regular spacing.
package analysis

import (
	"context"
	"fmt"
	"math"

	"musselbed-sim/internal/common"
	"musselbed-sim/internal/density"
	"musselbed-sim/internal/simulation"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// FrameStats summarises one snapshot of the bed.
type FrameStats struct {
	Step          int
	MeanNN        float64 // Mean nearest-neighbour distance
	ClarkEvans    float64 // NaN when fewer than two mussels
	MeanDensityD1 float64
	MeanDensityD2 float64
}

// NearestNeighbour returns each agent's distance to its closest neighbour.
// An agent with no neighbour gets +Inf.
func NearestNeighbour(dist *mat.SymDense) []float64 {
	if dist == nil {
		return []float64{}
	}
	n := dist.SymmetricDim()
	nn := make([]float64, n)
	for i := range nn {
		nn[i] = math.Inf(1)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := dist.At(i, j)
			nn[i] = math.Min(nn[i], d)
			nn[j] = math.Min(nn[j], d)
		}
	}
	return nn
}

// ExpectedNN is the mean nearest-neighbour distance of n points placed at
// random on a length×length square.
func ExpectedNN(n int, length float64) float64 {
	rho := float64(n) / (length * length)
	return 0.5 / math.Sqrt(rho)
}

// ClarkEvans returns R for the given layout, or NaN for fewer than two
// points.
func ClarkEvans(pts []common.Point, length float64) (float64, error) {
	if len(pts) < 2 {
		return math.NaN(), nil
	}
	dist, err := density.Distances(context.Background(), pts, 1)
	if err != nil {
		return 0, err
	}
	return clarkEvans(NearestNeighbour(dist), length), nil
}

func clarkEvans(nn []float64, length float64) float64 {
	if len(nn) < 2 {
		return math.NaN()
	}
	return stat.Mean(nn, nil) / ExpectedNN(len(nn), length)
}

// Summarize computes FrameStats for one frame.
func Summarize(ctx context.Context, pts []common.Point, length, d1, d2 float64) (FrameStats, error) {
	if len(pts) == 0 {
		return FrameStats{MeanNN: math.NaN(), ClarkEvans: math.NaN()}, nil
	}
	dist, err := density.Distances(ctx, pts, 1)
	if err != nil {
		return FrameStats{}, fmt.Errorf("summarize frame: %w", err)
	}

	nn := NearestNeighbour(dist)
	meanNN := math.NaN()
	if len(nn) > 1 {
		meanNN = stat.Mean(nn, nil)
	}
	n := float64(len(pts))
	return FrameStats{
		MeanNN:        meanNN,
		ClarkEvans:    clarkEvans(nn, length),
		MeanDensityD1: floats.Sum(density.Densities(dist, d1)) / n,
		MeanDensityD2: floats.Sum(density.Densities(dist, d2)) / n,
	}, nil
}

// Series returns one FrameStats per recorded step of h.
func Series(ctx context.Context, h *simulation.History) ([]FrameStats, error) {
	p := h.Params
	out := make([]FrameStats, 0, h.Recorded())
	for t := 0; t < h.Recorded(); t++ {
		fs, err := Summarize(ctx, h.Frame(t), p.Length, p.D1, p.D2)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", t, err)
		}
		fs.Step = t
		out = append(out, fs)
	}
	return out, nil
}

// ClarkEvansSeries extracts R from a stats series, in step order.
func ClarkEvansSeries(series []FrameStats) []float64 {
	out := make([]float64, len(series))
	for i, fs := range series {
		out[i] = fs.ClarkEvans
	}
	return out
}
