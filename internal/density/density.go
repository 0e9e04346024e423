// Package density turns mussel positions into local crowding measures:
// the all-pairs distance matrix, neighbour counts inside a radius, the
// area-normalised densities and the step-scale parameter β.
package density

import (
	"context"
	"fmt"
	"math"
	"musselbed-sim/internal/common"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// MinAgitation is the floor applied to the agitation score before it is
// inverted into β.
const MinAgitation = 0.001

// Distances computes the full pairwise Euclidean distance matrix.
// With workers > 1 the rows are filled concurrently; each row task writes
// only cells (i, j) with j > i, so tasks never touch the same cell.
// The diagonal is never written and stays zero.
func Distances(ctx context.Context, pts []common.Point, workers int) (*mat.SymDense, error) {
	n := len(pts)
	if n == 0 {
		return nil, nil
	}
	dist := mat.NewSymDense(n, nil)

	if workers <= 1 {
		for i := 0; i < n; i++ {
			fillRow(dist, pts, i)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("distance matrix: %w", err)
		}
		return dist, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fillRow(dist, pts, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("distance matrix: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("distance matrix: %w", err)
	}
	return dist, nil
}

func fillRow(dist *mat.SymDense, pts []common.Point, i int) {
	for j := i + 1; j < len(pts); j++ {
		dist.SetSym(i, j, pts[i].Distance(pts[j]))
	}
}

// CountWithin returns, for each agent, how many other agents lie strictly
// closer than radius. A nil matrix yields an empty result.
func CountWithin(dist *mat.SymDense, radius float64) []int {
	if dist == nil {
		return []int{}
	}
	n := dist.SymmetricDim()
	counts := make([]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if dist.At(i, j) < radius {
				counts[i]++
				counts[j]++
			}
		}
	}
	return counts
}

// Densities returns the neighbour count within radius divided by the disk
// area πr². radius must be positive.
func Densities(dist *mat.SymDense, radius float64) []float64 {
	counts := CountWithin(dist, radius)
	area := math.Pi * radius * radius
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c) / area
	}
	return out
}

// Beta maps the two local densities of one agent to the scale of its
// exponential step-size distribution:
//
//	β = 1 / max(MinAgitation, p1·d1 + p2·d2 + p3)
func Beta(p1, p2, p3, d1, d2 float64) float64 {
	return 1 / math.Max(MinAgitation, p1*d1+p2*d2+p3)
}

// Betas is the vector form of Beta. d1 and d2 must have the same length.
func Betas(p1, p2, p3 float64, d1, d2 []float64) ([]float64, error) {
	if len(d1) != len(d2) {
		return nil, fmt.Errorf("density vectors must have the same length: %d != %d", len(d1), len(d2))
	}
	out := make([]float64, len(d1))
	for i := range d1 {
		out[i] = Beta(p1, p2, p3, d1[i], d2[i])
	}
	return out, nil
}

// Field bundles the per-agent quantities derived from one distance matrix.
type Field struct {
	Dist      *mat.SymDense
	DensityD1 []float64
	DensityD2 []float64
	Beta      []float64
}

// Coefficients are the density-to-agitation weights and the two radii.
type Coefficients struct {
	P1, P2, P3 float64
	D1, D2     float64
}

// Compute runs the whole read phase of a step: distances, both densities
// and β for every agent.
func Compute(ctx context.Context, pts []common.Point, c Coefficients, workers int) (Field, error) {
	dist, err := Distances(ctx, pts, workers)
	if err != nil {
		return Field{}, err
	}
	d1 := Densities(dist, c.D1)
	d2 := Densities(dist, c.D2)
	betas, err := Betas(c.P1, c.P2, c.P3, d1, d2)
	if err != nil {
		return Field{}, err
	}
	return Field{Dist: dist, DensityD1: d1, DensityD2: d2, Beta: betas}, nil
}
