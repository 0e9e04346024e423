package simulation

import (
	"math"
	"math/rand/v2"
	"testing"

	"musselbed-sim/internal/common"
)

func TestStepSize(t *testing.T) {
	tests := []struct {
		name string
		u    float64
		beta float64
		want float64
	}{
		{"u of one gives zero", 1, 3, 0},
		{"u of 1/e gives beta", math.Exp(-1), 0.7, 0.7},
		{"u of 1/e² gives two beta", math.Exp(-2), 0.7, 1.4},
		{"zero beta never moves", 0.3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StepSize(tt.u, tt.beta)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("StepSize(%v, %v) = %v, want %v", tt.u, tt.beta, got, tt.want)
			}
		})
	}
}

func TestHeadingRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	var sumSin, sumCos float64
	const n = 20000
	for i := 0; i < n; i++ {
		h := Heading(rng)
		if h < 0 || h >= 2*math.Pi {
			t.Fatalf("heading %v outside [0, 2π)", h)
		}
		sumSin += math.Sin(h)
		sumCos += math.Cos(h)
	}
	// A uniform heading has no preferred direction.
	if math.Abs(sumSin/n) > 0.03 || math.Abs(sumCos/n) > 0.03 {
		t.Errorf("mean direction (%v, %v) not near zero", sumSin/n, sumCos/n)
	}
}

func TestDrawStepSizesFinite(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	betas := make([]float64, 10000)
	for i := range betas {
		betas[i] = 1
	}
	dst := make([]float64, len(betas))
	DrawStepSizes(rng, betas, dst)
	for i, v := range dst {
		if math.IsInf(v, 0) || math.IsNaN(v) || v < 0 {
			t.Fatalf("step %d = %v", i, v)
		}
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name    string
		from    common.Point
		heading float64
		step    float64
		want    common.Point
	}{
		{"north", common.Point{X: 5, Y: 5}, 0, 2, common.Point{X: 5, Y: 7}},
		{"east", common.Point{X: 5, Y: 5}, math.Pi / 2, 2, common.Point{X: 7, Y: 5}},
		{"south wraps", common.Point{X: 5, Y: 0.5}, math.Pi, 1, common.Point{X: 5, Y: 9.5}},
		{"west wraps", common.Point{X: 0.25, Y: 5}, 3 * math.Pi / 2, 0.75, common.Point{X: 9.5, Y: 5}},
		{"zero step", common.Point{X: 3, Y: 4}, 1.234, 0, common.Point{X: 3, Y: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Move(tt.from, tt.heading, tt.step, 10)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Move = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMove_LongStepOverflows(t *testing.T) {
	// A single step longer than the bed is corrected only once.
	got := Move(common.Point{X: 5, Y: 5}, 0, 25, 10)
	if got.InDomain(10) {
		t.Errorf("expected overflow to remain outside the bed, got %v", got)
	}
	if math.Abs(got.Y-20) > 1e-9 {
		t.Errorf("Y = %v, want 20", got.Y)
	}
}
