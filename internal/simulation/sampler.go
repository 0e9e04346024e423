package simulation

import (
	"math"
	"math/rand/v2"
)

// StepSize maps a uniform draw u in (0, 1] to an Exponential(β) step length.
func StepSize(u, beta float64) float64 {
	return -beta * math.Log(u)
}

// Heading draws a direction uniformly from [0°, 360°) and returns it in
// radians.
func Heading(rng *rand.Rand) float64 {
	deg := rng.Float64() * 360
	return deg * math.Pi / 180
}

// DrawStepSizes fills dst with one exponential step per β.
// Float64 returns [0, 1); 1-u moves the draw to (0, 1] so ln never sees 0.
func DrawStepSizes(rng *rand.Rand, betas, dst []float64) {
	for i, b := range betas {
		dst[i] = StepSize(1-rng.Float64(), b)
	}
}

// DrawHeadings fills dst with independent uniform headings.
func DrawHeadings(rng *rand.Rand, dst []float64) {
	for i := range dst {
		dst[i] = Heading(rng)
	}
}
