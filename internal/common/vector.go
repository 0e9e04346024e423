package common

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Point is a position on the 2D mussel bed.
type Point struct {
	X float64
	Y float64
}

// RandomPoint returns a point drawn uniformly from [0, length)².
// X is drawn before Y so that a fixed generator gives a fixed layout.
func RandomPoint(rng *rand.Rand, length float64) Point {
	x := rng.Float64() * length
	y := rng.Float64() * length
	return Point{X: x, Y: y}
}

// RandomPoints places n points uniformly in [0, length)².
func RandomPoints(rng *rand.Rand, n int, length float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = RandomPoint(rng, length)
	}
	return pts
}

// Distance calculates the Euclidean distance between two points.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Add returns p moved by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Wrap applies the single-pass edge correction to both coordinates.
func (p Point) Wrap(length float64) Point {
	return Point{X: Wrap(p.X, length), Y: Wrap(p.Y, length)}
}

// InDomain reports whether both coordinates lie in [0, length).
func (p Point) InDomain(length float64) bool {
	return p.X >= 0 && p.X < length && p.Y >= 0 && p.Y < length
}

// Wrap moves a coordinate that left [0, length] back by one domain length.
// It is a single correction, not a modulo: a value more than one length
// outside the domain stays outside.
func Wrap(v, length float64) float64 {
	if v < 0 {
		return v + length
	}
	if v > length {
		return v - length
	}
	return v
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", p.X, p.Y)
}

// ClonePoints creates a deep copy of a point slice.
func ClonePoints(pts []Point) []Point {
	clone := make([]Point, len(pts))
	copy(clone, pts)
	return clone
}
