package simulation

import (
	"fmt"
	"math"
	"musselbed-sim/internal/common"

	"github.com/google/uuid"
)

// Mussel is a read-only view of one agent.
type Mussel struct {
	ID       string
	Position common.Point
}

func newMusselID() string {
	return fmt.Sprintf("mussel-%s", uuid.NewString()[:8]) // Shorter unique ID
}

// Move advances p by step along heading (radians, clockwise from +Y) and
// applies the single-pass edge wrap.
func Move(p common.Point, heading, step, length float64) common.Point {
	next := p.Add(math.Sin(heading)*step, math.Cos(heading)*step)
	return next.Wrap(length)
}

// String representation for logging
func (m Mussel) String() string {
	return fmt.Sprintf("Mussel[%s] Pos: %s", m.ID, m.Position)
}
