package simulation

import (
	"musselbed-sim/internal/common"

	"gonum.org/v1/gonum/mat"
)

// History is the per-mussel position record of a run: X and Y are
// (mussels × steps) matrices, column t holding the positions after step t.
// Columns are written once, in order, by the engine.
type History struct {
	RunID  string
	Seed   uint64
	Params Params

	x, y     *mat.Dense
	recorded int
}

func newHistory(runID string, seed uint64, p Params) *History {
	h := &History{RunID: runID, Seed: seed, Params: p}
	if p.N > 0 && p.EndTime > 0 {
		h.x = mat.NewDense(p.N, p.EndTime, nil)
		h.y = mat.NewDense(p.N, p.EndTime, nil)
	}
	return h
}

func (h *History) record(t int, pts []common.Point) {
	for i, p := range pts {
		h.x.Set(i, t, p.X)
		h.y.Set(i, t, p.Y)
	}
	h.recorded = t + 1
}

// Agents returns the number of mussels tracked.
func (h *History) Agents() int {
	return h.Params.N
}

// Steps returns the number of timesteps the history was sized for.
func (h *History) Steps() int {
	return h.Params.EndTime
}

// Recorded returns how many timesteps have been written so far.
func (h *History) Recorded() int {
	return h.recorded
}

// At returns the position of mussel i after step t.
func (h *History) At(i, t int) common.Point {
	return common.Point{X: h.x.At(i, t), Y: h.y.At(i, t)}
}

// Frame returns every mussel's position after step t.
func (h *History) Frame(t int) []common.Point {
	pts := make([]common.Point, h.Agents())
	for i := range pts {
		pts[i] = h.At(i, t)
	}
	return pts
}

// Track returns the recorded path of mussel i.
func (h *History) Track(i int) []common.Point {
	pts := make([]common.Point, h.recorded)
	for t := range pts {
		pts[t] = h.At(i, t)
	}
	return pts
}

// X returns a copy of the x-coordinate matrix.
func (h *History) X() *mat.Dense {
	return cloneDense(h.x)
}

// Y returns a copy of the y-coordinate matrix.
func (h *History) Y() *mat.Dense {
	return cloneDense(h.y)
}

// Equal reports whether two histories hold the same recorded positions.
func (h *History) Equal(other *History) bool {
	if h.recorded != other.recorded || h.Agents() != other.Agents() {
		return false
	}
	if h.x == nil || other.x == nil {
		return h.x == nil && other.x == nil
	}
	return mat.Equal(h.x, other.x) && mat.Equal(h.y, other.y)
}

func cloneDense(m *mat.Dense) *mat.Dense {
	if m == nil {
		return nil
	}
	return mat.DenseCopyOf(m)
}
