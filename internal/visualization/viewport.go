package visualization

import (
	"math"

	"musselbed-sim/internal/common"
)

const padding = 40.0 // Отступ от краев экрана

// Viewport maps bed coordinates (origin bottom-left, Y up) to screen
// coordinates (origin top-left, Y down), fitting the Length×Length square
// into the window with a fixed padding and preserved aspect ratio.
type Viewport struct {
	length float64

	screenWidth  int
	screenHeight int

	scale   float64
	offsetX float64
	offsetY float64
}

// NewViewport creates a viewport for a bed of side length.
func NewViewport(length float64) *Viewport {
	return &Viewport{length: length, scale: 1}
}

// Resize recalculates the transform for a new window size.
func (v *Viewport) Resize(width, height int) {
	v.screenWidth = width
	v.screenHeight = height

	usableW := float64(width) - 2*padding
	usableH := float64(height) - 2*padding
	v.scale = math.Min(usableW, usableH) / v.length
	if v.scale <= 0 || math.IsNaN(v.scale) || math.IsInf(v.scale, 0) {
		v.scale = 1.0 // Window smaller than padding
	}

	side := v.length * v.scale
	v.offsetX = (float64(width) - side) / 2
	v.offsetY = (float64(height) - side) / 2
}

// ToScreen converts a bed point to screen coordinates.
func (v *Viewport) ToScreen(p common.Point) (float32, float32) {
	sx := v.offsetX + p.X*v.scale
	sy := v.offsetY + (v.length-p.Y)*v.scale // Flip Y
	return float32(sx), float32(sy)
}

// Scale returns screen pixels per bed unit.
func (v *Viewport) Scale() float64 {
	return v.scale
}

// Bounds returns the screen rectangle covered by the bed.
func (v *Viewport) Bounds() (x, y, w, h float32) {
	side := float32(v.length * v.scale)
	return float32(v.offsetX), float32(v.offsetY), side, side
}
