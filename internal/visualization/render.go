package visualization

import (
	"fmt"
	"image/color"
	"math"

	"musselbed-sim/internal/analysis"
	"musselbed-sim/internal/report"
	"musselbed-sim/internal/simulation"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	musselRadiusOnScreen = 2.5 // Базовый радиус объектов на экране
	chartWidth           = 360
	chartHeight          = 160
)

var (
	backgroundColor = color.RGBA{230, 230, 230, 255}
	bedColor        = color.RGBA{200, 215, 225, 255}
	musselColor     = color.RGBA{40, 40, 90, 255}
)

// Replay implements ebiten.Game and plays back a finished run one frame per
// tick. It only reads the history.
type Replay struct {
	history  *simulation.History
	series   []analysis.FrameStats
	viewport *Viewport

	frame  int
	paused bool

	chart *ebiten.Image // Nil when the run is too short to chart
}

// NewReplay creates a replay of h. series may be nil, in which case the
// overlay omits the aggregation index.
func NewReplay(h *simulation.History, series []analysis.FrameStats) *Replay {
	r := &Replay{
		history:  h,
		series:   series,
		viewport: NewViewport(h.Params.Length),
	}
	if img, err := report.AggregationImage(series, report.ChartOptions{Width: chartWidth, Height: chartHeight}); err == nil {
		r.chart = ebiten.NewImageFromImage(img)
	}
	return r
}

// Update advances the frame counter. Space pauses, arrow keys step.
func (r *Replay) Update() error {
	if r.history.Recorded() == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		r.paused = !r.paused
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		r.frame = min(r.frame+1, r.history.Recorded()-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		r.frame = max(r.frame-1, 0)
	case !r.paused:
		r.frame = (r.frame + 1) % r.history.Recorded()
	}
	return nil
}

// Draw is called every frame to render the bed.
func (r *Replay) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	bx, by, bw, bh := r.viewport.Bounds()
	vector.DrawFilledRect(screen, bx, by, bw, bh, bedColor, false)

	if r.history.Recorded() == 0 {
		ebitenutil.DebugPrint(screen, "Нет данных для отображения")
		return
	}

	radius := float32(math.Max(musselRadiusOnScreen, 0.2*r.viewport.Scale()))
	for _, p := range r.history.Frame(r.frame) {
		x, y := r.viewport.ToScreen(p)
		vector.DrawFilledCircle(screen, x, y, radius, musselColor, true)
	}

	if r.chart != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(screen.Bounds().Dx()-chartWidth-10), 10)
		op.ColorScale.ScaleAlpha(0.85)
		screen.DrawImage(r.chart, op)
	}

	r.drawDebugInfo(screen)
}

func (r *Replay) drawDebugInfo(screen *ebiten.Image) {
	h := r.history
	msg := fmt.Sprintf("%s  seed %d\n", h.RunID, h.Seed)
	msg += fmt.Sprintf("Step %d/%d", r.frame+1, h.Recorded())
	if r.paused {
		msg += " (paused)"
	}
	msg += "\n"
	msg += fmt.Sprintf("Mussels: %d, Bed: %.1f\n", h.Agents(), h.Params.Length)
	if r.frame < len(r.series) {
		fs := r.series[r.frame]
		msg += fmt.Sprintf("Clark-Evans R: %.3f, mean NN: %.3f\n", fs.ClarkEvans, fs.MeanNN)
	}
	msg += fmt.Sprintf("FPS: %.1f, TPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	ebitenutil.DebugPrint(screen, msg)
}

// Layout is called when the window size changes.
func (r *Replay) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.viewport.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Show opens a window and blocks until it is closed.
func Show(h *simulation.History, series []analysis.FrameStats, tps int) error {
	ebiten.SetWindowSize(900, 900)
	ebiten.SetWindowTitle(fmt.Sprintf("Mussel bed %s", h.RunID))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if tps > 0 {
		ebiten.SetTPS(tps)
	}
	return ebiten.RunGame(NewReplay(h, series))
}
