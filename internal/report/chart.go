// Package report renders run summaries as PNG charts.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"musselbed-sim/internal/analysis"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrTooFewPoints is returned when a series has fewer than two finite values.
var ErrTooFewPoints = errors.New("need at least two finite points to chart")

// ChartOptions sizes the rendered chart. Zero values use go-chart defaults.
type ChartOptions struct {
	Title  string
	Width  int
	Height int
}

// AggregationChart renders the Clark–Evans index over time as a PNG, with a
// reference line at R = 1 (random layout). Steps whose index is NaN are
// skipped.
func AggregationChart(w io.Writer, series []analysis.FrameStats, opts ChartOptions) error {
	xs := make([]float64, 0, len(series))
	ys := make([]float64, 0, len(series))
	for _, fs := range series {
		if math.IsNaN(fs.ClarkEvans) || math.IsInf(fs.ClarkEvans, 0) {
			continue
		}
		xs = append(xs, float64(fs.Step))
		ys = append(ys, fs.ClarkEvans)
	}
	if len(xs) < 2 {
		return ErrTooFewPoints
	}

	random := make([]float64, len(xs))
	for i := range random {
		random[i] = 1
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name:  "step",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Clark-Evans R",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "R",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "random",
				XValues: xs,
				YValues: random,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 160, G: 160, B: 160, A: 255}, StrokeWidth: 1.0, StrokeDashArray: []float64{4, 4}},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering aggregation chart: %w", err)
	}
	return nil
}

// AggregationImage renders the chart and decodes it for on-screen use.
func AggregationImage(series []analysis.FrameStats, opts ChartOptions) (image.Image, error) {
	var buf bytes.Buffer
	if err := AggregationChart(&buf, series, opts); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decoding aggregation chart: %w", err)
	}
	return img, nil
}
