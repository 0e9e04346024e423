package report

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"musselbed-sim/internal/analysis"
)

func sampleSeries() []analysis.FrameStats {
	return []analysis.FrameStats{
		{Step: 0, ClarkEvans: 1.02},
		{Step: 1, ClarkEvans: math.NaN()},
		{Step: 2, ClarkEvans: 0.91},
		{Step: 3, ClarkEvans: 0.84},
		{Step: 4, ClarkEvans: 0.77},
	}
}

func TestAggregationChart_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := AggregationChart(&buf, sampleSeries(), ChartOptions{Title: "run-test", Width: 400, Height: 200}); err != nil {
		t.Fatalf("AggregationChart: %v", err)
	}
	pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Errorf("output is not a PNG (first bytes %x)", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestAggregationChart_TooFewPoints(t *testing.T) {
	tests := []struct {
		name   string
		series []analysis.FrameStats
	}{
		{"empty", nil},
		{"one point", []analysis.FrameStats{{Step: 0, ClarkEvans: 1}}},
		{"all undefined", []analysis.FrameStats{{Step: 0, ClarkEvans: math.NaN()}, {Step: 1, ClarkEvans: math.NaN()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := AggregationChart(&buf, tt.series, ChartOptions{})
			if !errors.Is(err, ErrTooFewPoints) {
				t.Errorf("error = %v, want ErrTooFewPoints", err)
			}
		})
	}
}

func TestAggregationImage(t *testing.T) {
	img, err := AggregationImage(sampleSeries(), ChartOptions{Width: 300, Height: 150})
	if err != nil {
		t.Fatalf("AggregationImage: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 300 || b.Dy() != 150 {
		t.Errorf("image size = %dx%d, want 300x150", b.Dx(), b.Dy())
	}
}
