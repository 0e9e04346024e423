package main

import (
	"fmt"
	"os"

	"musselbed-sim/internal/report"

	"github.com/spf13/cobra"
)

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Run the model and write the aggregation index over time as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath, _ := cmd.Flags().GetString("out")
			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			res, err := execute(cmd.Context(), cfg, newLogger(cfg, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating chart file: %w", err)
			}
			opts := report.ChartOptions{Title: res.history.RunID, Width: width, Height: height}
			if err := report.AggregationChart(f, res.series, opts); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing chart file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d steps)\n", outPath, res.history.Recorded())
			return nil
		},
	}
	addModelFlags(cmd)
	cmd.Flags().String("out", "aggregation.png", "Output PNG path")
	cmd.Flags().Int("width", 1024, "Chart width in pixels")
	cmd.Flags().Int("height", 400, "Chart height in pixels")
	return cmd
}
