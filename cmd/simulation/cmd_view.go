package main

import (
	"musselbed-sim/internal/visualization"

	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Run the model and replay it in a window",
		Long: `Run the model to completion, then open a window that replays the bed one
step per tick. Space pauses; the arrow keys step while paused.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tps, _ := cmd.Flags().GetInt("tps")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			res, err := execute(cmd.Context(), cfg, newLogger(cfg, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			return visualization.Show(res.history, res.series, tps)
		},
	}
	addModelFlags(cmd)
	cmd.Flags().Int("tps", 20, "Replay speed in steps per second")
	return cmd
}
