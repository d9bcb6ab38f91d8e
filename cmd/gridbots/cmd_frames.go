package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/gridbots/engine"
	"github.com/lixenwraith/gridbots/export"
)

func newFramesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Stream headless frames as newline-delimited GeoJSON",
		Long: `frames steps the simulation by the configured frame interval and writes
one GeoJSON FeatureCollection per frame to stdout: bot positions on the
world x/z plane with their state, plus the grid outline on the first line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			duration, _ := cmd.Flags().GetDuration("duration")
			if cmd.Flags().Changed("frame") {
				cfg.View.FrameInterval, _ = cmd.Flags().GetDuration("frame")
			}
			if duration <= 0 || cfg.View.FrameInterval <= 0 {
				return fmt.Errorf("duration and frame must be positive")
			}

			sim, err := engine.NewSimulation(cfg.GridConfig(), cfg.Params(), cfg.Bots)
			if err != nil {
				return err
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			w := export.NewWriter(out, sim.Grid())
			var f engine.Frame
			for sim.Now() < duration {
				sim.Step(cfg.View.FrameInterval)
				sim.Snapshot(sim.Now(), &f)
				if err := w.WriteFrame(&f, sim.LastTick()); err != nil {
					return err
				}
			}
			return out.Flush()
		},
	}
	cmd.Flags().Duration("duration", 10*time.Second, "Simulated time to export")
	cmd.Flags().Duration("frame", 0, "Frame interval (overrides config view.frame_interval)")
	return cmd
}
