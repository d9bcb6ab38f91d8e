package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/gridbots/engine"
	"github.com/lixenwraith/gridbots/logging"
	"github.com/lixenwraith/gridbots/status"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run headless on a fixed frame step and print a summary",
		Long: `simulate advances the simulation by fixed frame steps without a clock,
logging per-tick idle/moving counts at debug level. Output is identical for
identical seeds and flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			duration, _ := cmd.Flags().GetDuration("duration")
			frame, _ := cmd.Flags().GetDuration("frame")
			if duration <= 0 || frame <= 0 {
				return fmt.Errorf("duration and frame must be positive")
			}

			log := logging.NewLogger(cfg.Log.Level, cmd.ErrOrStderr())
			sim, err := engine.NewSimulation(cfg.GridConfig(), cfg.Params(), cfg.Bots)
			if err != nil {
				return err
			}

			reg := status.NewRegistry()
			sim.AddObserver(engine.NewStatusObserver(reg))
			sim.AddObserver(engine.NewLogObserver(log))

			log.Info("simulation started",
				"bots", cfg.Bots, "columns", cfg.Grid.Columns, "rows", cfg.Grid.Rows,
				"seed", cfg.Seed, "workers", cfg.Movement.Workers, "duration", duration)

			start := time.Now()
			for elapsed := time.Duration(0); elapsed < duration; elapsed += frame {
				sim.Step(frame)
			}
			log.Info("simulation finished", "wall", time.Since(start))

			fmt.Fprintf(cmd.OutOrStdout(), "sim_time=%v ticks=%d idle=%d moving=%d started=%d finished=%d\n",
				sim.Now(),
				reg.Int("engine.ticks"),
				reg.Int("bots.idle"),
				reg.Int("bots.moving"),
				reg.Int("bots.started"),
				reg.Int("bots.finished"),
			)
			return nil
		},
	}
	cmd.Flags().Duration("duration", time.Minute, "Simulated time to run")
	cmd.Flags().Duration("frame", 16*time.Millisecond, "Fixed frame step")
	return cmd
}
