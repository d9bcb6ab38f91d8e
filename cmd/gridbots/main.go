// Command gridbots runs the bot grid simulation in a terminal or headless
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/gridbots/config"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridbots",
		Short: "Simulate bots wandering a grid along single-axis moves",
		Long: `gridbots moves many independent bots across a discrete grid.

Once per tick every idle bot picks a nearby cell along one axis, waits a
random start delay and travels there at a random per-cell pace. Runs are
reproducible from the seed.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML config file")
	pf.Uint64("seed", 0, "RNG seed (overrides config)")
	pf.Int("bots", 0, "Number of bots (overrides config)")
	pf.Int("columns", 0, "Grid columns (overrides config)")
	pf.Int("rows", 0, "Grid rows (overrides config)")
	pf.Int("workers", 0, "Parallel scheduler workers, >1 enables partitioned streams")
	pf.String("log-level", "", "Log level: error, warn, info, debug, trace")

	rootCmd.AddCommand(
		newRunCmd(),
		newSimulateCmd(),
		newFramesCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// loadConfig resolves defaults < file < environment < flags and validates the result
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	for name, dst := range map[string]*int{
		"bots":    &cfg.Bots,
		"columns": &cfg.Grid.Columns,
		"rows":    &cfg.Grid.Rows,
		"workers": &cfg.Movement.Workers,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
}
