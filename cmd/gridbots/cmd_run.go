package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/gridbots/audio"
	"github.com/lixenwraith/gridbots/config"
	"github.com/lixenwraith/gridbots/core"
	"github.com/lixenwraith/gridbots/engine"
	"github.com/lixenwraith/gridbots/logging"
	"github.com/lixenwraith/gridbots/render"
	"github.com/lixenwraith/gridbots/status"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Watch the bots move in the terminal",
		Long: `run drives the simulation from a pausable wall clock and draws a
top-down view every frame. Keys: p or space pauses, m mutes audio, q or Esc quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("audio") {
				cfg.View.Audio, _ = cmd.Flags().GetBool("audio")
			}

			// The screen owns stdout; logs go to a file or nowhere
			var logOut io.Writer = io.Discard
			if path, _ := cmd.Flags().GetString("log-file"); path != "" {
				f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				logOut = f
			}
			log := logging.NewLogger(cfg.Log.Level, logOut)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runTerminal(ctx, cfg, log)
		},
	}
	cmd.Flags().Bool("audio", false, "Play a short tone per tick (overrides config view.audio)")
	cmd.Flags().String("log-file", "", "Append logs to this file while the screen is active")
	return cmd
}

func runTerminal(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	sim, err := engine.NewSimulation(cfg.GridConfig(), cfg.Params(), cfg.Bots)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	// Restore the terminal before a panic report is printed
	core.SetCrashHandler(func(r any) {
		screen.Fini()
		core.DefaultCrashHandler(r)
	})

	reg := status.NewRegistry()
	sim.AddObserver(engine.NewStatusObserver(reg))
	sim.AddObserver(engine.NewLogObserver(log))

	var player *audio.Player
	if cfg.View.Audio {
		player, err = audio.NewPlayer(cfg.View.Volume, log)
		if err != nil {
			log.Warn("audio disabled", "err", err)
			player = nil
		} else {
			defer player.Close()
			sim.AddObserver(player)
		}
	}
	muted := false

	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	ticks := engine.NewClockScheduler(sim, clock, cfg.Movement.TickInterval, log)
	ticks.Start()
	defer ticks.Stop()

	log.Info("run started",
		"bots", cfg.Bots, "columns", cfg.Grid.Columns, "rows", cfg.Grid.Rows,
		"seed", cfg.Seed, "workers", cfg.Movement.Workers)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})

	renderer := render.NewTerminalRenderer(screen, sim.Grid())
	frameTicker := time.NewTicker(cfg.View.FrameInterval)
	defer frameTicker.Stop()

	var frame engine.Frame
	draw := func() {
		sim.Snapshot(clock.Elapsed(), &frame)
		renderer.RenderFrame(&frame, sim.LastTick(), clock.IsPaused())
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			log.Info("run stopped", "reason", ctx.Err(), "ticks", reg.Int("engine.ticks"))
			return nil

		case ev := <-events:
			switch renderer.HandleEvent(ev) {
			case render.ActionQuit:
				log.Info("run stopped", "reason", "quit", "ticks", reg.Int("engine.ticks"))
				return nil
			case render.ActionPause:
				paused := clock.Toggle()
				log.Debug("pause toggled", "paused", paused)
				draw()
			case render.ActionMute:
				if player != nil {
					muted = !muted
					player.SetMuted(muted)
				}
			case render.ActionRedraw:
				draw()
			}

		case <-frameTicker.C:
			if !clock.IsPaused() {
				draw()
			}
		}
	}
}
