package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/gridbots/status"
)

// StatusObserver publishes tick summaries to the metrics registry
// Pointers are cached at construction; updates are lock-free
type StatusObserver struct {
	idle     *atomic.Int64
	moving   *atomic.Int64
	started  *atomic.Int64
	finished *atomic.Int64
	ticks    *atomic.Int64
	tickMs   *status.AtomicFloat
}

func NewStatusObserver(reg *status.Registry) *StatusObserver {
	return &StatusObserver{
		idle:     reg.Ints.Get("bots.idle"),
		moving:   reg.Ints.Get("bots.moving"),
		started:  reg.Ints.Get("bots.started"),
		finished: reg.Ints.Get("bots.finished"),
		ticks:    reg.Ints.Get("engine.ticks"),
		tickMs:   reg.Floats.Get("engine.tick_ms"),
	}
}

func (o *StatusObserver) ObserveTick(stats TickStats, took time.Duration) {
	o.idle.Store(int64(stats.Idle))
	o.moving.Store(int64(stats.Moving))
	o.started.Add(int64(stats.Started))
	o.finished.Add(int64(stats.Finished))
	o.ticks.Add(1)
	o.tickMs.Set(float64(took) / float64(time.Millisecond))
}

// LogObserver writes one debug record per tick
type LogObserver struct {
	log *slog.Logger
}

func NewLogObserver(log *slog.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) ObserveTick(stats TickStats, took time.Duration) {
	if !o.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	o.log.Debug("tick",
		"tick", stats.Tick,
		"now", stats.Now,
		"idle", stats.Idle,
		"moving", stats.Moving,
		"started", stats.Started,
		"finished", stats.Finished,
		"took", took,
	)
}

// ObserverFunc adapts a function to TickObserver
type ObserverFunc func(stats TickStats, took time.Duration)

func (f ObserverFunc) ObserveTick(stats TickStats, took time.Duration) { f(stats, took) }
