package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/gridbots/core"
)

// ClockScheduler drives Simulation ticks on a fixed wall-clock interval
// Runs independently of the render loop; pause-aware without busy-wait
type ClockScheduler struct {
	sim   *Simulation
	clock *PausableClock
	log   *slog.Logger

	tickInterval     time.Duration
	nextTickDeadline time.Duration
	mu               sync.Mutex

	tickCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// tickDone receives a non-blocking signal after each pass
	tickDone chan struct{}
}

// NewClockScheduler creates a scheduler firing sim ticks every interval of clock time
func NewClockScheduler(sim *Simulation, clock *PausableClock, interval time.Duration, log *slog.Logger) *ClockScheduler {
	return &ClockScheduler{
		sim:          sim,
		clock:        clock,
		log:          log,
		tickInterval: interval,
		stopChan:     make(chan struct{}),
		tickDone:     make(chan struct{}, 1),
	}
}

// TickDone returns a channel signalled after each pass, coalescing missed signals
func (cs *ClockScheduler) TickDone() <-chan struct{} {
	return cs.tickDone
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for it to exit; safe to call repeatedly
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// TickCount returns passes executed so far
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = cs.clock.Elapsed() + cs.tickInterval
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		var sleepDuration time.Duration

		if cs.clock.IsPaused() {
			// Longer sleep while paused to save CPU
			sleepDuration = cs.tickInterval * 2
		} else {
			now := cs.clock.Elapsed()

			cs.mu.Lock()
			deadline := cs.nextTickDeadline
			cs.mu.Unlock()

			if now >= deadline {
				stats := cs.sim.TickAt(now)
				cs.tickCount.Add(1)

				cs.mu.Lock()
				cs.nextTickDeadline += cs.tickInterval
				// Drop missed ticks instead of bursting to catch up
				if now-cs.nextTickDeadline > cs.tickInterval*2 {
					cs.log.Warn("scheduler fell behind, resynchronizing",
						"behind", now-cs.nextTickDeadline, "tick", stats.Tick)
					cs.nextTickDeadline = now + cs.tickInterval
				}
				deadline = cs.nextTickDeadline
				cs.mu.Unlock()

				select {
				case cs.tickDone <- struct{}{}:
				default:
				}

				sleepDuration = max(deadline-cs.clock.Elapsed(), 0)
			} else {
				sleepDuration = deadline - now
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.stopChan:
				return
			}
		}
	}
}
