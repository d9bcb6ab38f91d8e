package engine

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/gridbots/bot"
	"github.com/lixenwraith/gridbots/grid"
	"github.com/lixenwraith/gridbots/rng"
)

// TickStats summarizes one scheduler pass
// Idle and Moving are counted before any transition in that pass
type TickStats struct {
	Tick     uint64
	Now      time.Duration
	Idle     int
	Moving   int
	Started  int
	Finished int
}

func (s *TickStats) add(o TickStats) {
	s.Idle += o.Idle
	s.Moving += o.Moving
	s.Started += o.Started
	s.Finished += o.Finished
}

// Scheduler owns every bot's state and applies the idle/moving transition rules once per tick
// Single writer: callers serialize Tick, Spawn and Load
type Scheduler struct {
	grid   grid.Config
	params Params

	// source is the single sequential stream; unused by parallel ticks after spawn
	source rng.Source

	bots []bot.State
	tick uint64
}

// NewScheduler validates configuration and seeds the stream
func NewScheduler(g grid.Config, p Params) (*Scheduler, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	return &Scheduler{
		grid:   g,
		params: p,
		source: rng.New(p.Seed),
	}, nil
}

// Spawn appends n bots, each Idle on a uniformly random cell
func (s *Scheduler) Spawn(n int) {
	for i := 0; i < n; i++ {
		c := grid.Coordinate{
			X: s.source.IntRange(0, s.grid.Columns),
			Y: s.source.IntRange(0, s.grid.Rows),
		}
		s.bots = append(s.bots, bot.Idle(c))
	}
}

// Load replaces the bot collection with a copy of states
func (s *Scheduler) Load(states []bot.State) {
	s.bots = append(s.bots[:0], states...)
}

// States copies current bot states into dst, growing it as needed
func (s *Scheduler) States(dst []bot.State) []bot.State {
	return append(dst[:0], s.bots...)
}

func (s *Scheduler) Len() int { return len(s.bots) }

func (s *Scheduler) Grid() grid.Config { return s.grid }

func (s *Scheduler) Params() Params { return s.params }

// Ticks returns the number of completed Tick calls
func (s *Scheduler) Ticks() uint64 { return s.tick }

// Tick runs one scheduling pass at simulation time now
func (s *Scheduler) Tick(now time.Duration) TickStats {
	var stats TickStats
	if s.params.Workers > 1 && len(s.bots) > 1 {
		stats = s.tickParallel(now)
	} else {
		for i := range s.bots {
			stats.add(s.step(i, now, s.source))
		}
	}

	stats.Tick = s.tick
	stats.Now = now
	s.tick++
	return stats
}

// tickParallel splits bots into contiguous chunks, each bot drawing from its own derived stream
func (s *Scheduler) tickParallel(now time.Duration) TickStats {
	workers := min(s.params.Workers, len(s.bots))
	chunk := (len(s.bots) + workers - 1) / workers
	partial := make([]TickStats, workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(s.bots))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				partial[w].add(s.step(i, now, rng.Derive(s.params.Seed, s.tick, i)))
			}
			return nil
		})
	}
	_ = g.Wait()

	var stats TickStats
	for _, p := range partial {
		stats.add(p)
	}
	return stats
}

// step transitions bot i and reports what happened as a one-bot TickStats
func (s *Scheduler) step(i int, now time.Duration, src rng.Source) TickStats {
	state := s.bots[i]
	switch state.Kind() {
	case bot.KindIdle:
		cell, _ := state.Cell()
		s.bots[i] = bot.Moving(s.plan(cell, now, src))
		return TickStats{Idle: 1, Started: 1}

	case bot.KindMoving:
		m, _ := state.Move()
		// Retired bots stay Idle until the next pass, giving every bot at least one idle tick
		if now > m.End() {
			s.bots[i] = bot.Idle(m.Destination())
			return TickStats{Moving: 1, Finished: 1}
		}
		return TickStats{Moving: 1}
	}
	return TickStats{}
}

// plan draws a new move for a bot idle on cell
// Draw order is fixed: axis, ordinate, per-cell rate, start delay
func (s *Scheduler) plan(cell grid.Coordinate, now time.Duration, src rng.Source) bot.Move {
	axis := grid.AxisY
	if src.Bool() {
		axis = grid.AxisX
	}

	lo, hi := Window(cell.Ordinate(axis), s.params.Window, s.grid.Extent(axis))
	target := bot.AxialTarget{Axis: axis, Ordinate: src.IntRangeInclusive(lo, hi)}

	rate := src.IntRange(millis(s.params.RateMin), millis(s.params.RateMax))
	delay := src.IntRangeInclusive(millis(s.params.DelayMin), millis(s.params.DelayMax))

	return bot.Move{
		Origin:    cell,
		Target:    target,
		StartTime: now + time.Duration(delay)*time.Millisecond,
		Duration:  time.Duration(target.Distance(cell)*rate) * time.Millisecond,
	}
}

// Window returns the closed range of ordinates reachable from current, clamped to [0, extent)
func Window(current, halfWidth, extent int) (lo, hi int) {
	lo = 0
	if current > halfWidth {
		lo = current - halfWidth
	}
	hi = min(current+halfWidth, extent-1)
	return lo, hi
}
