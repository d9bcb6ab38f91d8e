package engine

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/gridbots/bot"
	"github.com/lixenwraith/gridbots/grid"
)

// TickObserver receives a summary after every scheduler pass
// Called with the simulation write lock held; must not call back into Simulation
type TickObserver interface {
	ObserveTick(stats TickStats, took time.Duration)
}

// Simulation couples the scheduler with its clock and guards state for concurrent readers
// Ticks take the write lock, position queries take the read lock
type Simulation struct {
	mu sync.RWMutex

	sched  *Scheduler
	ticker *Ticker
	now    time.Duration
	last   TickStats

	observers []TickObserver
}

// NewSimulation builds a scheduler and spawns bots Idle on random cells
func NewSimulation(g grid.Config, p Params, bots int) (*Simulation, error) {
	sched, err := NewScheduler(g, p)
	if err != nil {
		return nil, err
	}
	sched.Spawn(bots)
	return &Simulation{
		sched:  sched,
		ticker: NewTicker(p.TickInterval),
	}, nil
}

// AddObserver registers o for tick summaries, must be called before the simulation is driven
func (s *Simulation) AddObserver(o TickObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Step advances simulation time by dt, running a scheduler pass when the tick interval elapses
func (s *Simulation) Step(dt time.Duration) (TickStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now += dt
	if !s.ticker.Advance(dt) {
		return TickStats{}, false
	}
	return s.tickLocked(), true
}

// TickAt runs a scheduler pass at an externally supplied simulation time
// Used by the real-time clock driver; now must not go backwards
func (s *Simulation) TickAt(now time.Duration) TickStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now > s.now {
		s.now = now
	}
	return s.tickLocked()
}

func (s *Simulation) tickLocked() TickStats {
	start := time.Now()
	stats := s.sched.Tick(s.now)
	took := time.Since(start)

	s.last = stats
	for _, o := range s.observers {
		o.ObserveTick(stats, took)
	}
	return stats
}

// Now returns the current simulation time
func (s *Simulation) Now() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

// LastTick returns the summary of the most recent pass
func (s *Simulation) LastTick() TickStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Simulation) Grid() grid.Config {
	return s.sched.Grid()
}

func (s *Simulation) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.Len()
}

// States copies bot states into dst
func (s *Simulation) States(dst []bot.State) []bot.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.States(dst)
}

// Positions evaluates every bot's render position at time now into dst
func (s *Simulation) Positions(now time.Duration, dst []mgl32.Vec3) []mgl32.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.sched.Grid()
	dst = dst[:0]
	for _, st := range s.sched.bots {
		dst = append(dst, bot.Position(g, st, now))
	}
	return dst
}

// Frame is one render snapshot: states and positions evaluated under a single read lock
type Frame struct {
	Now       time.Duration
	States    []bot.State
	Positions []mgl32.Vec3
}

// Snapshot fills f at time now, reusing its slices
func (s *Simulation) Snapshot(now time.Duration, f *Frame) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.sched.Grid()
	f.Now = now
	f.States = s.sched.States(f.States)
	f.Positions = f.Positions[:0]
	for _, st := range f.States {
		f.Positions = append(f.Positions, bot.Position(g, st, now))
	}
}
