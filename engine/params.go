package engine

import (
	"errors"
	"fmt"
	"time"
)

// Reference movement parameters
const (
	DefaultTickInterval = time.Second
	DefaultWindow       = 10
	DefaultRateMin      = 500 * time.Millisecond
	DefaultRateMax      = 1200 * time.Millisecond
	DefaultDelayMin     = 0
	DefaultDelayMax     = 1000 * time.Millisecond
)

// Params holds the scheduler's movement constants
// Durations are sampled at millisecond granularity
type Params struct {
	Seed         uint64
	TickInterval time.Duration

	// Window is the half-width, in cells, of the range a new target ordinate is drawn from
	Window int

	// Per-cell traversal time, drawn from [RateMin, RateMax)
	RateMin time.Duration
	RateMax time.Duration

	// Start delay, drawn from [DelayMin, DelayMax]
	DelayMin time.Duration
	DelayMax time.Duration

	// Workers > 1 switches to partitioned per-bot streams processed in parallel
	Workers int
}

// DefaultParams returns the reference movement behavior
func DefaultParams() Params {
	return Params{
		Seed:         1,
		TickInterval: DefaultTickInterval,
		Window:       DefaultWindow,
		RateMin:      DefaultRateMin,
		RateMax:      DefaultRateMax,
		DelayMin:     DefaultDelayMin,
		DelayMax:     DefaultDelayMax,
		Workers:      1,
	}
}

func (p Params) Validate() error {
	var errs []error
	if p.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %v", p.TickInterval))
	}
	if p.Window < 0 {
		errs = append(errs, fmt.Errorf("window must be >= 0, got %d", p.Window))
	}
	if p.RateMin < 0 || p.RateMax <= p.RateMin {
		errs = append(errs, fmt.Errorf("rate range [%v, %v) is empty or negative", p.RateMin, p.RateMax))
	}
	if p.DelayMin < 0 || p.DelayMax < p.DelayMin {
		errs = append(errs, fmt.Errorf("delay range [%v, %v] is invalid", p.DelayMin, p.DelayMax))
	}
	if p.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", p.Workers))
	}
	return errors.Join(errs...)
}

func millis(d time.Duration) int {
	return int(d / time.Millisecond)
}
