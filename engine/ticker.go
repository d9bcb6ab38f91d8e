package engine

import "time"

// Ticker accumulates frame time and fires once each time the interval elapses
// Decouples the scheduler cadence from the render frame rate
type Ticker struct {
	interval time.Duration
	acc      time.Duration
	fired    uint64
}

func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{interval: interval}
}

// Advance adds dt and reports whether the interval was crossed
// A dt spanning several intervals still fires once; the remainder carries over
func (t *Ticker) Advance(dt time.Duration) bool {
	if dt <= 0 {
		return false
	}
	t.acc += dt
	if t.acc < t.interval {
		return false
	}
	t.acc %= t.interval
	t.fired++
	return true
}

// Remaining returns time left until the next fire
func (t *Ticker) Remaining() time.Duration {
	return t.interval - t.acc
}

func (t *Ticker) Interval() time.Duration { return t.interval }

func (t *Ticker) Fired() uint64 { return t.fired }

func (t *Ticker) Reset() {
	t.acc = 0
	t.fired = 0
}
