// Package rng provides the seeded random stream that drives bot scheduling
// Outcomes are reproducible from the seed as long as draws happen in a fixed order
package rng

// Source is the sampling surface the scheduler consumes
type Source interface {
	// Bool returns a fair coin flip
	Bool() bool
	// IntRange returns a uniform int in [lo, hi)
	IntRange(lo, hi int) int
	// IntRangeInclusive returns a uniform int in [lo, hi]
	IntRangeInclusive(lo, hi int) int
}

// Rand is a xorshift64 (13, 7, 17) generator
// Not safe for concurrent use; one owner per stream
type Rand struct {
	state uint64
}

// New creates a stream from seed, zero is remapped since xorshift has a zero fixed point
func New(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{state: seed}
}

// Derive returns an independent stream for one bot in one tick
// Identical (seed, tick, index) always yields the identical stream regardless of which worker asks
func Derive(seed, tick uint64, index int) *Rand {
	s := splitmix(seed)
	s = splitmix(s ^ tick)
	s = splitmix(s ^ uint64(index))
	return New(s)
}

// splitmix64 finalizer, spreads correlated inputs across the state space
func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func (r *Rand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// Intn returns a value in [0, n), 0 for n <= 0
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Bool uses the high bit, low xorshift bits are weaker
func (r *Rand) Bool() bool {
	return r.Next()>>63 == 1
}

// IntRange returns lo when the range is empty
func (r *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo)
}

func (r *Rand) IntRangeInclusive(lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}
