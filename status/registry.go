package status

import "sync/atomic"

// Registry is the central metrics facade
// Observers cache pointers at construction; tick loops write directly to atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Int reads an int metric without registering it, zero when absent
func (r *Registry) Int(key string) int64 {
	if !r.Ints.Has(key) {
		return 0
	}
	return r.Ints.Get(key).Load()
}

// Float reads a float metric without registering it, zero when absent
func (r *Registry) Float(key string) float64 {
	if !r.Floats.Has(key) {
		return 0
	}
	return r.Floats.Get(key).Get()
}
