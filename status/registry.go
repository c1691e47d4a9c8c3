package status

import "sync/atomic"

// Registry is the central metrics facade
// Systems cache pointers during construction; Update loops write directly to atomics
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Export returns a point-in-time copy of every metric keyed by name
func (r *Registry) Export() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out[key] = v.Load()
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		out[key] = v.Load()
	})
	r.Strings.Range(func(key string, v *AtomicString) {
		out[key] = v.Load()
	})
	return out
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
