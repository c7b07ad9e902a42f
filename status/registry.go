package status

import "sync/atomic"

// Registry is the live metrics facade shared between the tick and its readers
// The simulation caches pointers at construction and stores after every tick;
// network and telemetry goroutines only load
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[Float]
	Texts  *MetricMap[Text]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[Float](),
		Texts:  NewMetricMap[Text](),
	}
}

// TotalCount returns the number of registered metrics of every type
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Texts.Count()
}

// Values copies every metric into a flat map for status endpoints
func (r *Registry) Values() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *Float) { out[k] = v.Get() })
	r.Texts.Range(func(k string, v *Text) { out[k] = v.Get() })
	return out
}
