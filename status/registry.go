package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric names published by the scene loop and resource loader
const (
	Ticks            = "engine.ticks"
	Skipped          = "engine.skipped"
	Objects          = "engine.objects"
	Time             = "engine.time"
	FrameMS          = "engine.frame_ms"
	Running          = "engine.running"
	ResourcesPending = "resources.pending"
	ResourcesLoaded  = "resources.loaded"
	ResourcesFailed  = "resources.failed"
	Phase            = "engine.phase"
)

// Registry holds the metrics of one scene
// Writers cache the pointers returned by Get and update the atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Count returns the number of registered metrics of every kind
func (r *Registry) Count() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies every metric value into a plain map
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Count())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}

// Format renders the metrics as sorted "key=value" pairs separated by spaces
func (r *Registry) Format() string {
	var parts []string
	r.Bools.Range(func(k string, v *atomic.Bool) { parts = append(parts, fmt.Sprintf("%s=%t", k, v.Load())) })
	r.Ints.Range(func(k string, v *atomic.Int64) { parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load())) })
	r.Floats.Range(func(k string, v *AtomicFloat) { parts = append(parts, fmt.Sprintf("%s=%.2f", k, v.Get())) })
	r.Strings.Range(func(k string, v *AtomicString) { parts = append(parts, fmt.Sprintf("%s=%s", k, v.Load())) })
	return strings.Join(parts, " ")
}
