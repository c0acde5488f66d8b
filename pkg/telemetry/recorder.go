package telemetry

import (
	"sort"
	"sync"

	"github.com/aretw0/truman/pkg/ports"
)

// Recorder implements ports.Telemetry and ports.TelemetrySource in memory.
// Safe for concurrent use.
type Recorder struct {
	mu      sync.RWMutex
	latest  map[string]any
	reports uint64
}

var (
	_ ports.Telemetry       = (*Recorder)(nil)
	_ ports.TelemetrySource = (*Recorder)(nil)
)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{latest: make(map[string]any)}
}

// Report stores value as the latest value of key.
func (r *Recorder) Report(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest[key] = value
	r.reports++
}

// Get returns the latest value of key.
func (r *Recorder) Get(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.latest[key]
	return v, ok
}

// Snapshot returns a copy of the latest values.
func (r *Recorder) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any, len(r.latest))
	for k, v := range r.latest {
		out[k] = v
	}
	return out
}

// Keys returns the reported keys in sorted order.
func (r *Recorder) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.latest))
	for k := range r.latest {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reports is the total number of Report calls.
func (r *Recorder) Reports() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reports
}
