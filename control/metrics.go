// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics registry. Holds flat key/value metrics, including ring
// snapshots published by the broadcast harness.

package control

import (
	"strconv"
	"sync"
	"time"

	"github.com/momentics/hioload-bcast/api"
)

// MetricsRegistry holds mutable and read-only metrics.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// SetRingStats publishes st under prefix, e.g. "ring.capacity" and
// "ring.reader.3.lag".
func (mr *MetricsRegistry) SetRingStats(prefix string, st api.RingStats) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.metrics[prefix+".capacity"] = st.Capacity
	mr.metrics[prefix+".write_progress"] = st.WriteProgress
	mr.metrics[prefix+".slowest"] = st.Slowest
	mr.metrics[prefix+".readers"] = len(st.Readers)
	mr.metrics[prefix+".backpressure"] = st.Backpressure
	mr.metrics[prefix+".stalls"] = st.Stalls
	for _, r := range st.Readers {
		key := prefix + ".reader." + strconv.Itoa(r.Slot)
		mr.metrics[key+".progress"] = r.Progress
		mr.metrics[key+".lag"] = r.Lag
	}
	mr.updated = time.Now()
}

// Updated returns the time of the last write.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}
