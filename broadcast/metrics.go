// File: broadcast/metrics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Prometheus export of ring state. Progress counters are read at scrape time,
// so the write and read paths carry no metrics cost.

package broadcast

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-bcast/api"
)

// StatsSource is anything that can snapshot a ring.
type StatsSource interface {
	Stats() api.RingStats
}

// Collector exports every channel created WithMetrics.
type Collector struct {
	mu      sync.RWMutex
	sources map[string]StatsSource

	writes       *prometheus.Desc
	reads        *prometheus.Desc
	lag          *prometheus.Desc
	capacity     *prometheus.Desc
	readers      *prometheus.Desc
	backpressure *prometheus.Desc
	stalls       *prometheus.Desc

	registrationFailures *prometheus.CounterVec
	producerRejections   *prometheus.CounterVec
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector. Register it with a prometheus.Registerer.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "bcast"
	}
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "ring", name), help, labels, nil)
	}
	return &Collector{
		sources:      make(map[string]StatsSource),
		writes:       desc("writes_total", "Elements written by the producer.", "channel"),
		reads:        desc("reads_total", "Elements consumed per reader.", "channel", "reader"),
		lag:          desc("reader_lag", "Elements written but not yet read per reader.", "channel", "reader"),
		capacity:     desc("capacity", "Ring slot count.", "channel"),
		readers:      desc("readers", "Registered readers.", "channel"),
		backpressure: desc("backpressure_total", "Writes that waited for the slowest reader.", "channel"),
		stalls:       desc("write_stalls_total", "Writes blocked longer than the stall threshold.", "channel"),
		registrationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ring",
				Name:      "registration_failures_total",
				Help:      "Reader registrations refused because the bound was reached.",
			},
			[]string{"channel"},
		),
		producerRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ring",
				Name:      "producer_rejections_total",
				Help:      "Producer requests refused because one was already issued.",
			},
			[]string{"channel"},
		),
	}
}

// Track exports src under id. Channels built WithMetrics are tracked
// automatically.
func (c *Collector) Track(id string, src StatsSource) {
	c.track(id, src)
}

func (c *Collector) track(id string, src StatsSource) {
	c.mu.Lock()
	c.sources[id] = src
	c.mu.Unlock()
}

// Untrack stops exporting id.
func (c *Collector) Untrack(id string) {
	c.mu.Lock()
	delete(c.sources, id)
	c.mu.Unlock()
	c.registrationFailures.DeleteLabelValues(id)
	c.producerRejections.DeleteLabelValues(id)
}

func (c *Collector) registrationFailed(id string) {
	c.registrationFailures.WithLabelValues(id).Inc()
}

func (c *Collector) producerRejected(id string) {
	c.producerRejections.WithLabelValues(id).Inc()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.writes
	ch <- c.reads
	ch <- c.lag
	ch <- c.capacity
	ch <- c.readers
	ch <- c.backpressure
	ch <- c.stalls
	c.registrationFailures.Describe(ch)
	c.producerRejections.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for id, src := range c.sources {
		st := src.Stats()
		ch <- prometheus.MustNewConstMetric(c.writes, prometheus.CounterValue, float64(st.WriteProgress), id)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(st.Capacity), id)
		ch <- prometheus.MustNewConstMetric(c.readers, prometheus.GaugeValue, float64(len(st.Readers)), id)
		ch <- prometheus.MustNewConstMetric(c.backpressure, prometheus.CounterValue, float64(st.Backpressure), id)
		ch <- prometheus.MustNewConstMetric(c.stalls, prometheus.CounterValue, float64(st.Stalls), id)
		for _, r := range st.Readers {
			slot := strconv.Itoa(r.Slot)
			ch <- prometheus.MustNewConstMetric(c.reads, prometheus.CounterValue, float64(r.Progress), id, slot)
			ch <- prometheus.MustNewConstMetric(c.lag, prometheus.GaugeValue, float64(r.Lag), id, slot)
		}
	}
	c.registrationFailures.Collect(ch)
	c.producerRejections.Collect(ch)
}
