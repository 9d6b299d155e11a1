package broadcast_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-bcast/broadcast"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

func TestCollector_ExportsRingState(t *testing.T) {
	collector := broadcast.NewCollector("test")
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(collector))

	ch, err := broadcast.New[int](4,
		broadcast.WithID("prices"),
		broadcast.WithMaxReaders(2),
		broadcast.WithMetrics(collector),
	)
	require.NoError(t, err)
	tx, _ := ch.Producer()
	fast, _ := ch.Consumer()
	slow, _ := ch.Consumer()
	_, err = ch.Consumer()
	require.Error(t, err)
	_, err = ch.Producer()
	require.Error(t, err)

	for i := 0; i < 3; i++ {
		tx.Write(i)
	}
	fast.Read()
	fast.Read()
	_ = slow

	families := gather(t, reg)

	writes := families["test_ring_writes_total"]
	require.NotNil(t, writes)
	assert.Equal(t, 3.0, writes.GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, "prices", labelValue(writes.GetMetric()[0], "channel"))

	capacity := families["test_ring_capacity"]
	require.NotNil(t, capacity)
	assert.Equal(t, 4.0, capacity.GetMetric()[0].GetGauge().GetValue())

	lag := families["test_ring_reader_lag"]
	require.NotNil(t, lag)
	byReader := map[string]float64{}
	for _, m := range lag.GetMetric() {
		byReader[labelValue(m, "reader")] = m.GetGauge().GetValue()
	}
	assert.Equal(t, map[string]float64{"0": 1, "1": 3}, byReader)

	failures := families["test_ring_registration_failures_total"]
	require.NotNil(t, failures)
	assert.Equal(t, 1.0, failures.GetMetric()[0].GetCounter().GetValue())

	rejections := families["test_ring_producer_rejections_total"]
	require.NotNil(t, rejections)
	assert.Equal(t, 1.0, rejections.GetMetric()[0].GetCounter().GetValue())
}

func TestCollector_Untrack(t *testing.T) {
	collector := broadcast.NewCollector("")
	ch, err := broadcast.New[int](4, broadcast.WithID("a"), broadcast.WithMetrics(collector))
	require.NoError(t, err)
	_, _ = ch.Consumer()

	// writes, capacity, readers, backpressure, stalls, plus reads and lag for one reader
	assert.Equal(t, 7, testutil.CollectAndCount(collector))

	collector.Untrack("a")
	assert.Equal(t, 0, testutil.CollectAndCount(collector))
}
