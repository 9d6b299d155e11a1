package control

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentics/hioload-bcast/api"
)

func TestMetricsRegistry_SetRingStats(t *testing.T) {
	mr := NewMetricsRegistry()
	assert.True(t, mr.Updated().IsZero())

	mr.SetRingStats("ring", api.RingStats{
		Capacity:      8,
		WriteProgress: 10,
		Slowest:       4,
		Readers: []api.ReaderStats{
			{Slot: 0, Progress: 4, Lag: 6},
			{Slot: 1, Progress: 9, Lag: 1},
		},
	})
	snap := mr.GetSnapshot()
	assert.Equal(t, uint64(8), snap["ring.capacity"])
	assert.Equal(t, uint64(10), snap["ring.write_progress"])
	assert.Equal(t, 2, snap["ring.readers"])
	assert.Equal(t, uint64(6), snap["ring.reader.0.lag"])
	assert.Equal(t, uint64(9), snap["ring.reader.1.progress"])
	assert.False(t, mr.Updated().IsZero())
}

func TestDebugProbes(t *testing.T) {
	dp := NewDebugProbes()
	RegisterPlatformProbes(dp)
	dp.RegisterProbe("answer", func() any { return 42 })

	assert.Equal(t, []string{"answer", "platform.allowed_cpus", "platform.cpus", "platform.gomaxprocs"}, dp.Names())
	state := dp.DumpState()
	assert.Equal(t, 42, state["answer"])
	assert.NotEmpty(t, state["platform.allowed_cpus"])
}
