package adapters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-bcast/adapters"
	"github.com/momentics/hioload-bcast/api"
	"github.com/momentics/hioload-bcast/broadcast"
)

func TestControlAdapterBasic(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	if len(ctrl.GetConfig()) != 0 {
		t.Error("Expected empty config on init")
	}

	called := false
	ctrl.OnReload(func() { called = true })
	if err := ctrl.SetConfig(map[string]any{"capacity": 64}); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("Reload hook not called")
	}
	if ctrl.GetConfig()["capacity"] != 64 {
		t.Error("SetConfig did not apply")
	}

	ctrl.SetMetric("custom", 7)
	stats := ctrl.Stats()
	assert.Equal(t, 7, stats["custom"])
	assert.Contains(t, stats, "debug.platform.cpus")
}

func TestControlAdapter_ChannelProbe(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	ch, err := broadcast.New[int](4, broadcast.WithID("orders"))
	require.NoError(t, err)
	ch.RegisterProbes(ctrl)

	tx, err := ch.Producer()
	require.NoError(t, err)
	rx, err := ch.Consumer()
	require.NoError(t, err)
	tx.Write(1)
	tx.Write(2)
	require.Equal(t, 1, rx.Read())

	ctrl.PublishRingStats("ring.orders", ch.Stats())
	stats := ctrl.Stats()
	assert.Equal(t, uint64(2), stats["ring.orders.write_progress"])
	assert.Equal(t, uint64(1), stats["ring.orders.reader.0.lag"])

	probe, ok := stats["debug.broadcast.orders"]
	require.True(t, ok)
	st, ok := probe.(api.RingStats)
	require.True(t, ok)
	assert.Equal(t, uint64(2), st.WriteProgress)
	assert.Equal(t, uint64(1), st.Slowest)
}
