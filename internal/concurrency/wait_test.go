package concurrency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-bcast/api"
)

func TestParseWaiter(t *testing.T) {
	cases := []struct {
		name string
		want api.Waiter
	}{
		{"", ParkWaiter{Duration: 2 * time.Microsecond}},
		{"park", ParkWaiter{Duration: 2 * time.Microsecond}},
		{" Spin ", SpinYieldWaiter{}},
		{"backoff", BackoffWaiter{Min: 2 * time.Microsecond}},
	}
	for _, tc := range cases {
		w, err := ParseWaiter(tc.name, 2*time.Microsecond)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, w, tc.name)
	}

	_, err := ParseWaiter("futex", 0)
	require.ErrorIs(t, err, api.ErrInvalidInput)
}

func TestParkWaiter_Sleeps(t *testing.T) {
	start := time.Now()
	ParkWaiter{Duration: 2 * time.Millisecond}.Wait(0)
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Millisecond)
}

func TestBackoffWaiter_CapsSleep(t *testing.T) {
	w := BackoffWaiter{Spins: 1, Min: time.Microsecond, Max: 2 * time.Millisecond}
	start := time.Now()
	// Spin and yield phases return immediately.
	w.Wait(0)
	w.Wait(1)
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	start = time.Now()
	w.Wait(1 << 20)
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 2*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestWaiterFunc(t *testing.T) {
	var calls []int
	var w api.Waiter = api.WaiterFunc(func(i int) { calls = append(calls, i) })
	w.Wait(0)
	w.Wait(1)
	assert.Equal(t, []int{0, 1}, calls)
}
