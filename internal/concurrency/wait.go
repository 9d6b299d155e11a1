// File: internal/concurrency/wait.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wait strategies for blocked ring operations. None of them take a lock:
// liveness comes from re-checking progress counters after every wait.

package concurrency

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/momentics/hioload-bcast/api"
)

// Defaults
const (
	// DefaultParkDuration is how long ParkWaiter sleeps between checks.
	DefaultParkDuration = time.Microsecond
	// DefaultSpinThreshold is the number of spins before yielding with
	// runtime.Gosched().
	DefaultSpinThreshold = 1000
	// DefaultBackoffMax caps BackoffWaiter sleeps.
	DefaultBackoffMax = time.Millisecond
)

// Wait strategy names accepted by ParseWaiter.
const (
	WaitPark    = "park"
	WaitSpin    = "spin"
	WaitBackoff = "backoff"
)

var (
	_ api.Waiter = ParkWaiter{}
	_ api.Waiter = SpinYieldWaiter{}
	_ api.Waiter = BackoffWaiter{}
)

// ParkWaiter sleeps for Duration on every check.
type ParkWaiter struct {
	Duration time.Duration
}

// Wait implements api.Waiter.
func (w ParkWaiter) Wait(int) {
	d := w.Duration
	if d <= 0 {
		d = DefaultParkDuration
	}
	time.Sleep(d)
}

// SpinYieldWaiter busy-spins and yields to the scheduler every Threshold spins.
// Lowest latency, highest CPU burn.
type SpinYieldWaiter struct {
	Threshold int
}

// Wait implements api.Waiter.
func (w SpinYieldWaiter) Wait(iteration int) {
	t := w.Threshold
	if t <= 0 {
		t = DefaultSpinThreshold
	}
	if (iteration+1)%t == 0 {
		runtime.Gosched()
	}
}

// BackoffWaiter spins for Spins checks, yields for the next Spins checks, then
// sleeps with exponential backoff from Min up to Max.
type BackoffWaiter struct {
	Spins int
	Min   time.Duration
	Max   time.Duration
}

// Wait implements api.Waiter.
func (w BackoffWaiter) Wait(iteration int) {
	spins := w.Spins
	if spins <= 0 {
		spins = 64
	}
	switch {
	case iteration < spins:
		return
	case iteration < 2*spins:
		runtime.Gosched()
		return
	}
	lo, hi := w.Min, w.Max
	if lo <= 0 {
		lo = DefaultParkDuration
	}
	if hi < lo {
		hi = DefaultBackoffMax
		if hi < lo {
			hi = lo
		}
	}
	d := lo
	for n := iteration - 2*spins; n > 0 && d < hi; n-- {
		d <<= 1
	}
	if d > hi {
		d = hi
	}
	time.Sleep(d)
}

// ParseWaiter maps a strategy name to a Waiter. park is used for the park
// strategy and as the backoff floor.
func ParseWaiter(name string, park time.Duration) (api.Waiter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", WaitPark:
		return ParkWaiter{Duration: park}, nil
	case WaitSpin:
		return SpinYieldWaiter{}, nil
	case WaitBackoff:
		return BackoffWaiter{Min: park}, nil
	default:
		return nil, fmt.Errorf("wait strategy %q: %w", name, api.ErrInvalidInput)
	}
}
