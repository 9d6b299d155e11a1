// File: internal/concurrency/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-platform CPU affinity management for ring producer and consumer threads.

package concurrency

import (
	"fmt"
	"runtime"
)

// PinCurrentThread locks the calling goroutine to its OS thread and binds the
// thread to cpuID. On failure the goroutine is unlocked again.
func PinCurrentThread(cpuID int) error {
	if cpuID < 0 {
		return fmt.Errorf("pin cpu %d: %w", cpuID, ErrInvalidCPU)
	}
	runtime.LockOSThread()
	if err := platformPinCurrentThread(cpuID); err != nil {
		runtime.UnlockOSThread()
		return fmt.Errorf("pin cpu %d: %w", cpuID, err)
	}
	return nil
}

// UnpinCurrentThread restores the process affinity mask on the current thread
// and unlocks the goroutine from it.
func UnpinCurrentThread() error {
	defer runtime.UnlockOSThread()
	return platformUnpinCurrentThread()
}

// AllowedCPUs returns the CPU ids the process may run on, in ascending order.
func AllowedCPUs() []int {
	return platformAllowedCPUs()
}

// CPUForIndex spreads workers over allowed CPUs round-robin.
func CPUForIndex(i int) int {
	cpus := AllowedCPUs()
	if len(cpus) == 0 {
		return 0
	}
	if i < 0 {
		i = -i
	}
	return cpus[i%len(cpus)]
}

// NumCPUs returns the number of logical CPUs.
func NumCPUs() int {
	return runtime.NumCPU()
}
