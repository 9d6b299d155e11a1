//go:build linux

// File: internal/concurrency/affinity_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux thread affinity through sched_setaffinity(2). Pure Go, no cgo.

package concurrency

import (
	"golang.org/x/sys/unix"
)

// processMask is the affinity mask observed at start-up; unpinning restores it.
var processMask = func() unix.CPUSet {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		set.Zero()
	}
	return set
}()

func platformPinCurrentThread(cpuID int) error {
	if processMask.Count() > 0 && !processMask.IsSet(cpuID) {
		return ErrInvalidCPU
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	// pid 0 addresses the calling thread.
	return unix.SchedSetaffinity(0, &set)
}

func platformUnpinCurrentThread() error {
	if processMask.Count() == 0 {
		return nil
	}
	set := processMask
	return unix.SchedSetaffinity(0, &set)
}

func platformAllowedCPUs() []int {
	set := processMask
	cpus := make([]int, 0, set.Count())
	for id := 0; len(cpus) < set.Count(); id++ {
		if set.IsSet(id) {
			cpus = append(cpus, id)
		}
	}
	return cpus
}
