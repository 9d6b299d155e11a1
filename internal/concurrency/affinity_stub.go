//go:build !linux

// File: internal/concurrency/affinity_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for platforms without thread affinity support.

package concurrency

import "runtime"

func platformPinCurrentThread(cpuID int) error {
	return ErrAffinityNotSupported
}

func platformUnpinCurrentThread() error {
	return nil
}

func platformAllowedCPUs() []int {
	cpus := make([]int, runtime.NumCPU())
	for i := range cpus {
		cpus[i] = i
	}
	return cpus
}
