// File: adapters/affinity_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
// Description:
//   Adapter implementing the api.Affinity interface, delegating to
//   internal concurrency primitives for thread pinning of ring producer
//   and consumer goroutines.

package adapters

import (
	"github.com/momentics/hioload-bcast/api"
	"github.com/momentics/hioload-bcast/internal/concurrency"
)

// AffinityAdapter implements api.Affinity using internal concurrency functions.
// It is owned by one goroutine: Pin and Unpin act on the calling thread.
type AffinityAdapter struct {
	currentCPU int
	pinned     bool
	scope      api.AffinityScope
}

var _ api.Affinity = (*AffinityAdapter)(nil)

// NewAffinityAdapter creates a new AffinityAdapter with thread scope.
func NewAffinityAdapter() *AffinityAdapter {
	return &AffinityAdapter{
		currentCPU: -1,
		scope:      api.ScopeThread,
	}
}

// Pin binds the calling goroutine's thread to cpuID. -1 picks the first
// allowed CPU.
func (a *AffinityAdapter) Pin(cpuID int) error {
	if cpuID == -1 {
		cpuID = concurrency.CPUForIndex(0)
	}
	if err := concurrency.PinCurrentThread(cpuID); err != nil {
		return err
	}
	a.currentCPU = cpuID
	a.pinned = true
	return nil
}

// Unpin clears the binding, allowing the OS scheduler to migrate the thread.
func (a *AffinityAdapter) Unpin() error {
	if !a.pinned {
		return nil
	}
	err := concurrency.UnpinCurrentThread()
	a.pinned = false
	a.currentCPU = -1
	return err
}

// Get returns the currently bound CPU, -1 when unpinned.
func (a *AffinityAdapter) Get() (int, error) {
	return a.currentCPU, nil
}

// Descriptor returns a snapshot of the current binding state.
func (a *AffinityAdapter) Descriptor() api.AffinityDescriptor {
	return api.AffinityDescriptor{
		CPUID:  a.currentCPU,
		Scope:  a.scope,
		Pinned: a.pinned,
	}
}
