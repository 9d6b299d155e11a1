// Package api
// Author: momentics@gmail.com
//
// CPU affinity and thread pinning definitions.

package api

// AffinityScope describes what a binding applies to.
type AffinityScope int

const (
	// ScopeThread binds the current OS thread (the goroutine is locked to it).
	ScopeThread AffinityScope = iota
	// ScopeProcess binds the whole process.
	ScopeProcess
)

// AffinityDescriptor is an immutable snapshot of a binding.
type AffinityDescriptor struct {
	CPUID  int
	Scope  AffinityScope
	Pinned bool
}

// Affinity controls execution on particular CPUs.
type Affinity interface {
    // Pin locks the current goroutine to its OS thread and binds that thread to cpuID.
    Pin(cpuID int) error
    // Unpin removes affinity and unlocks the goroutine.
    Unpin() error
    // Get returns the current CPU binding, -1 when unpinned.
    Get() (cpuID int, err error)
}
