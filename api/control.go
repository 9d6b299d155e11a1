// File: api/control.go
// Package api defines the Control interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control carries the runtime config snapshot, published metrics and debug
// probes. Broadcast channels register a probe that returns their RingStats.
type Control interface {
	// GetConfig returns a copy of the active config snapshot.
	GetConfig() map[string]any
	// SetConfig replaces the snapshot and fires reload listeners.
	SetConfig(cfg map[string]any) error
	// Stats merges published metrics with the output of every probe.
	Stats() map[string]any
	OnReload(fn func())
	RegisterDebugProbe(name string, fn func() any)
}
