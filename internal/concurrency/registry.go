// File: internal/concurrency/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded set of reader slots for the broadcast ring.

package concurrency

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-bcast/api"
)

// paddedCounter keeps one progress counter per cache line.
type paddedCounter struct {
	v atomic.Uint64
	_ cpu.CacheLinePad
}

// readerRegistry hands out stable slot indices and owns the per-slot progress
// counters. Slots are never released.
type readerRegistry struct {
	count    atomic.Uint64
	_        cpu.CacheLinePad
	progress []paddedCounter
}

func (r *readerRegistry) init(maxReaders int) {
	r.progress = make([]paddedCounter, maxReaders)
}

// reserve claims the next free slot. A rejected attempt leaves count untouched.
func (r *readerRegistry) reserve() (int, error) {
	limit := uint64(len(r.progress))
	for {
		n := r.count.Load()
		if n >= limit {
			return -1, api.ErrNoReaderAvailable.WithContext("max_readers", limit)
		}
		if r.count.CompareAndSwap(n, n+1) {
			return int(n), nil
		}
	}
}

func (r *readerRegistry) len() int { return int(r.count.Load()) }

func (r *readerRegistry) max() int { return len(r.progress) }

func (r *readerRegistry) counter(slot int) *atomic.Uint64 { return &r.progress[slot].v }

// slowest returns the minimum progress over live slots and the slot holding it.
func (r *readerRegistry) slowest() (lowest uint64, slot int, err error) {
	n := int(r.count.Load())
	if n == 0 {
		return 0, -1, api.ErrNoReaderAvailable
	}
	lowest, slot = r.progress[0].v.Load(), 0
	for i := 1; i < n; i++ {
		if p := r.progress[i].v.Load(); p < lowest {
			lowest, slot = p, i
		}
	}
	return lowest, slot, nil
}
