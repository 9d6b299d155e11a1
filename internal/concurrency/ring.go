// File: internal/concurrency/ring.go
// Package concurrency implements the broadcast ring buffer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ring is a fixed-capacity single-producer, multi-consumer broadcast buffer.
// Every registered reader observes every element. The writer and each reader
// own one monotonically increasing progress counter; counters are padded to
// prevent false sharing. Physical slot = progress % capacity.

package concurrency

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-bcast/api"
)

// DefaultMaxReaders bounds reader registration when no limit is configured.
const DefaultMaxReaders = 100

// StallEvent describes a write that stayed blocked on the slowest reader
// longer than the configured threshold.
type StallEvent struct {
	WriteProgress uint64
	SlowestSlot   int
	Slowest       uint64
	Waited        time.Duration
}

// RingConfig holds construction parameters. Zero values select defaults.
type RingConfig struct {
	MaxReaders     int
	Waiter         api.Waiter
	StallThreshold time.Duration
	OnStall        func(StallEvent)
}

// Ring is the broadcast storage and synchronization core.
type Ring[T any] struct {
	buffer     []T
	capacity   uint64
	waiter     api.Waiter
	stallAfter time.Duration
	onStall    func(StallEvent)

	_            cpu.CacheLinePad
	write        atomic.Uint64
	_            cpu.CacheLinePad
	backpressure atomic.Uint64
	stalls       atomic.Uint64
	_            cpu.CacheLinePad

	readers readerRegistry
}

// NewRing allocates a ring of capacity slots.
func NewRing[T any](capacity uint64, cfg RingConfig) (*Ring[T], error) {
	if capacity == 0 {
		return nil, api.ErrInvalidInput.WithContext("capacity", capacity)
	}
	if cfg.MaxReaders == 0 {
		cfg.MaxReaders = DefaultMaxReaders
	}
	if cfg.MaxReaders < 0 {
		return nil, api.ErrInvalidInput.WithContext("max_readers", cfg.MaxReaders)
	}
	if cfg.Waiter == nil {
		cfg.Waiter = ParkWaiter{}
	}
	r := &Ring[T]{
		buffer:     make([]T, capacity),
		capacity:   capacity,
		waiter:     cfg.Waiter,
		stallAfter: cfg.StallThreshold,
		onStall:    cfg.OnStall,
	}
	r.readers.init(cfg.MaxReaders)
	return r, nil
}

// RegisterReader allocates a reader slot positioned at the current write
// progress. Values written before registration are not delivered to it.
func (r *Ring[T]) RegisterReader() (int, error) {
	slot, err := r.readers.reserve()
	if err != nil {
		return -1, err
	}
	r.readers.counter(slot).Store(r.write.Load())
	return slot, nil
}

// SlowestReader returns the lowest reader progress.
func (r *Ring[T]) SlowestReader() (uint64, error) {
	p, _, err := r.readers.slowest()
	return p, err
}

// Insert writes v. Producer-only; blocks while the target slot is unread.
func (r *Ring[T]) Insert(v T) {
	_ = r.insert(context.Background(), v)
}

// InsertContext is Insert that returns ctx.Err() if ctx ends while blocked.
// Nothing is written in that case.
func (r *Ring[T]) InsertContext(ctx context.Context, v T) error {
	return r.insert(ctx, v)
}

func (r *Ring[T]) insert(ctx context.Context, v T) error {
	w := r.write.Load()
	if err := r.awaitSlot(ctx, w); err != nil {
		return err
	}
	r.buffer[w%r.capacity] = v
	// Publishes the slot write to readers.
	r.write.Store(w + 1)
	return nil
}

// awaitSlot blocks until logical index w no longer overlaps an element some
// reader has not consumed: w - slowest < capacity.
func (r *Ring[T]) awaitSlot(ctx context.Context, w uint64) error {
	slowest, slot, err := r.readers.slowest()
	if err != nil || w-slowest < r.capacity {
		return nil
	}
	r.backpressure.Add(1)

	var (
		done     = ctx.Done()
		start    = time.Now()
		reported bool
	)
	for i := 0; ; i++ {
		select {
		case <-done:
			return ctx.Err()
		default:
		}
		r.waiter.Wait(i)
		if slowest, slot, _ = r.readers.slowest(); w-slowest < r.capacity {
			return nil
		}
		if !reported && r.stallAfter > 0 {
			if waited := time.Since(start); waited >= r.stallAfter {
				reported = true
				r.stalls.Add(1)
				if r.onStall != nil {
					r.onStall(StallEvent{
						WriteProgress: w,
						SlowestSlot:   slot,
						Slowest:       slowest,
						Waited:        waited,
					})
				}
			}
		}
	}
}

// Read returns the next element for reader slot, blocking until one exists.
// A slot must be driven by one goroutine at a time.
func (r *Ring[T]) Read(slot int) T {
	v, _ := r.read(context.Background(), slot)
	return v
}

// ReadContext is Read that returns ctx.Err() if ctx ends while blocked.
// The reader's progress is unchanged in that case.
func (r *Ring[T]) ReadContext(ctx context.Context, slot int) (T, error) {
	return r.read(ctx, slot)
}

func (r *Ring[T]) read(ctx context.Context, slot int) (T, error) {
	progress := r.readers.counter(slot)
	p := progress.Load()
	if r.write.Load() == p {
		done := ctx.Done()
		for i := 0; r.write.Load() == p; i++ {
			select {
			case <-done:
				var zero T
				return zero, ctx.Err()
			default:
			}
			r.waiter.Wait(i)
		}
	}
	v := r.buffer[p%r.capacity]
	// Frees the slot for the writer once every reader has passed it.
	progress.Store(p + 1)
	return v, nil
}

// Cap returns the number of storage slots.
func (r *Ring[T]) Cap() int { return int(r.capacity) }

// MaxReaders returns the reader registration bound.
func (r *Ring[T]) MaxReaders() int { return r.readers.max() }

// Readers returns the number of registered readers.
func (r *Ring[T]) Readers() int { return r.readers.len() }

// WriteProgress returns the number of elements written so far.
func (r *Ring[T]) WriteProgress() uint64 { return r.write.Load() }

// ReaderProgress returns the number of elements consumed by slot.
func (r *Ring[T]) ReaderProgress(slot int) uint64 {
	return r.readers.counter(slot).Load()
}

// Len returns the number of elements written but not yet read by slot.
func (r *Ring[T]) Len(slot int) int {
	p := r.readers.counter(slot).Load()
	return int(r.write.Load() - p)
}

// Stalls returns how many writes exceeded the stall threshold.
func (r *Ring[T]) Stalls() uint64 { return r.stalls.Load() }

// Backpressure returns how many writes had to wait for a reader at all.
func (r *Ring[T]) Backpressure() uint64 { return r.backpressure.Load() }

// Stats returns a snapshot of ring state.
func (r *Ring[T]) Stats() api.RingStats {
	n := r.readers.len()
	st := api.RingStats{
		Capacity:     r.capacity,
		MaxReaders:   r.readers.max(),
		Stalls:       r.stalls.Load(),
		Backpressure: r.backpressure.Load(),
		Readers:      make([]api.ReaderStats, 0, n),
	}
	// Readers are loaded before the writer so lag never underflows.
	for i := 0; i < n; i++ {
		st.Readers = append(st.Readers, api.ReaderStats{Slot: i, Progress: r.readers.counter(i).Load()})
	}
	st.WriteProgress = r.write.Load()
	for i := range st.Readers {
		st.Readers[i].Lag = st.WriteProgress - st.Readers[i].Progress
		if i == 0 || st.Readers[i].Progress < st.Slowest {
			st.Slowest = st.Readers[i].Progress
		}
	}
	return st
}
