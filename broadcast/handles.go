// File: broadcast/handles.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Producer and Consumer forward to the ring. Neither may be used by two
// goroutines at once.

package broadcast

import (
	"context"

	"github.com/momentics/hioload-bcast/api"
	"github.com/momentics/hioload-bcast/internal/concurrency"
)

// Ensure compile-time interface compliance.
var (
	_ api.Producer[any] = (*Producer[any])(nil)
	_ api.Consumer[any] = (*Consumer[any])(nil)
)

// Producer is the single writer of a channel.
type Producer[T any] struct {
	ring *concurrency.Ring[T]
}

// Write appends v, blocking while the slowest consumer has not yet read the
// slot v would overwrite.
func (p *Producer[T]) Write(v T) {
	p.ring.Insert(v)
}

// WriteContext is Write bounded by ctx. On error v was not written.
func (p *Producer[T]) WriteContext(ctx context.Context, v T) error {
	return p.ring.InsertContext(ctx, v)
}

// Consumer is one reader of a channel.
type Consumer[T any] struct {
	ring *concurrency.Ring[T]
	slot int
}

// Read returns the next value, blocking until the producer writes it.
func (c *Consumer[T]) Read() T {
	return c.ring.Read(c.slot)
}

// ReadContext is Read bounded by ctx. On error nothing was consumed.
func (c *Consumer[T]) ReadContext(ctx context.Context) (T, error) {
	return c.ring.ReadContext(ctx, c.slot)
}

// Slot returns the reader slot index.
func (c *Consumer[T]) Slot() int { return c.slot }

// Lag returns the number of written values this consumer has not read.
func (c *Consumer[T]) Lag() int { return c.ring.Len(c.slot) }
