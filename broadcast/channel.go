// File: broadcast/channel.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Channel is the factory of one broadcast ring: it issues exactly one
// Producer for its lifetime and up to MaxReaders Consumers.

package broadcast

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momentics/hioload-bcast/api"
	"github.com/momentics/hioload-bcast/internal/concurrency"
)

// Channel owns a broadcast ring and gates handle issuance.
type Channel[T any] struct {
	id        string
	ring      *concurrency.Ring[T]
	issued    atomic.Bool
	log       *zap.Logger
	collector *Collector
}

// New creates a channel with capacity slots.
func New[T any](capacity int, opts ...Option) (*Channel[T], error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("broadcast: new channel: %w", api.ErrInvalidInput.WithContext("capacity", capacity))
	}
	if s.maxReaders <= 0 {
		return nil, fmt.Errorf("broadcast: new channel: %w", api.ErrInvalidInput.WithContext("max_readers", s.maxReaders))
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}

	log := s.logger.With(zap.String("component", "broadcast"), zap.String("channel", s.id))
	ring, err := concurrency.NewRing[T](uint64(capacity), concurrency.RingConfig{
		MaxReaders:     s.maxReaders,
		Waiter:         s.waiter,
		StallThreshold: s.stallThreshold,
		OnStall: func(ev concurrency.StallEvent) {
			log.Warn("producer stalled on slow reader",
				zap.Uint64("write_progress", ev.WriteProgress),
				zap.Int("reader", ev.SlowestSlot),
				zap.Uint64("reader_progress", ev.Slowest),
				zap.Duration("waited", ev.Waited),
			)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("broadcast: new channel: %w", err)
	}

	c := &Channel[T]{
		id:        s.id,
		ring:      ring,
		log:       log,
		collector: s.collector,
	}
	if c.collector != nil {
		c.collector.track(c.id, ring)
	}
	log.Info("broadcast channel created",
		zap.Int("capacity", capacity),
		zap.Int("max_readers", s.maxReaders),
	)
	return c, nil
}

// Producer returns the channel's only writer. Every call after the first
// successful one fails with api.ErrWriterAlreadyExists.
func (c *Channel[T]) Producer() (*Producer[T], error) {
	if !c.issued.CompareAndSwap(false, true) {
		c.log.Warn("producer already issued")
		if c.collector != nil {
			c.collector.producerRejected(c.id)
		}
		return nil, fmt.Errorf("broadcast: channel %s: %w", c.id, api.ErrWriterAlreadyExists)
	}
	c.log.Debug("producer issued")
	return &Producer[T]{ring: c.ring}, nil
}

// Consumer registers a new reader. It fails with api.ErrNoReaderAvailable
// once MaxReaders readers exist. The reader starts at the current write
// position.
func (c *Channel[T]) Consumer() (*Consumer[T], error) {
	slot, err := c.ring.RegisterReader()
	if err != nil {
		c.log.Warn("reader registration rejected",
			zap.Int("readers", c.ring.Readers()),
			zap.Int("max_readers", c.ring.MaxReaders()),
		)
		if c.collector != nil {
			c.collector.registrationFailed(c.id)
		}
		return nil, fmt.Errorf("broadcast: channel %s: %w", c.id, err)
	}
	c.log.Debug("reader registered", zap.Int("reader", slot))
	return &Consumer[T]{ring: c.ring, slot: slot}, nil
}

// ProducerIssued reports whether the producer has been handed out.
func (c *Channel[T]) ProducerIssued() bool { return c.issued.Load() }

// ID returns the channel identifier.
func (c *Channel[T]) ID() string { return c.id }

// Cap returns the ring capacity.
func (c *Channel[T]) Cap() int { return c.ring.Cap() }

// MaxReaders returns the reader bound.
func (c *Channel[T]) MaxReaders() int { return c.ring.MaxReaders() }

// Readers returns the number of registered readers.
func (c *Channel[T]) Readers() int { return c.ring.Readers() }

// Stats returns a snapshot of the ring.
func (c *Channel[T]) Stats() api.RingStats { return c.ring.Stats() }

// RegisterProbes exposes the channel's stats as the debug probe
// "broadcast.<id>" of ctrl.
func (c *Channel[T]) RegisterProbes(ctrl api.Control) {
	ctrl.RegisterDebugProbe("broadcast."+c.id, func() any {
		return c.ring.Stats()
	})
}
