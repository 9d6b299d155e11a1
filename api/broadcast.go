// File: api/broadcast.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-producer, multi-consumer broadcast contracts.

package api

import "context"

// Producer is the exclusive writing side of a broadcast channel.
type Producer[T any] interface {
	// Write appends v, blocking while the slowest reader still holds the target slot.
	Write(v T)
	// WriteContext is Write that gives up with ctx.Err() if ctx ends while blocked.
	WriteContext(ctx context.Context, v T) error
}

// Consumer is one reader of a broadcast channel. It observes every value the
// producer writes after its registration, in write order.
type Consumer[T any] interface {
	// Read returns the next value, blocking until one is written.
	Read() T
	// ReadContext is Read that gives up with ctx.Err() if ctx ends while blocked.
	ReadContext(ctx context.Context) (T, error)
}

// ReaderStats is a point-in-time view of one reader slot.
type ReaderStats struct {
	Slot     int    `json:"slot"`
	Progress uint64 `json:"progress"`
	Lag      uint64 `json:"lag"`
}

// RingStats is a point-in-time view of a broadcast ring. Fields are loaded
// independently and may be mutually skewed under load.
type RingStats struct {
	Capacity      uint64        `json:"capacity"`
	MaxReaders    int           `json:"max_readers"`
	WriteProgress uint64        `json:"write_progress"`
	Slowest       uint64        `json:"slowest"`
	Backpressure  uint64        `json:"backpressure"`
	Stalls        uint64        `json:"stalls"`
	Readers       []ReaderStats `json:"readers"`
}
