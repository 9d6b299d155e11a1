// File: broadcast/options.go
// Package broadcast defines functional options for the Channel factory.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package broadcast

import (
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-bcast/api"
	"github.com/momentics/hioload-bcast/control"
	"github.com/momentics/hioload-bcast/internal/concurrency"
)

// Option customizes channel initialization.
type Option func(*settings)

type settings struct {
	id             string
	maxReaders     int
	waiter         api.Waiter
	logger         *zap.Logger
	stallThreshold time.Duration
	collector      *Collector
}

func defaultSettings() settings {
	return settings{
		maxReaders: concurrency.DefaultMaxReaders,
		waiter:     concurrency.ParkWaiter{},
		logger:     zap.NewNop(),
	}
}

// WithID names the channel in logs and metrics. A random UUID is used otherwise.
func WithID(id string) Option {
	return func(s *settings) {
		s.id = id
	}
}

// WithMaxReaders sets the reader registration bound. It is fixed for the
// lifetime of the channel.
func WithMaxReaders(n int) Option {
	return func(s *settings) {
		s.maxReaders = n
	}
}

// WithWaiter selects the wait strategy for blocked reads and writes.
func WithWaiter(w api.Waiter) Option {
	return func(s *settings) {
		if w != nil {
			s.waiter = w
		}
	}
}

// WithLogger attaches a zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStallThreshold reports writes blocked on a reader for longer than d.
// Zero disables stall reporting.
func WithStallThreshold(d time.Duration) Option {
	return func(s *settings) {
		s.stallThreshold = d
	}
}

// WithMetrics exports the channel through c.
func WithMetrics(c *Collector) Option {
	return func(s *settings) {
		s.collector = c
	}
}

// OptionsFromConfig translates loaded configuration into options.
func OptionsFromConfig(cfg *control.Config) ([]Option, error) {
	waiter, err := concurrency.ParseWaiter(cfg.WaitStrategy, cfg.ParkDuration)
	if err != nil {
		return nil, err
	}
	opts := []Option{
		WithMaxReaders(cfg.MaxReaders),
		WithWaiter(waiter),
		WithStallThreshold(cfg.StallThreshold),
	}
	if cfg.ChannelID != "" {
		opts = append(opts, WithID(cfg.ChannelID))
	}
	return opts, nil
}
