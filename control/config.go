// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Typed run configuration (defaults, .env, YAML, environment) and a thread-safe
// key/value store with reload listeners for runtime inspection.

package control

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-bcast/api"
	"github.com/momentics/hioload-bcast/internal/concurrency"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "BCAST_"

// Config holds parameters for a broadcast channel and the harness driving it.
type Config struct {
	ChannelID      string        `yaml:"channel_id" env:"CHANNEL_ID"`
	Capacity       int           `yaml:"capacity" env:"CAPACITY"`
	MaxReaders     int           `yaml:"max_readers" env:"MAX_READERS"`
	Consumers      int           `yaml:"consumers" env:"CONSUMERS"`
	Messages       int           `yaml:"messages" env:"MESSAGES"`
	WaitStrategy   string        `yaml:"wait_strategy" env:"WAIT_STRATEGY"`
	ParkDuration   time.Duration `yaml:"park_duration" env:"PARK_DURATION"`
	StallThreshold time.Duration `yaml:"stall_threshold" env:"STALL_THRESHOLD"`
	PinThreads     bool          `yaml:"pin_threads" env:"PIN_THREADS"`
	RateLimit      float64       `yaml:"rate_limit" env:"RATE_LIMIT"` // writes per second, 0 = unlimited
	MetricsAddr    string        `yaml:"metrics_addr" env:"METRICS_ADDR"`
	LogLevel       string        `yaml:"log_level" env:"LOG_LEVEL"`
}

// DefaultConfig mirrors the reference workload: ten consumers reading
// 10k values through a 1000-slot ring.
func DefaultConfig() *Config {
	return &Config{
		Capacity:       1000,
		MaxReaders:     concurrency.DefaultMaxReaders,
		Consumers:      10,
		Messages:       10_000,
		WaitStrategy:   concurrency.WaitPark,
		ParkDuration:   concurrency.DefaultParkDuration,
		StallThreshold: time.Second,
		LogLevel:       "info",
	}
}

// LoadConfig builds a Config from defaults, then the YAML file at path (if
// non-empty), then BCAST_* environment variables. dotenv files are loaded into
// the environment first; the default ".env" may be absent.
func LoadConfig(path string, dotenv ...string) (*Config, error) {
	if err := godotenv.Load(dotenv...); err != nil {
		if len(dotenv) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load dotenv: %w", err)
		}
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no channel can be built from.
func (c *Config) Validate() error {
	invalid := func(field string, v any) error {
		return fmt.Errorf("config: %w", api.ErrInvalidInput.WithContext(field, v))
	}
	switch {
	case c.Capacity <= 0:
		return invalid("capacity", c.Capacity)
	case c.MaxReaders <= 0:
		return invalid("max_readers", c.MaxReaders)
	case c.Consumers < 0 || c.Consumers > c.MaxReaders:
		return invalid("consumers", c.Consumers)
	case c.Messages < 0:
		return invalid("messages", c.Messages)
	case c.RateLimit < 0:
		return invalid("rate_limit", c.RateLimit)
	}
	if _, err := concurrency.ParseWaiter(c.WaitStrategy, c.ParkDuration); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return invalid("log_level", c.LogLevel)
	}
	return nil
}

// Level returns the zap level named by LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// Snapshot flattens the configuration for ConfigStore and debug output.
func (c *Config) Snapshot() map[string]any {
	return map[string]any{
		"channel_id":      c.ChannelID,
		"capacity":        c.Capacity,
		"max_readers":     c.MaxReaders,
		"consumers":       c.Consumers,
		"messages":        c.Messages,
		"wait_strategy":   c.WaitStrategy,
		"park_duration":   c.ParkDuration.String(),
		"stall_threshold": c.StallThreshold.String(),
		"pin_threads":     c.PinThreads,
		"rate_limit":      c.RateLimit,
		"metrics_addr":    c.MetricsAddr,
		"log_level":       c.LogLevel,
	}
}

// ConfigStore is a dynamic key/value map with atomic snapshot and listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		out[k] = v
	}
	return out
}

// SetConfig merges new values and notifies listeners synchronously after the
// lock is released.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	cs.mu.Lock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	listeners := append([]func(){}, cs.listeners...)
	cs.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
