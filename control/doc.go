// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics and debug introspection for hioload-bcast.
//
// Provides:
//   - Config loading from defaults, .env, YAML and BCAST_* environment variables
//   - A key/value ConfigStore with reload listeners
//   - MetricsRegistry snapshots, including flattened ring stats
//   - Debug probe registration, with platform probes
package control
