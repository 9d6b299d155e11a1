// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package concurrency holds the lock-free core of hioload-bcast: the
// single-producer, multi-consumer broadcast Ring, its bounded reader registry,
// the wait strategies used while a side is blocked, and OS thread pinning for
// producer and consumer goroutines.
//
// The writer and every reader own one monotonically increasing progress
// counter. A slot write becomes visible to readers through the atomic store of
// the writer's counter; a slot becomes writable again once every reader's
// counter has moved past it. No mutex or condition variable is involved.
package concurrency
