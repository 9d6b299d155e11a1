// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for the broadcast ring.

package benchmarks

import (
	"fmt"
	"sync"
	"testing"

	"github.com/momentics/hioload-bcast/broadcast"
	"github.com/momentics/hioload-bcast/internal/concurrency"
)

// runBroadcast pushes n values through a fresh channel to readers consumers
// and waits for all of them.
func runBroadcast(b *testing.B, capacity, readers, n int, opts ...broadcast.Option) {
	ch, err := broadcast.New[int](capacity, opts...)
	if err != nil {
		b.Fatal(err)
	}
	tx, _ := ch.Producer()
	var wg sync.WaitGroup
	for r := 0; r < readers; r++ {
		rx, err := ch.Consumer()
		if err != nil {
			b.Fatal(err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				rx.Read()
			}
		}()
	}
	for i := 0; i < n; i++ {
		tx.Write(i)
	}
	wg.Wait()
}

// BenchmarkTenConsumers10k mirrors the reference workload.
func BenchmarkTenConsumers10k(b *testing.B) {
	for i := 0; i < b.N; i++ {
		runBroadcast(b, 1000, 10, 10_000)
	}
}

// BenchmarkWaitStrategies compares waiters on the same workload.
func BenchmarkWaitStrategies(b *testing.B) {
	for _, name := range []string{concurrency.WaitPark, concurrency.WaitSpin, concurrency.WaitBackoff} {
		w, err := concurrency.ParseWaiter(name, 0)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				runBroadcast(b, 1000, 4, 10_000, broadcast.WithWaiter(w))
			}
		})
	}
}

// BenchmarkScaling varies capacity and reader count.
func BenchmarkScaling(b *testing.B) {
	for _, capacity := range []int{16, 256, 4096} {
		for _, readers := range []int{1, 4, 16} {
			b.Run(fmt.Sprintf("cap=%d/readers=%d", capacity, readers), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					runBroadcast(b, capacity, readers, 5_000)
				}
			})
		}
	}
}

// BenchmarkWriteNoReaders measures the producer path without backpressure.
func BenchmarkWriteNoReaders(b *testing.B) {
	ch, err := broadcast.New[int](1024)
	if err != nil {
		b.Fatal(err)
	}
	tx, _ := ch.Producer()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tx.Write(i)
	}
}
