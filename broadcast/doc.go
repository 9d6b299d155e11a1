// Package broadcast
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-producer, multi-consumer broadcast channel for goroutines of one
// process. Every consumer receives every value written after it registered,
// in write order; the producer is throttled to the pace of the slowest
// consumer once it is a full ring ahead.
//
//	ch, err := broadcast.New[int](1024, broadcast.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	tx, _ := ch.Producer()
//	rx, _ := ch.Consumer()
//	go func() {
//		for i := 0; i < 10; i++ {
//			tx.Write(i)
//		}
//	}()
//	for i := 0; i < 10; i++ {
//		fmt.Println(rx.Read())
//	}
//
// Values are copied by assignment into each consumer. Payloads that carry
// pointers share the pointee between consumers and must not be mutated.
package broadcast
