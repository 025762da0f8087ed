package main

import (
	"context"
	"testing"

	"github.com/SAmaya29/syncbox/concurrency"
)

// BenchmarkSemaphoreAcquireRelease measures the uncontended acquire/release
// round trip
func BenchmarkSemaphoreAcquireRelease(b *testing.B) {
	sem, err := concurrency.NewSemaphore(1, 1)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sem.Acquire(ctx)
		sem.Release(1)
	}
}

// BenchmarkBoundedChannel measures put/take throughput
func BenchmarkBoundedChannel(b *testing.B) {
	ctx := context.Background()

	b.Run("PutTake", func(b *testing.B) {
		ch, err := concurrency.NewBoundedChannel[int](64)
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			_ = ch.Put(ctx, i)
			_, _ = ch.Take(ctx)
		}
	})

	b.Run("Pipelined", func(b *testing.B) {
		ch, err := concurrency.NewBoundedChannel[int](64)
		if err != nil {
			b.Fatal(err)
		}
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, err := ch.Take(ctx); err != nil {
					return
				}
			}
		}()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = ch.Put(ctx, i)
		}
		ch.Close()
		<-done
	})
}

// BenchmarkMonitorQueue measures enqueue/dequeue throughput
func BenchmarkMonitorQueue(b *testing.B) {
	ctx := context.Background()
	q := concurrency.NewMonitorQueue[int]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = q.Enqueue(i)
		_, _ = q.Dequeue(ctx)
	}
}

// BenchmarkResourceRing measures full ring cycles without simulated delays
func BenchmarkResourceRing(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ring, err := concurrency.NewResourceRing(concurrency.RingConfig{Agents: 5, Cycles: 2})
		if err != nil {
			b.Fatal(err)
		}
		if err := ring.Run(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
