// Package concurrency provides canonical in-process synchronization
// primitives for coordinating parallel goroutines over shared memory.
//
// # Core Components
//
// Semaphore - Counting semaphore with context-aware blocking and close/drain
//
//	sem, _ := NewSemaphore(3, 3)
//	sem.Acquire(ctx)
//	sem.Release(1)
//
// BoundedChannel - Fixed-capacity circular buffer coordinated by two
// counting semaphores plus a mutex; producers block when full, consumers
// block when empty
//
//	ch, _ := NewBoundedChannel[int](3)
//	ch.Put(ctx, 42)
//	v, _ := ch.Take(ctx)
//	ch.Close()
//
// ResourceRing - N exclusive resources arranged circularly, N agents each
// needing two neighbors; deadlock avoided by N-1 admission control plus
// ordered acquisition
//
//	ring, _ := NewResourceRing(RingConfig{Agents: 5, Cycles: 2})
//	ring.Run(ctx)
//
// MonitorQueue - Unbounded FIFO guarded by a mutex and a condition variable;
// consumers block while empty, close drains then unblocks everyone
//
//	q := NewMonitorQueue[int]()
//	q.Enqueue(1)
//	v, _ := q.Dequeue(ctx)
//	q.Close()
//
// # Architecture
//
// The package follows these design principles:
//
//  1. Shared state lives inside one owned component instance handed to
//     workers by reference, never in package-level variables
//  2. Every blocking operation accepts a context for cancellation
//  3. Critical sections are O(1) index/pointer updates; no blocking call is
//     ever made while holding a mutex
//  4. Shutdown is explicit: Close broadcasts a wakeup, waiters drain what
//     remains and then return a distinguished closed error
//
// The components are independent of one another; they are three instances of
// the same design problem solved with different primitives.
package concurrency

// Version of the concurrency package
const Version = "1.0.0"
