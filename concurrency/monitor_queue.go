package concurrency

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned by Enqueue after Close, and by Dequeue once the
// queue has been closed and drained.
var ErrQueueClosed = errors.New("monitor queue closed")

// MonitorQueue is an unbounded FIFO coordinated monitor-style: a mutex plus
// a condition variable bound to the predicate "non-empty or closed". Any
// number of producers and consumers may use it concurrently.
//
// Enqueue order matches dequeue order as serialized by the lock; concurrent
// enqueuers are ordered by whichever acquires the lock first.
type MonitorQueue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	closed bool
}

// NewMonitorQueue creates an empty queue.
func NewMonitorQueue[T any]() *MonitorQueue[T] {
	q := &MonitorQueue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends item to the tail and wakes one blocked consumer. It never
// blocks. After Close it returns ErrQueueClosed.
func (q *MonitorQueue[T]) Enqueue(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, item)
	q.cond.Signal()
	return nil
}

// Dequeue removes and returns the head item, blocking while the queue is
// empty. The predicate is re-checked in a loop on every wake: spurious
// wakeups and the race where several consumers are woken for a single item
// both resolve to going back to sleep. After Close, remaining items drain
// first; then Dequeue returns ErrQueueClosed. A context cancellation while
// waiting returns the context error.
func (q *MonitorQueue[T]) Dequeue(ctx context.Context) (T, error) {
	var zero T

	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		})
		defer stop()
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.closed {
			return zero, ErrQueueClosed
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		q.cond.Wait()
	}

	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, nil
}

// TryDequeue removes the head item without blocking. It reports whether an
// item was returned.
func (q *MonitorQueue[T]) TryDequeue() (T, bool) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// Close marks the queue closed and wakes every blocked consumer. Items
// already enqueued remain dequeueable; once drained, Dequeue returns
// ErrQueueClosed. Close is idempotent.
func (q *MonitorQueue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

// Len returns the current number of queued items.
func (q *MonitorQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Closed reports whether Close has been called.
func (q *MonitorQueue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
