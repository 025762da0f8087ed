package concurrency

import (
	"context"
	"errors"
	"sync"
)

// ErrChannelClosed is returned by Put after Close, and by Take once the
// buffer has been closed and drained.
var ErrChannelClosed = errors.New("bounded channel closed")

// BoundedChannel is a fixed-capacity circular buffer. Producers block when
// the buffer is full, consumers block when it is empty.
//
// Coordination follows the classic two-semaphore scheme: emptySlots starts
// at the capacity, fullSlots at zero, and fullSlots + emptySlots == capacity
// holds at all times. Each operation decrements one semaphore, mutates the
// cursors under the mutex, then increments the other semaphore; the two
// semaphore operations must straddle the critical section in exactly that
// order.
//
// No ordering guarantee exists among multiple blocked producers or
// consumers: any waiter may be woken first. The counting invariant holds
// regardless.
type BoundedChannel[T any] struct {
	mu         sync.Mutex
	slots      []T
	writeIndex int
	readIndex  int
	closed     bool

	emptySlots *Semaphore
	fullSlots  *Semaphore
}

// NewBoundedChannel creates a buffer with the given capacity.
func NewBoundedChannel[T any](capacity int) (*BoundedChannel[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	emptySlots, err := NewSemaphore(capacity, capacity)
	if err != nil {
		return nil, err
	}
	fullSlots, err := NewSemaphore(capacity, 0)
	if err != nil {
		return nil, err
	}

	return &BoundedChannel[T]{
		slots:      make([]T, capacity),
		emptySlots: emptySlots,
		fullSlots:  fullSlots,
	}, nil
}

// Put writes item into the next free slot, blocking while the buffer is
// full. It returns ErrChannelClosed after Close, including for producers
// already blocked on a full buffer, and the context error if ctx is
// cancelled while waiting.
func (c *BoundedChannel[T]) Put(ctx context.Context, item T) error {
	if err := c.emptySlots.Acquire(ctx); err != nil {
		if errors.Is(err, ErrSemaphoreClosed) {
			return ErrChannelClosed
		}
		return err
	}

	c.mu.Lock()
	if c.closed {
		// The slot was claimed between Close and the lock; hand it back.
		c.mu.Unlock()
		c.emptySlots.Release(1)
		return ErrChannelClosed
	}
	c.slots[c.writeIndex] = item
	c.writeIndex = (c.writeIndex + 1) % len(c.slots)
	c.mu.Unlock()

	c.fullSlots.Release(1)
	return nil
}

// Take removes and returns the oldest item, blocking while the buffer is
// empty. After Close it keeps returning buffered items until the buffer is
// drained, then returns ErrChannelClosed.
func (c *BoundedChannel[T]) Take(ctx context.Context) (T, error) {
	var zero T

	if err := c.fullSlots.Acquire(ctx); err != nil {
		if errors.Is(err, ErrSemaphoreClosed) {
			return zero, ErrChannelClosed
		}
		return zero, err
	}

	c.mu.Lock()
	item := c.slots[c.readIndex]
	c.slots[c.readIndex] = zero
	c.readIndex = (c.readIndex + 1) % len(c.slots)
	c.mu.Unlock()

	c.emptySlots.Release(1)
	return item, nil
}

// Close stops further Puts and wakes every blocked producer and consumer.
// Consumers drain whatever is buffered before seeing ErrChannelClosed.
// Close is idempotent.
func (c *BoundedChannel[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.emptySlots.Close()
	c.fullSlots.Close()
}

// Len returns the number of occupied slots.
func (c *BoundedChannel[T]) Len() int {
	return c.fullSlots.Available()
}

// Cap returns the fixed capacity.
func (c *BoundedChannel[T]) Cap() int {
	return len(c.slots)
}

// Closed reports whether Close has been called.
func (c *BoundedChannel[T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
