package concurrency

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrInvalidCapacity = errors.New("invalid capacity")
	ErrInvalidInitial  = errors.New("initial count out of range")
	ErrSemaphoreClosed = errors.New("semaphore closed")
)

// Semaphore implements a counting semaphore: Acquire blocks while the count
// is zero, Release increments the count and may unblock a waiter.
//
// Wakeup order among multiple blocked waiters is whatever the runtime gives;
// it is non-deterministic but correct with respect to the counting
// invariant. Callers that need FIFO wake order must layer a ticket queue on
// top.
type Semaphore struct {
	mu       sync.Mutex
	cond     *sync.Cond
	capacity int
	count    int
	closed   bool
}

// NewSemaphore creates a semaphore with the given capacity and initial
// count. The count never exceeds capacity; releasing past it is a caller
// bug and panics.
func NewSemaphore(capacity, initial int) (*Semaphore, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if initial < 0 || initial > capacity {
		return nil, ErrInvalidInitial
	}

	s := &Semaphore{
		capacity: capacity,
		count:    initial,
	}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

// Acquire decrements the count, blocking while it is zero. It returns the
// context error if ctx is cancelled while waiting, and ErrSemaphoreClosed
// once the semaphore is closed and the count is exhausted. Permits still
// available after Close can be acquired (drain). Cancellation is checked
// while waiting: a permit available at call time is taken even if ctx is
// already cancelled.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			// Wake every waiter so the one bound to ctx re-checks ctx.Err.
			s.mu.Lock()
			s.cond.Broadcast()
			s.mu.Unlock()
		})
		defer stop()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for s.count == 0 {
		if s.closed {
			return ErrSemaphoreClosed
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s.cond.Wait()
	}

	s.count--
	return nil
}

// TryAcquire decrements the count without blocking. It reports whether a
// permit was taken.
func (s *Semaphore) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count == 0 {
		return false
	}
	s.count--
	return true
}

// Release increments the count by n and wakes waiters.
func (s *Semaphore) Release(n int) {
	if n <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count+n > s.capacity {
		panic("concurrency: semaphore released beyond capacity")
	}
	s.count += n

	if n == 1 {
		s.cond.Signal()
	} else {
		s.cond.Broadcast()
	}
}

// Close marks the semaphore closed and wakes all waiters. Remaining permits
// can still be acquired; once the count hits zero, Acquire returns
// ErrSemaphoreClosed. Close is idempotent.
func (s *Semaphore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cond.Broadcast()
}

// Available returns the current count.
func (s *Semaphore) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Closed reports whether Close has been called.
func (s *Semaphore) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
