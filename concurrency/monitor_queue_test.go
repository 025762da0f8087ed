package concurrency

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// Single consumer: dequeue order must equal enqueue order exactly.
func TestMonitorQueueFIFO(t *testing.T) {
	q := NewMonitorQueue[int]()

	want := make([]int, 100)
	for i := range want {
		want[i] = i
		if err := q.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d) failed: %v", i, err)
		}
	}

	ctx := context.Background()
	got := make([]int, 0, len(want))
	for range want {
		v, err := q.Dequeue(ctx)
		if err != nil {
			t.Fatalf("Dequeue failed: %v", err)
		}
		got = append(got, v)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FIFO order violated (-want +got):\n%s", diff)
	}
}

func TestMonitorQueueBlocksWhenEmpty(t *testing.T) {
	q := NewMonitorQueue[string]()

	got := make(chan string, 1)
	go func() {
		v, err := q.Dequeue(context.Background())
		if err != nil {
			t.Errorf("Dequeue failed: %v", err)
			return
		}
		got <- v
	}()

	select {
	case v := <-got:
		t.Fatalf("Dequeue returned %q from an empty queue", v)
	case <-time.After(50 * time.Millisecond):
	}

	if err := q.Enqueue("hello"); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	select {
	case v := <-got:
		if v != "hello" {
			t.Errorf("Dequeue = %q, want %q", v, "hello")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue did not wake the blocked consumer")
	}
}

func TestMonitorQueueTryDequeue(t *testing.T) {
	q := NewMonitorQueue[int]()

	if _, ok := q.TryDequeue(); ok {
		t.Error("TryDequeue should fail on an empty queue")
	}

	if err := q.Enqueue(42); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if v, ok := q.TryDequeue(); !ok || v != 42 {
		t.Errorf("TryDequeue = %d, %v; want 42, true", v, ok)
	}
}

// Closing with two items still enqueued lets outstanding dequeues drain both
// before subsequent calls see the closed signal; nothing blocks forever.
func TestMonitorQueueGracefulShutdown(t *testing.T) {
	q := NewMonitorQueue[int]()

	if err := q.Enqueue(1); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if err := q.Enqueue(2); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	q.Close()

	ctx := context.Background()
	for _, want := range []int{1, 2} {
		v, err := q.Dequeue(ctx)
		if err != nil {
			t.Fatalf("Dequeue failed during drain: %v", err)
		}
		if v != want {
			t.Errorf("Dequeue = %d, want %d", v, want)
		}
	}

	if _, err := q.Dequeue(ctx); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Expected ErrQueueClosed after drain, got %v", err)
	}
	if err := q.Enqueue(3); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Expected ErrQueueClosed on enqueue, got %v", err)
	}
}

func TestMonitorQueueCloseWakesBlockedConsumers(t *testing.T) {
	q := NewMonitorQueue[int]()

	const consumers = 4
	errCh := make(chan error, consumers)
	for i := 0; i < consumers; i++ {
		go func() {
			_, err := q.Dequeue(context.Background())
			errCh <- err
		}()
	}

	time.Sleep(20 * time.Millisecond)
	q.Close()

	for i := 0; i < consumers; i++ {
		select {
		case err := <-errCh:
			if !errors.Is(err, ErrQueueClosed) {
				t.Errorf("Expected ErrQueueClosed, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Close did not wake all blocked consumers")
		}
	}
}

func TestMonitorQueueContextCancel(t *testing.T) {
	q := NewMonitorQueue[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := q.Dequeue(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
}

// Multiple producers and consumers: every enqueued value is dequeued exactly
// once, and the queue finishes empty.
func TestMonitorQueueConservation(t *testing.T) {
	const (
		producers        = 4
		consumers        = 4
		itemsPerProducer = 250
	)

	q := NewMonitorQueue[int]()
	ctx := context.Background()

	var producerWg sync.WaitGroup
	for p := 0; p < producers; p++ {
		producerWg.Add(1)
		go func(p int) {
			defer producerWg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				if err := q.Enqueue(p*itemsPerProducer + i); err != nil {
					t.Errorf("Enqueue failed: %v", err)
					return
				}
			}
		}(p)
	}

	var mu sync.Mutex
	var got []int
	var consumerWg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consumerWg.Add(1)
		go func() {
			defer consumerWg.Done()
			for {
				v, err := q.Dequeue(ctx)
				if errors.Is(err, ErrQueueClosed) {
					return
				}
				if err != nil {
					t.Errorf("Dequeue failed: %v", err)
					return
				}
				mu.Lock()
				got = append(got, v)
				mu.Unlock()
			}
		}()
	}

	producerWg.Wait()
	q.Close()
	consumerWg.Wait()

	want := make([]int, producers*itemsPerProducer)
	for i := range want {
		want[i] = i
	}
	sort.Ints(got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Conservation violated (-want +got):\n%s", diff)
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue, got %d items", q.Len())
	}
}
