package scenario

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SAmaya29/syncbox/concurrency"
	"github.com/SAmaya29/syncbox/config"
	"github.com/SAmaya29/syncbox/log"
)

// QueueWorkers is the unbounded-queue variant of the producer/consumer run:
// producers enqueue into a monitor queue, the queue is closed once they all
// finish, and consumers drain until the closed signal. Termination flows
// through the queue itself; there is no shared counter for consumers to
// poll.
func QueueWorkers(ctx context.Context, cfg *config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario config: %w", err)
	}

	q := concurrency.NewMonitorQueue[int]()

	log.InfoLog.Printf("monitor queue: %d producers x %d items, %d consumers",
		cfg.ProducerCount, cfg.ItemsPerProducer, cfg.ConsumerCount)

	start := time.Now()

	producers, prodCtx := errgroup.WithContext(ctx)
	for p := 0; p < cfg.ProducerCount; p++ {
		p := p
		producers.Go(func() error {
			for i := 0; i < cfg.ItemsPerProducer; i++ {
				simulateWork(cfg.MinDelayMs, cfg.MaxDelayMs)
				if err := prodCtx.Err(); err != nil {
					return fmt.Errorf("producer %d: %w", p, err)
				}
				item := p*1000 + i
				if err := q.Enqueue(item); err != nil {
					return fmt.Errorf("producer %d: %w", p, err)
				}
				log.DebugLog.Printf("[producer %d] enqueued %d", p, item)
			}
			return nil
		})
	}

	perConsumer := make([]int, cfg.ConsumerCount)
	var consumed atomic.Int64

	consumers, consCtx := errgroup.WithContext(ctx)
	for c := 0; c < cfg.ConsumerCount; c++ {
		c := c
		consumers.Go(func() error {
			for {
				item, err := q.Dequeue(consCtx)
				if errors.Is(err, concurrency.ErrQueueClosed) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("consumer %d: %w", c, err)
				}
				perConsumer[c]++
				consumed.Add(1)
				log.DebugLog.Printf("[consumer %d] dequeued %d", c, item)
				simulateWork(cfg.MinDelayMs, cfg.MaxDelayMs)
			}
		})
	}

	prodErr := producers.Wait()
	q.Close()
	consErr := consumers.Wait()
	if prodErr != nil {
		return nil, prodErr
	}
	if consErr != nil {
		return nil, consErr
	}

	report := &Report{
		Produced:    cfg.ProducerCount * cfg.ItemsPerProducer,
		Consumed:    int(consumed.Load()),
		PerConsumer: perConsumer,
		Elapsed:     time.Since(start),
	}
	if report.Consumed != report.Produced || q.Len() != 0 {
		return report, fmt.Errorf("%w: produced %d, consumed %d, %d left in queue",
			ErrConservation, report.Produced, report.Consumed, q.Len())
	}

	log.InfoLog.Printf("monitor queue: done, %d items in %s", report.Consumed, report.Elapsed)
	return report, nil
}
