package scenario

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SAmaya29/syncbox/concurrency"
	"github.com/SAmaya29/syncbox/config"
	"github.com/SAmaya29/syncbox/log"
)

// ProducerConsumer runs cfg.ProducerCount producers pushing
// cfg.ItemsPerProducer items each through a bounded channel of
// cfg.Capacity slots, with cfg.ConsumerCount consumers draining it. The
// channel is closed once every producer has finished; consumers drain the
// remainder and exit on the closed signal.
func ProducerConsumer(ctx context.Context, cfg *config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario config: %w", err)
	}

	ch, err := concurrency.NewBoundedChannel[int](cfg.Capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create bounded channel: %w", err)
	}

	log.InfoLog.Printf("bounded buffer: %d producers x %d items, %d consumers, capacity %d",
		cfg.ProducerCount, cfg.ItemsPerProducer, cfg.ConsumerCount, cfg.Capacity)

	start := time.Now()

	producers, prodCtx := errgroup.WithContext(ctx)
	for p := 0; p < cfg.ProducerCount; p++ {
		p := p
		producers.Go(func() error {
			for i := 0; i < cfg.ItemsPerProducer; i++ {
				simulateWork(cfg.MinDelayMs, cfg.MaxDelayMs)
				item := p*1000 + i
				if err := ch.Put(prodCtx, item); err != nil {
					return fmt.Errorf("producer %d: %w", p, err)
				}
				log.DebugLog.Printf("[producer %d] put %d", p, item)
			}
			return nil
		})
	}

	perConsumer := make([]int, cfg.ConsumerCount)
	var consumed atomic.Int64
	var progressMu sync.Mutex
	progress := log.NewEvery(2 * time.Second)

	consumers, consCtx := errgroup.WithContext(ctx)
	for c := 0; c < cfg.ConsumerCount; c++ {
		c := c
		consumers.Go(func() error {
			for {
				item, err := ch.Take(consCtx)
				if errors.Is(err, concurrency.ErrChannelClosed) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("consumer %d: %w", c, err)
				}
				perConsumer[c]++
				total := consumed.Add(1)
				log.DebugLog.Printf("[consumer %d] took %d", c, item)

				progressMu.Lock()
				if progress.ShouldLog() {
					log.InfoLog.Printf("bounded buffer: %d items consumed so far", total)
				}
				progressMu.Unlock()

				simulateWork(cfg.MinDelayMs, cfg.MaxDelayMs)
			}
		})
	}

	prodErr := producers.Wait()
	ch.Close()
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
	if report.Consumed != report.Produced || ch.Len() != 0 {
		return report, fmt.Errorf("%w: produced %d, consumed %d, %d left in buffer",
			ErrConservation, report.Produced, report.Consumed, ch.Len())
	}

	log.InfoLog.Printf("bounded buffer: done, %d items in %s", report.Consumed, report.Elapsed)
	return report, nil
}
