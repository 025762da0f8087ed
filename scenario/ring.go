package scenario

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/SAmaya29/syncbox/concurrency"
	"github.com/SAmaya29/syncbox/config"
	"github.com/SAmaya29/syncbox/log"
)

// DiningAgents runs cfg.AgentCount agents through cfg.CyclesPerAgent cycles
// of the resource ring, simulating think and hold time on the relevant state
// transitions. Every agent must finish every cycle; a shortfall in active
// events is reported as ErrLostCycle.
func DiningAgents(ctx context.Context, cfg *config.Config) (*RingReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario config: %w", err)
	}

	var active, done atomic.Int64
	ring, err := concurrency.NewResourceRing(concurrency.RingConfig{
		Agents: cfg.AgentCount,
		Cycles: cfg.CyclesPerAgent,
		OnEvent: func(ev concurrency.AgentEvent) {
			switch ev.State {
			case concurrency.StateThinking:
				log.DebugLog.Printf("[agent %d] thinking (cycle %d)", ev.Agent, ev.Cycle)
				simulateWork(cfg.MinDelayMs, cfg.MaxDelayMs)
			case concurrency.StateHoldingFirst:
				log.DebugLog.Printf("[agent %d] holding resource %d", ev.Agent, ev.Resource)
			case concurrency.StateHoldingBoth:
				active.Add(1)
				log.DebugLog.Printf("[agent %d] active (cycle %d)", ev.Agent, ev.Cycle)
				simulateWork(cfg.MinDelayMs, cfg.MaxDelayMs)
			case concurrency.StateDone:
				done.Add(1)
				log.InfoLog.Printf("[agent %d] finished all cycles", ev.Agent)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resource ring: %w", err)
	}

	log.InfoLog.Printf("resource ring: %d agents, %d cycles each", cfg.AgentCount, cfg.CyclesPerAgent)

	start := time.Now()
	if err := ring.Run(ctx); err != nil {
		return nil, fmt.Errorf("ring run: %w", err)
	}

	report := &RingReport{
		ActiveEvents: int(active.Load()),
		AgentsDone:   int(done.Load()),
		Elapsed:      time.Since(start),
	}
	if want := cfg.AgentCount * cfg.CyclesPerAgent; report.ActiveEvents != want {
		return report, fmt.Errorf("%w: expected %d, got %d", ErrLostCycle, want, report.ActiveEvents)
	}

	log.InfoLog.Printf("resource ring: done, %d active events in %s", report.ActiveEvents, report.Elapsed)
	return report, nil
}
