package concurrency

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var (
	ErrTooFewAgents    = errors.New("ring needs at least two agents")
	ErrInvalidCycles   = errors.New("cycles must be positive")
	ErrHolderViolation = errors.New("resource held by more than one agent")
)

// AgentState is a phase of an agent's acquisition cycle.
type AgentState int

const (
	StateThinking AgentState = iota
	StateRequestingAdmission
	StateHoldingFirst
	StateHoldingBoth
	StateReleasing
	StateDone
)

func (s AgentState) String() string {
	switch s {
	case StateThinking:
		return "Thinking"
	case StateRequestingAdmission:
		return "RequestingAdmission"
	case StateHoldingFirst:
		return "HoldingFirst"
	case StateHoldingBoth:
		return "HoldingBoth"
	case StateReleasing:
		return "Releasing"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// AgentEvent is delivered to the observer on every state transition. It is
// called synchronously from the agent's goroutine, so a slow observer slows
// that agent down and nothing else.
type AgentEvent struct {
	Agent    int
	State    AgentState
	Cycle    int
	Resource int // resource index involved, -1 when none
}

// RingConfig configures a ResourceRing.
type RingConfig struct {
	// Agents is the number of agents and resources; must be >= 2.
	Agents int
	// Cycles is how many think/acquire/release rounds each agent runs.
	Cycles int
	// OnEvent, when non-nil, observes every agent state transition.
	OnEvent func(AgentEvent)
}

// DefaultRingConfig returns the classic five-agent, two-cycle setup.
func DefaultRingConfig() RingConfig {
	return RingConfig{Agents: 5, Cycles: 2}
}

// resource is a binary exclusive lock instrumented with a holder counter so
// stress tests can assert mutual exclusion.
type resource struct {
	gate    *Semaphore
	holders atomic.Int32
}

func (r *resource) acquire(ctx context.Context) error {
	if err := r.gate.Acquire(ctx); err != nil {
		return err
	}
	if n := r.holders.Add(1); n != 1 {
		r.holders.Add(-1)
		r.gate.Release(1)
		return fmt.Errorf("%w: %d holders", ErrHolderViolation, n)
	}
	return nil
}

func (r *resource) release() {
	r.holders.Add(-1)
	r.gate.Release(1)
}

// ResourceRing arranges N exclusive resources in a circle. Agent i needs
// resources i and (i+1) mod N held together to do its work.
//
// Two independent deadlock-prevention mechanisms are combined, either of
// which is sufficient on its own:
//
//  1. Admission control: a counting gate with N-1 permits keeps at least one
//     agent out of the acquisition phase, so the all-hold-one-wait-for-one
//     circular configuration is unreachable.
//  2. Ordered acquisition: inside the admitted phase, the lower-indexed
//     resource is always locked before the higher-indexed one, imposing a
//     global total order on the wait-for graph.
//
// Starvation is not strictly bounded by this scheme; it is a statistical
// property, not a proven one.
type ResourceRing struct {
	agents    int
	cycles    int
	onEvent   func(AgentEvent)
	resources []resource
	admission *Semaphore
}

// NewResourceRing validates cfg and builds the ring.
func NewResourceRing(cfg RingConfig) (*ResourceRing, error) {
	if cfg.Agents < 2 {
		return nil, ErrTooFewAgents
	}
	if cfg.Cycles < 1 {
		return nil, ErrInvalidCycles
	}

	admission, err := NewSemaphore(cfg.Agents-1, cfg.Agents-1)
	if err != nil {
		return nil, err
	}

	r := &ResourceRing{
		agents:    cfg.Agents,
		cycles:    cfg.Cycles,
		onEvent:   cfg.OnEvent,
		resources: make([]resource, cfg.Agents),
		admission: admission,
	}
	for i := range r.resources {
		gate, err := NewSemaphore(1, 1)
		if err != nil {
			return nil, err
		}
		r.resources[i].gate = gate
	}
	return r, nil
}

// Agents returns the number of agents (and resources).
func (r *ResourceRing) Agents() int {
	return r.agents
}

// Run starts one goroutine per agent and waits for all of them to finish
// their cycles. It returns the first error: a context cancellation or a
// mutual-exclusion violation detected by the holder instrumentation.
func (r *ResourceRing) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for id := 0; id < r.agents; id++ {
		id := id
		g.Go(func() error {
			return r.runAgent(ctx, id)
		})
	}
	return g.Wait()
}

func (r *ResourceRing) runAgent(ctx context.Context, id int) error {
	left, right := id, (id+1)%r.agents
	first, second := left, right
	if second < first {
		first, second = second, first
	}

	for cycle := 0; cycle < r.cycles; cycle++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("agent %d: %w", id, err)
		}

		r.emit(id, StateThinking, cycle, -1)

		r.emit(id, StateRequestingAdmission, cycle, -1)
		if err := r.admission.Acquire(ctx); err != nil {
			return fmt.Errorf("agent %d admission: %w", id, err)
		}

		// Lower-indexed resource first, always.
		if err := r.resources[first].acquire(ctx); err != nil {
			r.admission.Release(1)
			return fmt.Errorf("agent %d resource %d: %w", id, first, err)
		}
		r.emit(id, StateHoldingFirst, cycle, first)

		if err := r.resources[second].acquire(ctx); err != nil {
			r.resources[first].release()
			r.admission.Release(1)
			return fmt.Errorf("agent %d resource %d: %w", id, second, err)
		}
		r.emit(id, StateHoldingBoth, cycle, second)

		r.emit(id, StateReleasing, cycle, -1)
		r.resources[second].release()
		r.resources[first].release()
		r.admission.Release(1)
	}

	r.emit(id, StateDone, r.cycles, -1)
	return nil
}

func (r *ResourceRing) emit(agent int, state AgentState, cycle, res int) {
	if r.onEvent != nil {
		r.onEvent(AgentEvent{Agent: agent, State: state, Cycle: cycle, Resource: res})
	}
}

// Holders returns the instrumented holder count for a resource. It is only
// meaningful as a point-in-time probe during tests.
func (r *ResourceRing) Holders(resourceIndex int) int {
	return int(r.resources[resourceIndex].holders.Load())
}
