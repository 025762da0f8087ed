// Package scenario runs the demonstration workloads around the concurrency
// primitives: a bounded-buffer producer/consumer run, the resource-ring
// agents, and the monitor-queue worker pool. The scenarios carry no
// correctness weight of their own; they parameterize the primitives from a
// config.Config, simulate think/work time, log events, and verify that the
// run's accounting adds up.
package scenario

import (
	"errors"
	"time"

	"github.com/valyala/fastrand"
)

var (
	// ErrConservation reports a run where the number of items consumed does
	// not match the number produced.
	ErrConservation = errors.New("consumed items do not match produced items")
	// ErrLostCycle reports a ring run that finished with fewer active
	// events than agents times cycles.
	ErrLostCycle = errors.New("ring finished with missing active events")
)

// Report summarizes a producer/consumer run.
type Report struct {
	Produced    int
	Consumed    int
	PerConsumer []int
	Elapsed     time.Duration
}

// RingReport summarizes a resource-ring run.
type RingReport struct {
	ActiveEvents int
	AgentsDone   int
	Elapsed      time.Duration
}

// simulateWork sleeps for a uniformly random duration between the bounds.
// Zero bounds mean no delay, which is what the tests use.
func simulateWork(minMs, maxMs int) {
	if maxMs <= 0 {
		return
	}
	span := uint32(maxMs - minMs + 1)
	d := time.Duration(minMs+int(fastrand.Uint32n(span))) * time.Millisecond
	if d > 0 {
		time.Sleep(d)
	}
}
