// Package runner executes case entry scripts as isolated external processes,
// either under a bounded worker pool or one at a time.
//
// Cancellation is best-effort: an interrupt stops dispatch of pending cases,
// but already-running case processes are neither signalled nor reaped. They
// run to completion in their own process groups, possibly outliving the
// harness.
package runner

import (
	"context"
	"sync"

	"github.com/harrison/caserun/internal/logger"
	"github.com/harrison/caserun/internal/models"
)

// Pool runs a plan's cases under a fixed-size worker pool. Submission
// follows plan order; completion (and therefore reporting and failure-list
// order) is unordered across workers.
type Pool struct {
	invoker CaseInvoker
	log     *logger.ConsoleLogger
}

// NewPool constructs a Pool with the provided invoker and reporter.
func NewPool(invoker CaseInvoker, log *logger.ConsoleLogger) *Pool {
	return &Pool{
		invoker: invoker,
		log:     log,
	}
}

// Run executes every case in the plan with at most plan.Jobs in flight and
// returns the collector holding all observed outcomes. At steady state
// exactly plan.Jobs cases run concurrently until fewer remain; submission of
// the next case never waits on completion order, only on a free worker slot.
//
// When ctx is cancelled, cases not yet dispatched are counted as skipped and
// excluded from the summary total; in-flight cases are drained to their
// natural completion. A per-case orchestration error is recorded as an
// ERROR outcome and never disturbs sibling cases.
func (p *Pool) Run(ctx context.Context, plan models.Plan, runID string) *Collector {
	collector := NewCollector(runID)

	semaphore := make(chan struct{}, plan.Jobs)
	results := make(chan models.Outcome, len(plan.Cases))

	var wg sync.WaitGroup

	dispatched := 0
dispatch:
	for _, c := range plan.Cases {
		// Check before blocking on a slot so a cancelled run stops
		// submitting immediately.
		select {
		case <-ctx.Done():
			break dispatch
		case semaphore <- struct{}{}:
		}

		// A freed slot can race the cancellation; re-check so no case is
		// dispatched after the interrupt.
		if ctx.Err() != nil {
			<-semaphore
			break dispatch
		}

		p.log.CaseStarted(c.ID)
		dispatched++
		wg.Add(1)

		go func(c models.Case) {
			defer wg.Done()
			defer func() { <-semaphore }()

			outcome := p.invoker.Run(c)
			p.log.CaseResult(outcome)
			results <- outcome
		}(c)
	}

	collector.AddSkipped(len(plan.Cases) - dispatched)

	go func() {
		wg.Wait()
		close(results)
	}()

	for outcome := range results {
		collector.Observe(outcome)
	}

	return collector
}
