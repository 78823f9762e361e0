package runner

import (
	"time"

	"github.com/harrison/caserun/internal/models"
)

// Collector accumulates per-case outcomes into a run summary. Outcomes
// arrive in completion order, which is the order the summary's non-success
// list preserves. Collector is not safe for concurrent use; the parallel
// coordinator funnels outcomes to it through a single channel.
type Collector struct {
	summary  models.Summary
	outcomes []models.Outcome
}

// NewCollector creates a Collector for the given run.
func NewCollector(runID string) *Collector {
	return &Collector{
		summary: models.Summary{
			RunID:   runID,
			Started: time.Now(),
		},
	}
}

// Observe records one case outcome. Every dispatched case must be observed
// exactly once.
func (c *Collector) Observe(o models.Outcome) {
	c.outcomes = append(c.outcomes, o)
	c.summary.Total++
	if o.Passed() {
		c.summary.Passed++
	} else {
		c.summary.NonSuccess = append(c.summary.NonSuccess, o)
	}
}

// AddSkipped records cases that were cancelled before dispatch. They never
// ran and are excluded from the summary total.
func (c *Collector) AddSkipped(n int) {
	c.summary.Skipped += n
}

// Summary finalizes and returns the aggregate summary.
func (c *Collector) Summary() models.Summary {
	c.summary.Duration = time.Since(c.summary.Started)
	return c.summary
}

// Outcomes returns every observed outcome in completion order, for run
// history recording.
func (c *Collector) Outcomes() []models.Outcome {
	return c.outcomes
}
