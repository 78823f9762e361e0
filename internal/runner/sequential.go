package runner

import (
	"context"
	"fmt"

	"github.com/harrison/caserun/internal/logger"
	"github.com/harrison/caserun/internal/models"
)

// CaseFailedError reports the first failing case of a sequential run. The
// harness exits with the case's own exit code rather than an aggregate 1.
type CaseFailedError struct {
	CaseID   string
	ExitCode int
}

func (e *CaseFailedError) Error() string {
	return fmt.Sprintf("case %s failed with exit code %d", e.CaseID, e.ExitCode)
}

// RunSequential executes cases one at a time in discovery order, halting on
// the first failure without starting subsequent cases. It trades a complete
// summary for fail-fast behavior.
//
// Returns nil when every case passes, a *CaseFailedError for the first
// non-zero case exit, ctx.Err() when cancelled between cases, or a plain
// error for an orchestration failure.
func RunSequential(ctx context.Context, invoker CaseInvoker, cases []models.Case, log *logger.ConsoleLogger) error {
	total := len(cases)

	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			return err
		}

		log.Infof("[%d/%d] %s", i+1, total, c.ID)

		outcome := invoker.Run(c)
		log.CaseResult(outcome)

		switch outcome.Status {
		case models.StatusOK:
			// next case
		case models.StatusFail:
			return &CaseFailedError{CaseID: c.ID, ExitCode: outcome.ExitCode}
		default:
			return fmt.Errorf("failed to run case %s: %w", c.ID, outcome.Err)
		}
	}

	return nil
}
