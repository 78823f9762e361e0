// Package plan resolves the effective worker count for a run.
package plan

import (
	"runtime"

	"github.com/harrison/caserun/internal/models"
)

// numCPU reports host logical parallelism; a package variable so tests can
// pin the probe.
var numCPU = runtime.NumCPU

// Build constructs the execution plan for the given cases.
//
// requested > 0 is an explicit worker count and is used as-is, except it is
// clamped to the case count (never more workers than work). requested <= 0
// means unspecified: the host's logical CPU count is probed, clamped to
// [1, len(cases)]; if the probe reports nothing usable the plan falls back
// to one worker per case, since cases are independent.
//
// Rejecting bad explicit requests (zero, negative) is the CLI's job before
// calling Build; here a non-positive request simply means auto-detect.
func Build(cases []models.Case, requested int) models.Plan {
	n := len(cases)
	if n == 0 {
		return models.Plan{Jobs: 0, Cases: cases}
	}

	jobs := requested
	if jobs <= 0 {
		jobs = numCPU()
		if jobs <= 0 {
			jobs = n
		}
	}
	if jobs > n {
		jobs = n
	}
	if jobs < 1 {
		jobs = 1
	}

	return models.Plan{Jobs: jobs, Cases: cases}
}
