package models

import "time"

// Case outcome status constants
const (
	StatusOK      = "OK"      // Case process exited 0
	StatusFail    = "FAIL"    // Case process exited non-zero
	StatusError   = "ERROR"   // Harness could not launch or await the case
	StatusSkipped = "SKIPPED" // Case was cancelled before it was started
)

// Outcome is the single result produced for one case. Exactly one Outcome
// exists per dispatched case; cases cancelled before dispatch never produce
// one and are counted separately.
type Outcome struct {
	Case     Case          // The case that was executed
	Status   string        // Status: "OK", "FAIL", "ERROR"
	ExitCode int           // Process exit code (meaningful for FAIL)
	Err      error         // Launch/await error for ERROR outcomes
	Duration time.Duration // Wall time for the case process
}

// Passed reports whether the case completed successfully.
func (o Outcome) Passed() bool {
	return o.Status == StatusOK
}

// Summary is the aggregate result of a parallel run. It is derived entirely
// from observed Outcomes; it never holds case-internal state.
type Summary struct {
	RunID      string        // Unique identifier for this invocation
	Total      int           // Number of cases dispatched
	Passed     int           // Number of OK outcomes
	NonSuccess []Outcome     // FAIL/ERROR outcomes in completion order
	Skipped    int           // Cases cancelled before dispatch (not in Total)
	Started    time.Time     // When execution began
	Duration   time.Duration // Total wall time for the run
}

// ExitCode derives the aggregate process exit code: 0 when every dispatched
// case passed, 1 otherwise.
func (s Summary) ExitCode() int {
	if len(s.NonSuccess) == 0 {
		return 0
	}
	return 1
}
