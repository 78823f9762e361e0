package cmd

import (
	"errors"
	"fmt"
)

// Process exit codes for automation/CI consumption.
const (
	ExitOK          = 0   // all cases passed, or list/dry-run/help path
	ExitFailures    = 1   // one or more cases did not pass, or a fatal setup error
	ExitUsage       = 2   // bad flag or unexpected argument
	ExitInterrupted = 130 // run interrupted (128 + SIGINT)
)

// UsageError marks a bad invocation: unknown flag, invalid --jobs value,
// unexpected positional argument. It maps to exit code 2 and is raised
// before any discovery happens.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageErrorf creates a UsageError with a formatted message.
func NewUsageErrorf(format string, args ...interface{}) *UsageError {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ExitCodeError carries an explicit process exit code alongside the error,
// for aggregate failures (1), interrupts (130) and the sequential variant's
// propagated case exit codes.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCode maps the error returned by command execution to the process exit
// code. nil means success; untyped errors (bad root directory, held locks)
// exit 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	var coded *ExitCodeError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ExitFailures
}
