// Package logger provides the console reporter for caserun execution.
//
// All human-readable output funnels through a single mutex so status lines
// from concurrently completing cases are never interleaved mid-write.
// Color output is automatically enabled for terminal output and suppressed
// for pipes and when NO_COLOR is set.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/caserun/internal/models"
)

// ConsoleLogger writes timestamped progress lines and the final summary.
// It is safe for concurrent use by multiple workers.
type ConsoleLogger struct {
	out    io.Writer
	errOut io.Writer
	mutex  sync.Mutex
	scheme *colorScheme
}

// NewConsoleLogger creates a ConsoleLogger writing progress to out and
// warnings/errors to errOut. Colors are enabled only when out is a terminal.
func NewConsoleLogger(out, errOut io.Writer) *ConsoleLogger {
	return &ConsoleLogger{
		out:    out,
		errOut: errOut,
		scheme: newColorScheme(isTerminal(out)),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// timestamp formats the [HH:MM:SS] prefix used on progress lines.
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// Infof writes an informational line to the progress stream.
func (l *ConsoleLogger) Infof(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	fmt.Fprintf(l.out, "[INFO] "+format+"\n", args...)
}

// Warnf writes a warning line to the error stream.
func (l *ConsoleLogger) Warnf(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	fmt.Fprintf(l.errOut, "%s "+format+"\n", append([]interface{}{l.scheme.warn.Sprint("[WARN]")}, args...)...)
}

// Errorf writes an error line to the error stream.
func (l *ConsoleLogger) Errorf(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	fmt.Fprintf(l.errOut, "%s "+format+"\n", append([]interface{}{l.scheme.fail.Sprint("[ERROR]")}, args...)...)
}

// CaseStarted records the start event for a case, emitted before dispatch.
func (l *ConsoleLogger) CaseStarted(id string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	fmt.Fprintf(l.out, "[%s] RUN %s\n", timestamp(), l.scheme.label.Sprint(id))
}

// CaseResult emits the status line for a completed case. It is called from
// worker goroutines as soon as each case resolves.
func (l *ConsoleLogger) CaseResult(o models.Outcome) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	id := l.scheme.label.Sprint(o.Case.ID)
	switch o.Status {
	case models.StatusOK:
		fmt.Fprintf(l.out, "[%s] %s %s (%s)\n",
			timestamp(), l.scheme.success.Sprint("[OK]"), id, o.Duration.Round(time.Millisecond))
	case models.StatusFail:
		fmt.Fprintf(l.out, "[%s] %s %s (exit %d)\n",
			timestamp(), l.scheme.fail.Sprint("[FAIL]"), id, o.ExitCode)
	default:
		fmt.Fprintf(l.out, "[%s] %s %s: %v\n",
			timestamp(), l.scheme.fail.Sprint("[ERROR]"), id, o.Err)
	}
}

// Summary writes the final summary block for a parallel run, listing totals
// and enumerating every non-success with its case id and exit code.
func (l *ConsoleLogger) Summary(s models.Summary) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	fmt.Fprintf(l.out, "\n")
	fmt.Fprintf(l.out, "Run Summary (run %s):\n", s.RunID)
	fmt.Fprintf(l.out, "  Total cases: %d\n", s.Total)
	fmt.Fprintf(l.out, "  Passed: %s\n", l.scheme.success.Sprintf("%d", s.Passed))
	if n := len(s.NonSuccess); n > 0 {
		fmt.Fprintf(l.out, "  Failed: %s\n", l.scheme.fail.Sprintf("%d", n))
	} else {
		fmt.Fprintf(l.out, "  Failed: 0\n")
	}
	if s.Skipped > 0 {
		fmt.Fprintf(l.out, "  Skipped: %s (cancelled before start)\n", l.scheme.warn.Sprintf("%d", s.Skipped))
	}
	fmt.Fprintf(l.out, "  Duration: %s\n", s.Duration.Round(time.Millisecond))

	if len(s.NonSuccess) > 0 {
		fmt.Fprintf(l.out, "\nNon-success cases:\n")
		for _, o := range s.NonSuccess {
			if o.Status == models.StatusError {
				fmt.Fprintf(l.out, "  - %s: exception (%v)\n", o.Case.ID, o.Err)
			} else {
				fmt.Fprintf(l.out, "  - %s: exit %d\n", o.Case.ID, o.ExitCode)
			}
		}
	}
}
