package runner

import (
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/harrison/caserun/internal/models"
)

// CaseInvoker runs a single case to completion and classifies the result.
type CaseInvoker interface {
	Run(c models.Case) models.Outcome
}

// Invoker launches case entry scripts as external processes. Each case runs
// with its own directory as working directory so it sees its inputs locally,
// exactly as when run by hand. The invoker performs no synchronization
// between cases; isolation is the suite's responsibility.
type Invoker struct {
	// Stdout and Stderr are inherited by case processes. They default to the
	// harness's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewInvoker creates an Invoker with default stream wiring.
func NewInvoker() *Invoker {
	return &Invoker{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes one case and produces its outcome. A process that cannot be
// started or awaited yields StatusError (an orchestration problem), while a
// process that runs and exits non-zero yields StatusFail with its exit code.
//
// The process is placed in its own process group so an interrupt delivered
// to the harness does not implicitly tear down in-flight cases; they are
// left to finish on their own. Run never kills the processes it starts.
func (inv *Invoker) Run(c models.Case) models.Outcome {
	startTime := time.Now()

	argv := c.Command()
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = c.Dir
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr
	configureCaseProcess(cmd)

	err := cmd.Run()

	outcome := models.Outcome{
		Case:     c,
		Duration: time.Since(startTime),
	}

	switch e := err.(type) {
	case nil:
		outcome.Status = models.StatusOK
	case *exec.ExitError:
		outcome.Status = models.StatusFail
		outcome.ExitCode = e.ExitCode()
	default:
		outcome.Status = models.StatusError
		outcome.Err = err
	}

	return outcome
}
