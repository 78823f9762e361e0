//go:build windows

package runner

import "os/exec"

// configureCaseProcess is a no-op on Windows; there are no process groups to
// detach into and console signal routing is handled by the runtime.
func configureCaseProcess(cmd *exec.Cmd) {}
