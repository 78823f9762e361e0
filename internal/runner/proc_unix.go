//go:build !windows

package runner

import (
	"os/exec"
	"syscall"
)

// configureCaseProcess detaches the case process into its own process group
// so terminal-delivered signals (Ctrl-C) reach the harness but not the
// cases, which are allowed to run to completion after an interrupt.
func configureCaseProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
