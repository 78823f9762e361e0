// Package filelock guards a suite root against concurrent harness runs.
// Two runs sharing one suite root would race on the cases' own working
// directories, so execution modes take an advisory lock before launching
// anything. Introspection modes never touch the lock.
package filelock

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFile is the advisory lock file name created under the suite root.
const LockFile = ".caserun.lock"

// Guard wraps a flock advisory lock on a suite root.
type Guard struct {
	flock *flock.Flock
	path  string
}

// NewGuard creates a run guard for the given suite root.
func NewGuard(root string) *Guard {
	path := filepath.Join(root, LockFile)
	return &Guard{
		flock: flock.New(path),
		path:  path,
	}
}

// Acquire takes the lock without blocking. It returns an error when another
// harness run already holds the suite root.
func (g *Guard) Acquire() error {
	acquired, err := g.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire run lock %s: %w", g.path, err)
	}
	if !acquired {
		return fmt.Errorf("another run is already in progress (lock held: %s)", g.path)
	}
	return nil
}

// Release releases the lock.
func (g *Guard) Release() error {
	if err := g.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release run lock %s: %w", g.path, err)
	}
	return nil
}
