package queue

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock serializes transcription runs over one workspace. A second run
// against the same work directory fails fast instead of fighting over the
// job database and scratch files.
type RunLock struct {
	lock *flock.Flock
}

// AcquireRunLock takes the workspace lock, failing immediately when another
// process holds it.
func AcquireRunLock(workDir string) (*RunLock, error) {
	lock := flock.New(filepath.Join(workDir, "polyscribe.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another polyscribe run is using %s", workDir)
	}
	return &RunLock{lock: lock}, nil
}

// Release drops the lock.
func (l *RunLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
