package pipeline

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// BuildLock prevents concurrent builds from racing on the same index.
// The clear-then-publish sequence is not safe to interleave.
type BuildLock struct {
	fl *flock.Flock
}

// DefaultLockPath returns the lock file location for the current tree.
// The name carries a digest of the working directory so builds of
// unrelated trees on the same machine never contend.
func DefaultLockPath() string {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	if abs, err := filepath.Abs(wd); err == nil {
		wd = abs
	}
	sum := sha256.Sum256([]byte(wd))
	return filepath.Join(os.TempDir(), fmt.Sprintf("docsearch-build-%x.lock", sum[:8]))
}

// NewBuildLock creates a lock backed by the given file path.
func NewBuildLock(path string) *BuildLock {
	return &BuildLock{fl: flock.New(path)}
}

// TryLock attempts to acquire the lock without blocking. Returns false
// when another process holds it.
func (l *BuildLock) TryLock() (bool, error) {
	return l.fl.TryLock()
}

// Unlock releases the lock.
func (l *BuildLock) Unlock() error {
	return l.fl.Unlock()
}
