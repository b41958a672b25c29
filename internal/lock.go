package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the lock file kept in the destination root.
const LockFileName = ".musicorganizer.lock"

// DestinationLock keeps two organizers from writing into the same library
// at once.
type DestinationLock struct {
	path string
	lock *flock.Flock
}

// AcquireDestinationLock takes the lock for root without blocking. It
// returns ErrLocked when another process holds it.
func AcquireDestinationLock(root string) (*DestinationLock, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination %s: %w", root, err)
	}

	path := filepath.Join(root, LockFileName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return &DestinationLock{path: path, lock: fl}, nil
}

// Release unlocks the lock file. The file stays in place: removing it would
// let a waiting process lock the unlinked inode while a third one locks a
// fresh file at the same path.
func (l *DestinationLock) Release() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
