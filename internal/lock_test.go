package internal

import (
	"path/filepath"
	"testing"

	"github.com/shoenig/test/must"
)

func TestAcquireDestinationLock(t *testing.T) {
	root := filepath.Join(t.TempDir(), "library")

	lock, err := AcquireDestinationLock(root)
	must.NoError(t, err)
	must.FileExists(t, filepath.Join(root, LockFileName))

	_, err = AcquireDestinationLock(root)
	must.ErrorIs(t, err, ErrLocked)

	must.NoError(t, lock.Release())
	must.FileExists(t, filepath.Join(root, LockFileName))

	again, err := AcquireDestinationLock(root)
	must.NoError(t, err)

	// the held lock is on the file that stayed in place
	_, err = AcquireDestinationLock(root)
	must.ErrorIs(t, err, ErrLocked)
	must.NoError(t, again.Release())
}

func TestAcquireDestinationLock_Discovery(t *testing.T) {
	root := t.TempDir()
	lock, err := AcquireDestinationLock(root)
	must.NoError(t, err)
	defer lock.Release()

	// the lock file is not an audio file and never shows up in a run
	files, err := Discover(root, newTestLogger(t))
	must.NoError(t, err)
	must.SliceEmpty(t, files)
}
