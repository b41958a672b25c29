package internal

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Copier places a source file at its destination.
type Copier interface {
	Copy(source string, dest Destination, overwrite bool) error
}

// CopyEngine copies files into the library, creating album directories as
// needed. Without overwrite an existing destination is never touched and the
// copy fails with *ConflictError.
type CopyEngine struct {
	// PreserveMetadata carries the source permissions and modification time
	// over to the copy. Failures to do so are logged, not returned.
	PreserveMetadata bool

	logger *log.Logger
}

// NewCopyEngine returns a CopyEngine that preserves file metadata.
func NewCopyEngine(logger *log.Logger) *CopyEngine {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &CopyEngine{PreserveMetadata: true, logger: logger}
}

func (c *CopyEngine) getLogger() *log.Logger {
	if c.logger == nil {
		return log.StandardLogger()
	}
	return c.logger
}

func (c *CopyEngine) Copy(source string, dest Destination, overwrite bool) error {
	fail := func(err error) error {
		return &CopyFailureError{Source: source, Destination: dest.FullPath, Err: err}
	}

	if err := os.MkdirAll(dest.Directory, 0755); err != nil {
		return fail(fmt.Errorf("failed to create directory %s: %w", dest.Directory, err))
	}

	in, err := os.Open(source)
	if err != nil {
		return fail(err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fail(err)
	}

	if overwrite {
		err = c.replace(in, info.Mode().Perm(), dest)
	} else {
		err = c.create(in, info.Mode().Perm(), dest)
	}
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return err
		}
		return fail(err)
	}

	if c.PreserveMetadata {
		c.preserve(info, dest.FullPath)
	}
	return nil
}

// create writes to a file that must not exist yet.
func (c *CopyEngine) create(in io.Reader, perm fs.FileMode, dest Destination) error {
	out, err := os.OpenFile(dest.FullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if os.IsExist(err) {
			return &ConflictError{Path: dest.FullPath}
		}
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest.FullPath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest.FullPath)
		return err
	}
	return nil
}

// replace writes to a temporary file next to the destination and renames it
// into place so a failed copy leaves the existing file intact.
func (c *CopyEngine) replace(in io.Reader, perm fs.FileMode, dest Destination) error {
	tmp, err := os.CreateTemp(dest.Directory, "."+filepath.Base(dest.FullPath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		c.getLogger().Debugf("failed to set permissions on %s: %v", tmpPath, err)
	}
	if err := os.Rename(tmpPath, dest.FullPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func (c *CopyEngine) preserve(info fs.FileInfo, path string) {
	if err := os.Chmod(path, info.Mode().Perm()); err != nil {
		c.getLogger().Debugf("failed to preserve permissions on %s: %v", path, err)
	}
	if err := os.Chtimes(path, info.ModTime(), info.ModTime()); err != nil {
		c.getLogger().Debugf("failed to preserve modification time on %s: %v", path, err)
	}
}
