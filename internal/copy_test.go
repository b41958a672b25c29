package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/shoenig/test/must"
)

func newTestLogger(t *testing.T) *log.Logger {
	t.Helper()
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(log.DebugLevel)
	return logger
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	must.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	must.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	must.NoError(t, err)
	return string(b)
}

func TestCopyEngine_CreatesDirectories(t *testing.T) {
	src := filepath.Join(t.TempDir(), "song.mp3")
	writeFile(t, src, "audio")

	dest := ResolveDestination(t.TempDir(), ArtistAlbum{"Radiohead", "Amnesiac"}, "song.mp3")
	c := NewCopyEngine(newTestLogger(t))

	must.NoError(t, c.Copy(src, dest, false))
	must.Eq(t, "audio", readFile(t, dest.FullPath))
	// source is copied, not moved
	must.Eq(t, "audio", readFile(t, src))
}

func TestCopyEngine_PreservesModTime(t *testing.T) {
	src := filepath.Join(t.TempDir(), "song.flac")
	writeFile(t, src, "audio")
	mtime := time.Date(2001, 6, 4, 12, 0, 0, 0, time.UTC)
	must.NoError(t, os.Chtimes(src, mtime, mtime))
	must.NoError(t, os.Chmod(src, 0600))

	dest := ResolveDestination(t.TempDir(), ArtistAlbum{"Radiohead", "Amnesiac"}, "song.flac")
	c := NewCopyEngine(newTestLogger(t))
	must.NoError(t, c.Copy(src, dest, false))

	info, err := os.Stat(dest.FullPath)
	must.NoError(t, err)
	must.True(t, info.ModTime().Equal(mtime))
	must.Eq(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCopyEngine_RefusesToClobber(t *testing.T) {
	src := filepath.Join(t.TempDir(), "song.mp3")
	writeFile(t, src, "new")

	dest := ResolveDestination(t.TempDir(), ArtistAlbum{"Low", "Things We Lost in the Fire"}, "song.mp3")
	writeFile(t, dest.FullPath, "old")

	err := NewCopyEngine(newTestLogger(t)).Copy(src, dest, false)
	must.Error(t, err)

	var conflict *ConflictError
	must.True(t, errors.As(err, &conflict))
	must.Eq(t, dest.FullPath, conflict.Path)
	must.Eq(t, "old", readFile(t, dest.FullPath))
}

func TestCopyEngine_Overwrite(t *testing.T) {
	src := filepath.Join(t.TempDir(), "song.mp3")
	writeFile(t, src, "new")

	dest := ResolveDestination(t.TempDir(), ArtistAlbum{"Low", "Secret Name"}, "song.mp3")
	writeFile(t, dest.FullPath, "old")

	must.NoError(t, NewCopyEngine(newTestLogger(t)).Copy(src, dest, true))
	must.Eq(t, "new", readFile(t, dest.FullPath))

	// no temporary files left behind
	entries, err := os.ReadDir(dest.Directory)
	must.NoError(t, err)
	must.SliceLen(t, 1, entries)
}

func TestCopyEngine_MissingSource(t *testing.T) {
	dest := ResolveDestination(t.TempDir(), ArtistAlbum{"Low", "C'mon"}, "gone.mp3")

	err := NewCopyEngine(newTestLogger(t)).Copy("/nonexistent/gone.mp3", dest, false)
	must.Error(t, err)

	var failure *CopyFailureError
	must.True(t, errors.As(err, &failure))
	must.True(t, errors.Is(err, os.ErrNotExist))
	must.Eq(t, dest.FullPath, failure.Destination)
}

func TestCopyEngine_ZeroValue(t *testing.T) {
	src := filepath.Join(t.TempDir(), "song.ogg")
	writeFile(t, src, "audio")
	dest := ResolveDestination(t.TempDir(), ArtistAlbum{"Low", "Double Negative"}, "song.ogg")

	var c CopyEngine
	must.NoError(t, c.Copy(src, dest, false))
	must.Eq(t, "audio", readFile(t, dest.FullPath))
}
