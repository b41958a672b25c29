package main

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/shoenig/test/must"

	"github.com/pkazmierczak/musicorganizer/internal"
)

// fakeTags serves tags keyed by file name.
type fakeTags map[string]internal.TagMap

func (f fakeTags) Extract(path string) (internal.TagMap, error) {
	tags, ok := f[filepath.Base(path)]
	if !ok {
		return nil, &internal.UnreadableFileError{Path: path}
	}
	return tags, nil
}

func song(artist, album string) internal.TagMap {
	return internal.TagMap{"artist": internal.Scalar(artist), "album": internal.Scalar(album)}
}

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
