package internal

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// supportedExtensions lists the audio containers the organizer picks up,
// lowercase with the leading dot.
var supportedExtensions = map[string]struct{}{
	".aif":  {},
	".aiff": {},
	".ape":  {},
	".flac": {},
	".m4a":  {},
	".m4b":  {},
	".m4r":  {},
	".mp2":  {},
	".mp3":  {},
	".mp4":  {},
	".mpc":  {},
	".ogg":  {},
	".opus": {},
	".wav":  {},
	".wma":  {},
}

// AudioFile is a file discovered in the source tree.
type AudioFile struct {
	SourcePath string
	FileName   string
}

// IsSupported reports whether a path has a supported audio extension.
// Matching is case-insensitive.
func IsSupported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Discover walks root recursively and returns every supported audio file in
// lexical walk order. Symlinks are included when they resolve to a regular
// file. A subtree that cannot be read is skipped with a warning; only a
// failure on root itself is returned.
func Discover(root string, logger log.FieldLogger) ([]AudioFile, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	var files []AudioFile
	if err := filepath.WalkDir(root, discoverFunc(root, logger, &files)); err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", root, err)
	}
	return files, nil
}

func discoverFunc(root string, logger log.FieldLogger, files *[]AudioFile) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warnf("skipping unreadable %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !IsSupported(path) || !isRegular(path, d) {
			return nil
		}
		*files = append(*files, AudioFile{SourcePath: path, FileName: d.Name()})
		return nil
	}
}

func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
