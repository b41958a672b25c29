package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFilesFound is returned when the source tree holds no supported
	// audio files. It is the only condition that aborts a run.
	ErrNoFilesFound = errors.New("no songs were found in the selected folder")

	// ErrLocked is returned when another organizer already holds the
	// destination lock.
	ErrLocked = errors.New("destination is locked by another organizer")

	// ErrNoConflicts is returned by conflict transitions once every conflict
	// has been resolved.
	ErrNoConflicts = errors.New("no conflicts remaining")
)

// UnreadableFileError means the tag reader returned no data for a file.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not load metadata from %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("could not load metadata from %s", e.Path)
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}

// MissingMetadataError means the artist or album could not be resolved. The
// partial values that were found are kept for diagnostics; nil means no
// matching tag existed at all.
type MissingMetadataError struct {
	Artist *string
	Album  *string
}

func (e *MissingMetadataError) Error() string {
	var missing []string
	if e.Artist == nil {
		missing = append(missing, "artist")
	}
	if e.Album == nil {
		missing = append(missing, "album")
	}
	if len(missing) == 0 {
		return "artist or album is empty"
	}
	return strings.Join(missing, " and ") + " data not found"
}

// CopyFailureError wraps an I/O failure while copying into the library.
type CopyFailureError struct {
	Source      string
	Destination string
	Err         error
}

func (e *CopyFailureError) Error() string {
	return fmt.Sprintf("failed to copy %s to %s: %v", e.Source, e.Destination, e.Err)
}

func (e *CopyFailureError) Unwrap() error {
	return e.Err
}

// ConflictError means the destination file already exists. It defers the
// file to conflict resolution rather than failing it.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("file already exists in the destination folder: %s", e.Path)
}
