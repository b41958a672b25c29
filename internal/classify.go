package internal

import (
	"fmt"
	"os"
)

// Classification is the state of a destination path right before copying.
type Classification int

const (
	Ready Classification = iota
	Conflict
)

func (c Classification) String() string {
	if c == Conflict {
		return "conflict"
	}
	return "ready"
}

// Classify checks whether the destination file already exists. The result
// is never cached: call it immediately before each copy.
func Classify(dest Destination) (Classification, error) {
	_, err := os.Lstat(dest.FullPath)
	switch {
	case err == nil:
		return Conflict, nil
	case os.IsNotExist(err):
		return Ready, nil
	default:
		return Ready, fmt.Errorf("failed to stat %s: %w", dest.FullPath, err)
	}
}
