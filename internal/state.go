package internal

import (
	"sync"
	"time"
)

// WatchState tracks in-memory stats for a watch session.
// It is not persisted, stats reset on restart.
type WatchState struct {
	mu    sync.RWMutex
	known map[string]struct{} // source paths seen this session
	Stats RunStats
}

// RunStats accumulates outcome counters across runs
type RunStats struct {
	Runs       int
	Organized  int
	Conflicts  int
	Errored    int
	StartTime  time.Time
	LastRunEnd time.Time
}

// NewWatchState creates a new in-memory state
func NewWatchState() *WatchState {
	return &WatchState{
		known: make(map[string]struct{}),
		Stats: RunStats{
			StartTime: time.Now(),
		},
	}
}

// IsKnown returns true if the source path was part of a run this session
func (s *WatchState) IsKnown(sourcePath string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.known[sourcePath]
	return ok
}

// RecordRun folds a finished batch into the session stats
func (s *WatchState) RecordRun(b *Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stats.Runs++
	s.Stats.LastRunEnd = time.Now()
	if b == nil {
		return
	}
	for _, e := range b.Entries {
		s.known[e.File.SourcePath] = struct{}{}
		switch e.Outcome.Kind {
		case Organized:
			s.Stats.Organized++
		case Conflicted:
			s.Stats.Conflicts++
		case Errored:
			s.Stats.Errored++
		}
	}
}

// GetStats returns a copy of the current stats
func (s *WatchState) GetStats() RunStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Stats
}
