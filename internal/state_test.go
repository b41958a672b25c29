package internal

import (
	"sync"
	"testing"

	"github.com/shoenig/test/must"
)

func TestNewWatchState(t *testing.T) {
	state := NewWatchState()

	must.NotNil(t, state)
	must.MapEmpty(t, state.known)
	must.Eq(t, 0, state.Stats.Runs)
	must.False(t, state.Stats.StartTime.IsZero())
	must.True(t, state.Stats.LastRunEnd.IsZero())
}

func TestRecordRun(t *testing.T) {
	state := NewWatchState()

	batch := &Batch{
		Total: 3,
		Entries: []Entry{
			{File: AudioFile{SourcePath: "/in/a.mp3"}, Outcome: Outcome{Kind: Organized}},
			{File: AudioFile{SourcePath: "/in/b.mp3"}, Outcome: Outcome{Kind: Conflicted}},
			{File: AudioFile{SourcePath: "/in/c.mp3"}, Outcome: Outcome{Kind: Errored}},
		},
	}
	state.RecordRun(batch)
	state.RecordRun(&Batch{
		Total:   1,
		Entries: []Entry{{File: AudioFile{SourcePath: "/in/d.mp3"}, Outcome: Outcome{Kind: Organized}}},
	})

	stats := state.GetStats()
	must.Eq(t, 2, stats.Runs)
	must.Eq(t, 2, stats.Organized)
	must.Eq(t, 1, stats.Conflicts)
	must.Eq(t, 1, stats.Errored)
	must.False(t, stats.LastRunEnd.IsZero())

	must.True(t, state.IsKnown("/in/a.mp3"))
	must.True(t, state.IsKnown("/in/d.mp3"))
	must.False(t, state.IsKnown("/in/e.mp3"))
}

func TestRecordRun_NilBatch(t *testing.T) {
	state := NewWatchState()
	state.RecordRun(nil)

	stats := state.GetStats()
	must.Eq(t, 1, stats.Runs)
	must.Eq(t, 0, stats.Organized)
}

func TestWatchState_Concurrent(t *testing.T) {
	state := NewWatchState()
	batch := &Batch{
		Total:   1,
		Entries: []Entry{{File: AudioFile{SourcePath: "/in/a.mp3"}, Outcome: Outcome{Kind: Organized}}},
	}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			state.RecordRun(batch)
		}()
		go func() {
			defer wg.Done()
			_ = state.IsKnown("/in/a.mp3")
			_ = state.GetStats()
		}()
	}
	wg.Wait()

	must.Eq(t, 10, state.GetStats().Runs)
	must.Eq(t, 10, state.GetStats().Organized)
}
