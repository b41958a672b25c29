package internal

// Event is emitted by a run and by conflict resolution.
type Event interface {
	event()
}

// EventFunc receives events on the goroutine that produces them.
type EventFunc func(Event)

func (f EventFunc) emit(e Event) {
	if f != nil {
		f(e)
	}
}

// ProgressEvent follows every file whose outcome became final.
type ProgressEvent struct {
	Processed int
	Total     int
	Percent   int
}

// NoFilesEvent is emitted once when the source tree has no audio files.
type NoFilesEvent struct {
	Root string
}

// ConflictsEvent hands the deferred conflicts to the resolver.
type ConflictsEvent struct {
	Conflicts []ConflictRecord
}

// ErrorsEvent hands the end of run error summary to the reporter.
type ErrorsEvent struct {
	Errors []ErrorRecord
}

// CompletedEvent is the last event of a run.
type CompletedEvent struct {
	Batch *Batch
}

func (ProgressEvent) event()  {}
func (NoFilesEvent) event()   {}
func (ConflictsEvent) event() {}
func (ErrorsEvent) event()    {}
func (CompletedEvent) event() {}
