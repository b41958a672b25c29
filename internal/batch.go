package internal

// OutcomeKind says what happened to one discovered file.
type OutcomeKind int

const (
	Organized OutcomeKind = iota
	Conflicted
	Errored
)

func (k OutcomeKind) String() string {
	switch k {
	case Organized:
		return "organized"
	case Conflicted:
		return "conflict"
	default:
		return "errored"
	}
}

// Outcome is the per-file result of a run.
//
// Organized and Conflicted outcomes carry a Destination. Errored
// outcomes carry the Reason, the tags that were read and the raw artist and
// album values that were found, nil when no matching tag existed.
type Outcome struct {
	Kind        OutcomeKind
	Destination Destination
	Reason      string
	Tags        TagMap
	ArtistFound *string
	AlbumFound  *string
}

// Entry pairs a discovered file with its outcome.
type Entry struct {
	File    AudioFile
	Outcome Outcome
}

// ConflictRecord describes a file whose destination already exists.
type ConflictRecord struct {
	FileName       string `json:"file_name"`
	NewLocationDir string `json:"new_location"`
	SourcePath     string `json:"source_path"`

	entry int
}

// ErrorRecord describes a file that could not be organized.
type ErrorRecord struct {
	FileName    string  `json:"file_name"`
	ArtistFound *string `json:"artist_found"`
	AlbumFound  *string `json:"album_found"`
	Tags        TagMap  `json:"metadata"`
	Error       string  `json:"error"`
}

// Batch collects the outcomes of one run in discovery order. Total is fixed
// when the run starts; Processed counts files whose outcome is final and
// never exceeds Total. Conflicts only count once they are resolved.
type Batch struct {
	Total     int
	Entries   []Entry
	Processed int
}

func newBatch(total int) *Batch {
	return &Batch{Total: total, Entries: make([]Entry, 0, total)}
}

// Percent is the share of finished files, 0..100.
func (b *Batch) Percent() int {
	if b.Total == 0 {
		return 0
	}
	return b.Processed * 100 / b.Total
}

func (b *Batch) progress() ProgressEvent {
	return ProgressEvent{Processed: b.Processed, Total: b.Total, Percent: b.Percent()}
}

// advance counts one more finished file.
func (b *Batch) advance() ProgressEvent {
	if b.Processed < b.Total {
		b.Processed++
	}
	return b.progress()
}

// complete marks every file finished.
func (b *Batch) complete() ProgressEvent {
	b.Processed = b.Total
	return b.progress()
}

func (b *Batch) record(f AudioFile, o Outcome) {
	b.Entries = append(b.Entries, Entry{File: f, Outcome: o})
}

// markOrganized records a successful replace.
func (b *Batch) markOrganized(i int) {
	b.Entries[i].Outcome.Kind = Organized
}

// markErrored turns an entry into an Errored outcome, keeping its tags.
func (b *Batch) markErrored(i int, reason string) {
	o := &b.Entries[i].Outcome
	o.Kind = Errored
	o.Reason = reason
}

// Count returns the number of entries of the given kind.
func (b *Batch) Count(kind OutcomeKind) int {
	n := 0
	for _, e := range b.Entries {
		if e.Outcome.Kind == kind {
			n++
		}
	}
	return n
}

// Conflicts lists the entries whose destination was occupied and that have
// not been replaced. Skipped conflicts stay in this list.
func (b *Batch) Conflicts() []ConflictRecord {
	var out []ConflictRecord
	for i, e := range b.Entries {
		if e.Outcome.Kind != Conflicted {
			continue
		}
		out = append(out, ConflictRecord{
			FileName:       e.File.FileName,
			NewLocationDir: e.Outcome.Destination.Directory,
			SourcePath:     e.File.SourcePath,
			entry:          i,
		})
	}
	return out
}

// Errors lists the entries that could not be organized.
func (b *Batch) Errors() []ErrorRecord {
	var out []ErrorRecord
	for _, e := range b.Entries {
		if e.Outcome.Kind != Errored {
			continue
		}
		out = append(out, ErrorRecord{
			FileName:    e.File.FileName,
			ArtistFound: e.Outcome.ArtistFound,
			AlbumFound:  e.Outcome.AlbumFound,
			Tags:        e.Outcome.Tags,
			Error:       e.Outcome.Reason,
		})
	}
	return out
}
