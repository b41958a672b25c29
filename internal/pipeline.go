package internal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Request describes one organize run.
type Request struct {
	Source       string
	Destination  string
	StripIllegal bool
}

// Pipeline organizes a source tree into {artist}/{album} directories. It
// processes one file at a time in discovery order.
type Pipeline struct {
	extractor Extractor
	copier    Copier
	logger    *log.Logger
	emit      EventFunc
}

// PipelineOption customizes a Pipeline.
type PipelineOption func(*Pipeline)

// WithExtractor replaces the default tag reader chain.
func WithExtractor(e Extractor) PipelineOption {
	return func(p *Pipeline) { p.extractor = e }
}

// WithCopier replaces the default CopyEngine.
func WithCopier(c Copier) PipelineOption {
	return func(p *Pipeline) { p.copier = c }
}

// WithEvents registers the receiver of run events.
func WithEvents(fn EventFunc) PipelineOption {
	return func(p *Pipeline) { p.emit = fn }
}

// NewPipeline creates a Pipeline reading tags with DefaultExtractor and
// copying with a metadata preserving CopyEngine.
func NewPipeline(logger *log.Logger, opts ...PipelineOption) *Pipeline {
	if logger == nil {
		logger = log.StandardLogger()
	}
	p := &Pipeline{
		extractor: DefaultExtractor(),
		copier:    NewCopyEngine(logger),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Copier returns the copier the pipeline writes with, so conflict
// resolution can reuse it.
func (p *Pipeline) Copier() Copier {
	return p.copier
}

// Run organizes req.Source on the calling goroutine.
//
// A file that cannot be read, resolved or copied becomes an Errored outcome
// and the run continues. A file whose destination exists becomes a
// Conflicted outcome and does not advance progress until it is resolved.
// Run returns ErrNoFilesFound with an empty batch when the source has no
// audio files. Cancelling ctx stops the run between files and returns the
// partial batch with ctx.Err().
func (p *Pipeline) Run(ctx context.Context, req Request) (*Batch, error) {
	logger := p.logger.WithFields(log.Fields{
		"run_id": uuid.NewString(),
		"source": req.Source,
	})

	files, err := Discover(req.Source, logger)
	if err != nil {
		return &Batch{}, err
	}
	if len(files) == 0 {
		logger.Warn("no songs found")
		p.emit.emit(NoFilesEvent{Root: req.Source})
		return &Batch{}, ErrNoFilesFound
	}

	logger.Infof("found %d songs, organizing into %s", len(files), req.Destination)

	batch := newBatch(len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			logger.Warnf("interrupted after %d of %d songs", len(batch.Entries), batch.Total)
			return batch, err
		}

		outcome := p.organizeFile(logger, req, f)
		batch.record(f, outcome)
		if outcome.Kind != Conflicted {
			p.emit.emit(batch.advance())
		}
	}

	conflicts := batch.Conflicts()
	if len(conflicts) > 0 {
		p.emit.emit(ConflictsEvent{Conflicts: conflicts})
	} else if errs := batch.Errors(); len(errs) > 0 {
		p.emit.emit(ErrorsEvent{Errors: errs})
	}

	logger.Infof("organize finished: organized=%d conflicts=%d errors=%d",
		batch.Count(Organized), batch.Count(Conflicted), batch.Count(Errored))

	p.emit.emit(CompletedEvent{Batch: batch})
	return batch, nil
}

func (p *Pipeline) organizeFile(logger *log.Entry, req Request, f AudioFile) Outcome {
	tags, err := p.extractor.Extract(f.SourcePath)
	if err != nil {
		logger.Warnf("skipping %s: %v", f.SourcePath, err)
		return Outcome{Kind: Errored, Reason: err.Error(), Tags: tags}
	}

	aa, err := ResolveArtistAlbum(tags, req.StripIllegal)
	if err != nil {
		out := Outcome{Kind: Errored, Reason: err.Error(), Tags: tags}
		var missing *MissingMetadataError
		if errors.As(err, &missing) {
			out.ArtistFound = missing.Artist
			out.AlbumFound = missing.Album
		}
		logger.Warnf("skipping %s: %v", f.SourcePath, err)
		return out
	}

	dest := ResolveDestination(req.Destination, aa, f.FileName)
	errored := func(err error) Outcome {
		logger.Warnf("skipping %s: %v", f.SourcePath, err)
		return Outcome{
			Kind:        Errored,
			Destination: dest,
			Reason:      err.Error(),
			Tags:        tags,
			ArtistFound: &aa.Artist,
			AlbumFound:  &aa.Album,
		}
	}
	conflicted := func() Outcome {
		logger.Debugf("%s already exists, deferring", dest.FullPath)
		return Outcome{
			Kind:        Conflicted,
			Destination: dest,
			Tags:        tags,
			ArtistFound: &aa.Artist,
			AlbumFound:  &aa.Album,
		}
	}

	class, err := Classify(dest)
	if err != nil {
		return errored(err)
	}
	if class == Conflict {
		return conflicted()
	}

	if err := p.copier.Copy(f.SourcePath, dest, false); err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return conflicted()
		}
		return errored(err)
	}

	logger.Infof("copied %s to %s", f.SourcePath, dest.FullPath)
	return Outcome{Kind: Organized, Destination: dest, Tags: tags}
}

// Job is a run executing on a background goroutine.
type Job struct {
	events chan Event
	done   chan struct{}
	batch  *Batch
	err    error
}

// Start runs the pipeline on its own goroutine. Every event is delivered on
// Events, which must be drained, and is closed when the run ends.
func (p *Pipeline) Start(ctx context.Context, req Request) *Job {
	j := &Job{
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}

	worker := *p
	worker.emit = func(e Event) {
		p.emit.emit(e)
		j.events <- e
	}

	go func() {
		defer close(j.done)
		defer close(j.events)
		defer func() {
			if r := recover(); r != nil {
				j.err = fmt.Errorf("organize failed: %v", r)
			}
		}()
		j.batch, j.err = worker.Run(ctx, req)
	}()
	return j
}

// Events streams the events of the run.
func (j *Job) Events() <-chan Event {
	return j.events
}

// Wait blocks until the run ends and returns its batch.
func (j *Job) Wait() (*Batch, error) {
	<-j.done
	return j.batch, j.err
}
