package internal

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ConflictPolicy decides how conflicts are handled without a prompt.
type ConflictPolicy string

const (
	PolicyAsk     ConflictPolicy = "ask"
	PolicySkip    ConflictPolicy = "skip"
	PolicyReplace ConflictPolicy = "replace"
)

func (p ConflictPolicy) Valid() bool {
	switch p {
	case PolicyAsk, PolicySkip, PolicyReplace:
		return true
	}
	return false
}

// ConflictController resolves the conflicts of a finished run one decision
// at a time. A cursor selects the current conflict; every transition removes
// it from the remaining list and advances the batch progress. Once nothing
// remains, progress is reported as 100 and any errors of the run are
// emitted.
type ConflictController struct {
	batch  *Batch
	copier Copier
	logger *log.Logger
	emit   EventFunc

	remaining []ConflictRecord
	resolved  map[string]struct{}
	cursor    int
	finished  bool
}

// NewConflictController takes over the conflicts of batch. A batch without
// conflicts yields a controller that is already done.
func NewConflictController(batch *Batch, copier Copier, logger *log.Logger, emit EventFunc) *ConflictController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	remaining := batch.Conflicts()
	return &ConflictController{
		batch:     batch,
		copier:    copier,
		logger:    logger,
		emit:      emit,
		remaining: remaining,
		resolved:  make(map[string]struct{}),
		finished:  len(remaining) == 0,
	}
}

// Done reports whether every conflict has been resolved.
func (c *ConflictController) Done() bool {
	return len(c.remaining) == 0
}

// Remaining returns the unresolved conflicts in order.
func (c *ConflictController) Remaining() []ConflictRecord {
	return append([]ConflictRecord(nil), c.remaining...)
}

// Current returns the selected conflict.
func (c *ConflictController) Current() (ConflictRecord, bool) {
	if c.Done() {
		return ConflictRecord{}, false
	}
	return c.remaining[c.cursor], true
}

// Select moves the cursor to the i-th remaining conflict.
func (c *ConflictController) Select(i int) error {
	if i < 0 || i >= len(c.remaining) {
		return fmt.Errorf("conflict %d out of range (%d remaining)", i, len(c.remaining))
	}
	c.cursor = i
	return nil
}

// Resolved reports whether the conflict for sourcePath has been decided.
func (c *ConflictController) Resolved(sourcePath string) bool {
	_, ok := c.resolved[sourcePath]
	return ok
}

// SkipOne leaves the current conflict's destination untouched.
func (c *ConflictController) SkipOne() error {
	rec, ok := c.Current()
	if !ok {
		return ErrNoConflicts
	}
	c.logger.Infof("skipping %s, %s already exists", rec.SourcePath, rec.NewLocationDir)
	c.remove()
	return nil
}

// SkipAll leaves every remaining destination untouched.
func (c *ConflictController) SkipAll() {
	if c.Done() {
		c.finish()
		return
	}
	c.logger.Infof("skipping %d conflicting songs", len(c.remaining))
	for _, rec := range c.remaining {
		c.resolved[rec.SourcePath] = struct{}{}
	}
	c.remaining = nil
	c.cursor = 0
	c.finish()
}

// ReplaceOne overwrites the current conflict's destination. The conflict is
// removed even when the copy fails; the failure turns the file's outcome
// into an error and is returned.
func (c *ConflictController) ReplaceOne() error {
	rec, ok := c.Current()
	if !ok {
		return ErrNoConflicts
	}
	err := c.replace(rec)
	c.remove()
	return err
}

// ReplaceAll overwrites every remaining destination and returns the joined
// copy failures.
func (c *ConflictController) ReplaceAll() error {
	var errs []error
	c.cursor = 0
	for !c.Done() {
		if err := c.ReplaceOne(); err != nil {
			errs = append(errs, err)
		}
	}
	c.finish()
	return errors.Join(errs...)
}

// Apply resolves every remaining conflict according to a non-interactive
// policy.
func (c *ConflictController) Apply(policy ConflictPolicy) error {
	switch policy {
	case PolicySkip:
		c.SkipAll()
		return nil
	case PolicyReplace:
		return c.ReplaceAll()
	default:
		return fmt.Errorf("conflict policy %q needs an interactive resolver", policy)
	}
}

func (c *ConflictController) replace(rec ConflictRecord) error {
	dest := c.batch.Entries[rec.entry].Outcome.Destination
	if err := c.copier.Copy(rec.SourcePath, dest, true); err != nil {
		c.logger.Warnf("failed to replace %s: %v", dest.FullPath, err)
		c.batch.markErrored(rec.entry, fmt.Sprintf("replace failed: %v", err))
		return err
	}
	c.logger.Infof("replaced %s with %s", dest.FullPath, rec.SourcePath)
	c.batch.markOrganized(rec.entry)
	return nil
}

// remove drops the current conflict and keeps the cursor on the row that
// followed it.
func (c *ConflictController) remove() {
	rec := c.remaining[c.cursor]
	c.resolved[rec.SourcePath] = struct{}{}
	c.remaining = append(c.remaining[:c.cursor], c.remaining[c.cursor+1:]...)
	if c.cursor >= len(c.remaining) {
		c.cursor = max(len(c.remaining)-1, 0)
	}

	if c.Done() {
		c.finish()
		return
	}
	c.emit.emit(c.batch.advance())
}

func (c *ConflictController) finish() {
	if c.finished {
		return
	}
	c.finished = true
	c.emit.emit(c.batch.complete())
	if errs := c.batch.Errors(); len(errs) > 0 {
		c.emit.emit(ErrorsEvent{Errors: errs})
	}
}
