package musicorganizer

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/pkazmierczak/musicorganizer/internal"
)

type (
	Batch          = internal.Batch
	ConflictRecord = internal.ConflictRecord
	ErrorRecord    = internal.ErrorRecord
	ConflictPolicy = internal.ConflictPolicy
)

const (
	PolicySkip    = internal.PolicySkip
	PolicyReplace = internal.PolicyReplace
)

// ErrNoFilesFound is returned when the source tree has no audio files.
var ErrNoFilesFound = internal.ErrNoFilesFound

// Organize copies every song under source into destination/{artist}/{album}
// and resolves conflicts with policy, which must not require a prompt. It
// returns the finished batch. Songs that could not be organized are listed
// by Batch.Errors and do not make Organize fail.
func Organize(ctx context.Context, source, destination string, stripIllegal bool, policy ConflictPolicy) (*Batch, error) {
	if policy == internal.PolicyAsk || !policy.Valid() {
		return nil, errors.New("organize needs a skip or replace conflict policy")
	}

	logger := log.StandardLogger()
	p := internal.NewPipeline(logger)
	batch, err := p.Run(ctx, internal.Request{
		Source:       source,
		Destination:  destination,
		StripIllegal: stripIllegal,
	})
	if err != nil {
		return batch, err
	}

	c := internal.NewConflictController(batch, p.Copier(), logger, nil)
	if err := c.Apply(policy); err != nil {
		logger.Warnf("some conflicts could not be replaced: %v", err)
	}
	return batch, nil
}
