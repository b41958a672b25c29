package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pkazmierczak/musicorganizer/internal"
)

func newOrganizeCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Organize the source directory once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd, opts)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var r resolver
			if cfg.ConflictPolicy == internal.PolicyAsk {
				if isInteractive() && !opts.jsonOutput {
					r = surveyResolver{}
				} else {
					logger.Warn("no terminal to ask on, skipping conflicts")
					cfg.ConflictPolicy = internal.PolicySkip
				}
			}

			o := &organizer{
				cfg:      cfg,
				logger:   logger,
				resolver: r,
				out:      cmd.OutOrStdout(),
				progress: cmd.ErrOrStderr(),
			}
			batch, err := o.run(ctx)
			if err != nil {
				return err
			}
			if batch == nil {
				return nil
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), newReport(batch))
			}
			printSummary(cmd.OutOrStdout(), batch)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the result as JSON")
	return cmd
}

// organizer runs one organize pass and resolves its conflicts.
type organizer struct {
	cfg      internal.Config
	logger   *log.Logger
	resolver resolver // nil applies cfg.ConflictPolicy
	out      io.Writer
	progress io.Writer // nil disables the progress bar

	pipelineOpts []internal.PipelineOption
}

// run returns a nil batch when the source had no songs.
func (o *organizer) run(ctx context.Context) (*internal.Batch, error) {
	if o.cfg.Lock {
		lock, err := internal.AcquireDestinationLock(o.cfg.Destination)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				o.logger.Warnf("failed to release lock: %v", err)
			}
		}()
	}

	bar := o.newBar()
	p := internal.NewPipeline(o.logger, o.pipelineOpts...)
	job := p.Start(ctx, o.cfg.Request())

	var g errgroup.Group
	g.Go(func() error {
		for e := range job.Events() {
			switch ev := e.(type) {
			case internal.ProgressEvent:
				o.setProgress(bar, ev)
			case internal.NoFilesEvent:
				fmt.Fprintf(o.out, "No songs were found in %s\n", ev.Root)
			case internal.ConflictsEvent:
				o.logger.Infof("%d songs already exist in the library", len(ev.Conflicts))
			}
		}
		return nil
	})
	var batch *internal.Batch
	g.Go(func() error {
		var err error
		batch, err = job.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, internal.ErrNoFilesFound) {
			return nil, nil
		}
		return batch, err
	}

	c := internal.NewConflictController(batch, p.Copier(), o.logger, func(e internal.Event) {
		if ev, ok := e.(internal.ProgressEvent); ok {
			o.setProgress(bar, ev)
		}
	})
	if err := o.resolve(c); err != nil {
		o.logger.Warnf("conflicts: %v", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return batch, nil
}

func (o *organizer) resolve(c *internal.ConflictController) error {
	if c.Done() {
		return nil
	}
	if o.resolver != nil {
		return resolveConflicts(c, o.resolver, o.logger)
	}
	return c.Apply(o.cfg.ConflictPolicy)
}

func (o *organizer) newBar() *progressbar.ProgressBar {
	if o.progress == nil {
		return nil
	}
	return progressbar.NewOptions(100,
		progressbar.OptionSetWriter(o.progress),
		progressbar.OptionSetDescription("Organizing"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (o *organizer) setProgress(bar *progressbar.ProgressBar, ev internal.ProgressEvent) {
	o.logger.Debugf("progress %d/%d (%d%%)", ev.Processed, ev.Total, ev.Percent)
	if bar != nil {
		_ = bar.Set(ev.Percent)
	}
}
