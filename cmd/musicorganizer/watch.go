package main

import (
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pkazmierczak/musicorganizer/internal"
)

func newWatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Organize songs as they are added to the source directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd, opts)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)

			debounce, err := cfg.Watch.Debounce()
			if err != nil {
				return err
			}
			if cfg.ConflictPolicy == internal.PolicyAsk {
				logger.Info("conflicts cannot be asked about while watching, skipping them")
				cfg.ConflictPolicy = internal.PolicySkip
			}

			// the session holds the lock, single file runs must not retake it
			if cfg.Lock {
				lock, err := internal.AcquireDestinationLock(cfg.Destination)
				if err != nil {
					return err
				}
				defer func() {
					if err := lock.Release(); err != nil {
						logger.Warnf("failed to release lock: %v", err)
					}
				}()
				cfg.Lock = false
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			state := internal.NewWatchState()
			w, err := NewWatcher(&organizer{cfg: cfg, logger: logger, out: cmd.OutOrStdout()}, state, debounce)
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return err
			}
			if err := w.ScanExisting(); err != nil {
				logger.Warnf("failed to scan existing files: %v", err)
			}

			statsTicker := time.NewTicker(time.Hour)
			defer statsTicker.Stop()

			for {
				select {
				case <-ctx.Done():
					logger.Info("shutting down")
					if err := w.Stop(); err != nil {
						logger.Errorf("error stopping watcher: %v", err)
					}
					logStats(logger, state)
					return nil
				case <-statsTicker.C:
					logStats(logger, state)
				}
			}
		},
	}
}

func logStats(logger *log.Logger, state *internal.WatchState) {
	stats := state.GetStats()
	logger.Infof("watch stats: runs=%d organized=%d conflicts=%d errors=%d uptime=%v",
		stats.Runs, stats.Organized, stats.Conflicts, stats.Errored,
		time.Since(stats.StartTime).Round(time.Second))
}
