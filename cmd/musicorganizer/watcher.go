package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/pkazmierczak/musicorganizer/internal"
)

// Watcher organizes songs as they appear under the source directory
type Watcher struct {
	fsWatcher    *fsnotify.Watcher
	organizer    *organizer
	state        *internal.WatchState
	logger       *log.Logger
	debounceTime time.Duration
	pendingFiles map[string]*FileEvent
	pendingMutex sync.RWMutex
	runMutex     sync.Mutex
	ctx          context.Context
	cancel       context.CancelFunc
	started      bool
	doneCh       chan struct{}
}

// FileEvent represents a song waiting for writes to settle
type FileEvent struct {
	Path     string
	LastSeen time.Time
	Timer    *time.Timer
}

// NewWatcher creates a new file watcher. The organizer must not prompt.
func NewWatcher(o *organizer, state *internal.WatchState, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if debounce == 0 {
		debounce = 2 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		fsWatcher:    fsWatcher,
		organizer:    o,
		state:        state,
		logger:       o.logger,
		debounceTime: debounce,
		pendingFiles: make(map[string]*FileEvent),
		ctx:          ctx,
		cancel:       cancel,
		doneCh:       make(chan struct{}),
	}, nil
}

// Start adds the source tree to the watcher and begins the event loop
func (w *Watcher) Start() error {
	root := w.organizer.cfg.Source
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("watch directory does not exist: %w", err)
	}

	if err := w.addTree(root); err != nil {
		return err
	}

	w.logger.Infof("watching directory: %s", root)
	w.started = true
	go w.eventLoop()
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) eventLoop() {
	defer close(w.doneCh)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("watcher error: %v", err)

		case <-w.ctx.Done():
			w.logger.Debug("watcher stopping")
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		w.logger.Debugf("failed to stat %s: %v", event.Name, err)
		return
	}

	// new directories may already hold songs by the time they are watched
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			w.scanDir(event.Name)
		}
		return
	}

	if !internal.IsSupported(event.Name) {
		return
	}

	w.logger.Debugf("file event: %s %s", event.Op, event.Name)
	w.debounceFile(event.Name)
}

// scanDir watches dir and every directory below it and queues the songs
// found there.
func (w *Watcher) scanDir(dir string) {
	if err := w.addTree(dir); err != nil {
		w.logger.Warnf("failed to watch %s: %v", dir, err)
	}

	files, err := internal.Discover(dir, w.logger)
	if err != nil {
		w.logger.Warnf("failed to scan %s: %v", dir, err)
		return
	}
	for _, f := range files {
		w.debounceFile(f.SourcePath)
	}
}

func (w *Watcher) debounceFile(filePath string) {
	w.pendingMutex.Lock()
	defer w.pendingMutex.Unlock()

	if pending, exists := w.pendingFiles[filePath]; exists {
		pending.Timer.Stop()
		pending.LastSeen = time.Now()
		pending.Timer = time.AfterFunc(w.debounceTime, func() {
			w.processFile(filePath)
		})
		return
	}

	w.pendingFiles[filePath] = &FileEvent{
		Path:     filePath,
		LastSeen: time.Now(),
		Timer: time.AfterFunc(w.debounceTime, func() {
			w.processFile(filePath)
		}),
	}
}

// processFile organizes one settled song. Runs are serialized so the
// destination lock is never contended by the watcher itself.
func (w *Watcher) processFile(filePath string) {
	w.pendingMutex.Lock()
	delete(w.pendingFiles, filePath)
	w.pendingMutex.Unlock()

	if w.ctx.Err() != nil {
		return
	}
	if w.state.IsKnown(filePath) {
		w.logger.Debugf("file %s already handled, skipping", filePath)
		return
	}
	if err := verifyFileReady(filePath); err != nil {
		w.logger.Warnf("file not ready, skipping: %v", err)
		return
	}

	w.runMutex.Lock()
	defer w.runMutex.Unlock()

	w.logger.Infof("processing file: %s", filePath)

	o := *w.organizer
	o.cfg.Source = filePath
	batch, err := o.run(w.ctx)
	if err != nil {
		w.logger.Errorf("failed to organize %s: %v", filePath, err)
		return
	}
	w.state.RecordRun(batch)
}

func verifyFileReady(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	return f.Close()
}

// ScanExisting queues every song already present in the source tree
func (w *Watcher) ScanExisting() error {
	root := w.organizer.cfg.Source
	w.logger.Infof("scanning existing files in %s", root)

	files, err := internal.Discover(root, w.logger)
	if err != nil {
		return err
	}
	for _, f := range files {
		w.debounceFile(f.SourcePath)
	}

	w.logger.Infof("queued %d existing files", len(files))
	return nil
}

// Stop cancels pending work and waits for the event loop to exit
func (w *Watcher) Stop() error {
	w.pendingMutex.Lock()
	for _, pending := range w.pendingFiles {
		pending.Timer.Stop()
	}
	w.pendingFiles = make(map[string]*FileEvent)
	w.pendingMutex.Unlock()

	w.cancel()

	if err := w.fsWatcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	if w.started {
		<-w.doneCh
	}

	// let an in-flight run finish
	w.runMutex.Lock()
	defer w.runMutex.Unlock()

	w.logger.Info("watcher stopped")
	return nil
}
