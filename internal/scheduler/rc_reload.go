package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jwhur/startpage/internal/domain"
	"github.com/jwhur/startpage/internal/logger"
	"github.com/jwhur/startpage/internal/rc"
	"github.com/jwhur/startpage/internal/store"
)

const sourceRCFile = "rc"

// RCReloader keeps the in-memory link store in sync with the RC file.
// It reloads on a fixed interval, on a manual trigger, and (when
// watching is enabled) whenever the file changes on disk.
type RCReloader struct {
	file          *store.RCFile
	links         *store.LinkStore
	logger        logger.Logger
	interval      time.Duration
	watch         bool
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewRCReloader creates a reloader for the given RC file.
func NewRCReloader(
	file *store.RCFile,
	links *store.LinkStore,
	log logger.Logger,
	interval time.Duration,
	watch bool,
	manualTrigger chan struct{},
) *RCReloader {
	return &RCReloader{
		file:          file,
		links:         links,
		logger:        log,
		interval:      interval,
		watch:         watch,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the file once (a failure here is fatal, the server has
// nothing to serve without it) and then begins the reload loop.
func (rr *RCReloader) Start(ctx context.Context) error {
	if err := rr.Reload(ctx); err != nil {
		return fmt.Errorf("initial link reload failed: %w", err)
	}

	var watchCh <-chan fsnotify.Event
	var watchErrCh <-chan error
	var watcher *fsnotify.Watcher
	if rr.watch {
		var err error
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			rr.logger.Warn("file watching disabled", logger.Error(err))
		} else {
			// Watch the directory, not the file: saves via rename
			// replace the inode and would silently drop a file watch.
			if err := watcher.Add(filepath.Dir(rr.file.Path())); err != nil {
				rr.logger.Warn("file watching disabled", logger.Error(err))
				_ = watcher.Close()
				watcher = nil
			} else {
				watchCh = watcher.Events
				watchErrCh = watcher.Errors
			}
		}
	}

	ticker := time.NewTicker(rr.interval)
	go func() {
		defer ticker.Stop()
		if watcher != nil {
			defer func() { _ = watcher.Close() }()
		}
		for {
			select {
			case <-ticker.C:
				if err := rr.Reload(ctx); err != nil {
					rr.logger.Error("failed to reload links", logger.Error(err))
				}
			case <-rr.manualTrigger:
				rr.logger.Info("manual link reload triggered")
				if err := rr.Reload(ctx); err != nil {
					rr.logger.Error("failed to reload links", logger.Error(err))
				}
			case event, ok := <-watchCh:
				if !ok {
					watchCh = nil
					continue
				}
				if !rr.relevant(event) {
					continue
				}
				// Editors and our own Save write through temp+rename,
				// so give the write a moment to settle.
				time.Sleep(100 * time.Millisecond)
				if err := rr.Reload(ctx); err != nil {
					rr.logger.Error("failed to reload links after file change",
						logger.Error(err))
				}
			case err, ok := <-watchErrCh:
				// Both watcher channels must be drained or the
				// watcher stalls and events stop arriving.
				if !ok {
					watchErrCh = nil
					continue
				}
				rr.logger.Warn("file watcher error", logger.Error(err))
			case <-rr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (rr *RCReloader) Stop() {
	close(rr.stopCh)
}

// Reload re-reads the RC file and rebuilds the link store from it.
// When the file's rebuilt projection already matches the store the
// rebuild is skipped, so a write of our own (every API mutation saves
// the file, which trips the watcher) does not regenerate link ids.
// The comparison runs on the projection, not the raw lines, because a
// line the codec accepts but the store rejects (a schemeless url, for
// instance) would otherwise force a rebuild on every pass.
func (rr *RCReloader) Reload(ctx context.Context) error {
	records, err := rr.file.Load()
	if err != nil {
		return fmt.Errorf("failed to load rc file: %w", err)
	}

	now := time.Now()
	batch := make([]domain.Candidate, 0, len(records))
	for _, rec := range records {
		batch = append(batch, domain.Candidate{
			Name:       rec.Name,
			URL:        rec.URL,
			Tags:       rec.Tags,
			Source:     sourceRCFile,
			ImportedAt: now,
		})
	}

	if !rr.links.LastReload().IsZero() &&
		rc.Encode(store.Sift(batch)) == rc.Encode(rr.links.All()) {
		rr.logger.Debug("rc file unchanged, skipping reload")
		return nil
	}

	count := rr.links.Replace(batch)
	rr.logger.Info("links reloaded from rc file",
		logger.String("file", rr.file.Path()),
		logger.Int("count", count))
	return nil
}

func (rr *RCReloader) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != filepath.Base(rr.file.Path()) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}
