package scheduler

import (
	"context"
	"time"

	"github.com/jwhur/startpage/internal/logger"
	"github.com/jwhur/startpage/internal/store"
)

const (
	// DefaultBackupRetention is how long RC file backups are kept.
	DefaultBackupRetention = 7 * 24 * time.Hour
)

// BackupJanitor periodically deletes old RC file backups. Every save
// of the link file leaves a timestamped .bak copy behind, so without
// cleanup the data directory grows forever.
type BackupJanitor struct {
	file      *store.RCFile
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
}

// NewBackupJanitor creates a new janitor for the given RC file.
func NewBackupJanitor(
	file *store.RCFile,
	log logger.Logger,
	interval time.Duration,
	retention time.Duration,
) *BackupJanitor {
	if retention == 0 {
		retention = DefaultBackupRetention
	}

	return &BackupJanitor{
		file:      file,
		logger:    log,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic cleanup process.
func (bj *BackupJanitor) Start(ctx context.Context) error {
	// Run immediately on start
	if err := bj.Sweep(); err != nil {
		bj.logger.Warn("initial backup cleanup failed", logger.Error(err))
	}

	ticker := time.NewTicker(bj.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := bj.Sweep(); err != nil {
					bj.logger.Error("backup cleanup failed", logger.Error(err))
				}
			case <-bj.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the janitor.
func (bj *BackupJanitor) Stop() {
	close(bj.stopCh)
}

// Sweep removes backups older than the retention window.
func (bj *BackupJanitor) Sweep() error {
	removed, err := bj.file.PruneBackups(bj.retention)
	if err != nil {
		return err
	}

	if removed > 0 {
		bj.logger.Info("pruned old rc file backups",
			logger.Int("removed", removed),
			logger.String("retention", bj.retention.String()))
	} else {
		bj.logger.Debug("no rc file backups to prune")
	}
	return nil
}
