package blob

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// MediaPruner is the slice of the engine the watcher needs: enumerate the
// blob references the bookkeeping rows point at, and drop rows whose blob
// has vanished.
type MediaPruner interface {
	MediaRefs(ctx context.Context) ([]string, error)
	PruneMediaRef(ctx context.Context, ref string) error
}

// Watch keeps media rows consistent with the blob directory: when a blob
// file is removed out from under the store (external deletion, restored
// backup), the rows referencing it are pruned. A reconciliation sweep runs
// at startup and, debounced, after rename events. Runs until ctx is
// cancelled.
func Watch(ctx context.Context, pruner MediaPruner, fs *FS, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(fs.Root()); err != nil {
		return err
	}

	logger.Info("blob watcher: started", slog.String("root", fs.Root()))
	sweep(ctx, pruner, fs, logger)

	var sweepTimer *time.Timer
	var sweepCh <-chan time.Time

	scheduleSweep := func() {
		if sweepTimer == nil {
			sweepTimer = time.NewTimer(200 * time.Millisecond)
			sweepCh = sweepTimer.C
		} else {
			sweepTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if sweepTimer != nil {
				sweepTimer.Stop()
			}
			logger.Info("blob watcher: stopped")
			return nil

		case <-sweepCh:
			sweep(ctx, pruner, fs, logger)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			ref := filepath.Base(ev.Name)
			if !refRe.MatchString(ref) {
				continue
			}
			switch {
			case ev.Op&fsnotify.Remove != 0:
				if err := pruner.PruneMediaRef(ctx, ref); err != nil {
					logger.Warn("blob watcher: prune failed",
						slog.String("ref", ref), slog.String("error", err.Error()))
					continue
				}
				logger.Debug("blob watcher: pruned", slog.String("ref", ref))

			case ev.Op&fsnotify.Rename != 0:
				// Rename fires on the old name only; sweep to catch the
				// row whose blob is now gone.
				scheduleSweep()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("blob watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// sweep prunes every media row whose blob file no longer exists.
func sweep(ctx context.Context, pruner MediaPruner, fs *FS, logger *slog.Logger) {
	refs, err := pruner.MediaRefs(ctx)
	if err != nil {
		logger.Warn("blob sweep: list refs failed", slog.String("error", err.Error()))
		return
	}
	for _, ref := range refs {
		if fs.Exists(ref) {
			continue
		}
		if err := pruner.PruneMediaRef(ctx, ref); err != nil {
			logger.Warn("blob sweep: prune failed",
				slog.String("ref", ref), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("blob sweep: pruned stale", slog.String("ref", ref))
	}
}
