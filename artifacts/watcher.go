package artifacts

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDelay coalesces the burst of events an editor or copy produces.
const reloadDelay = 200 * time.Millisecond

// Watcher reloads the runtime when either artifact file changes in a
// FileStore directory. A failed reload keeps the previous runtime.
type Watcher struct {
	store  *FileStore
	opts   Options
	holder *Holder
	logger *zap.Logger
	fsw    *fsnotify.Watcher
}

func NewWatcher(store *FileStore, opts Options, holder *Holder, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(store.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", store.Dir, err)
	}
	return &Watcher{store: store, opts: opts, holder: holder, logger: logger, fsw: fsw}, nil
}

// Run blocks until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	timer := time.NewTimer(reloadDelay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("artifact changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(reloadDelay)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("artifact watcher error", zap.Error(err))
		case <-timer.C:
			w.reload(ctx)
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	return name == w.opts.Scaler || name == w.opts.Model
}

func (w *Watcher) reload(ctx context.Context) {
	runtime, err := Load(ctx, w.store, w.opts, w.logger)
	if err == nil {
		w.holder.Set(runtime, nil)
		w.logger.Info("artifacts reloaded", zap.String("source", w.store.Describe()))
		return
	}

	if previous, currentErr := w.holder.Current(); currentErr == nil && previous != nil {
		w.logger.Error("artifact reload failed, keeping previous runtime", zap.Error(err))
		return
	}
	w.holder.Set(nil, err)
	w.logger.Error("artifact reload failed", zap.Error(err))
}
