package store

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher logs external modifications of a persistent store file. Other
// trellis processes write the same file between our per-operation handles;
// the watcher makes that visible in the serve logs instead of silent.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	done    chan struct{}
}

// NewWatcher watches the directory containing path. Watching the directory
// rather than the file survives the engine replacing the file on compact.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating store watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		path:    path,
		watcher: fsw,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go w.run()

	return w, nil
}

func (w *Watcher) run() {
	base := filepath.Base(w.path)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				w.logger.Debug("store file changed on disk",
					zap.String("path", w.path),
					zap.String("op", event.Op.String()),
				)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("store watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
