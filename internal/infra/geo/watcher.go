package geo

import (
	"log/slog"
	"path/filepath"

	"gaia/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// datasetWatcher calls onChange whenever the dataset file is written, replaced or removed.
// The parent directory is watched so editors that save through a rename are still seen.
type datasetWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func()
	logger   *slog.Logger
	done     chan struct{}
}

func newDatasetWatcher(path string, onChange func(), logger *slog.Logger) (*datasetWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve dataset path")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dataset watcher")
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()

		return nil, errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}

	w := &datasetWatcher{
		path:     abs,
		watcher:  watcher,
		onChange: onChange,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go w.run()

	return w, nil
}

func (w *datasetWatcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("Country dataset changed", slog.String("path", w.path), slog.String("op", event.Op.String()))
			w.onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Country dataset watcher error", slog.Any("error", err))
		}
	}
}

// stop closes the watcher and waits for the event loop to exit.
func (w *datasetWatcher) stop() error {
	err := w.watcher.Close()
	<-w.done

	return errors.Wrap(err, "failed to close dataset watcher")
}
