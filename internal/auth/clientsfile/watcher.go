package clientsfile

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceInterval is the time to wait after the last change event
// before signalling. Editors tend to write a file in several steps.
const DefaultDebounceInterval = 500 * time.Millisecond

// Watcher signals on Changes() whenever the clients file is written,
// created or replaced. Signals coalesce; a slow reader sees one pending
// signal, never a backlog.
type Watcher struct {
	path     string
	name     string
	debounce time.Duration
	logger   *slog.Logger

	fs      *fsnotify.Watcher
	changes chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}

	debounceMu    sync.Mutex
	debounceTimer *time.Timer
	closeOnce     sync.Once
}

// Watch starts watching path. The parent directory is watched rather than
// the file so atomic replace-by-rename is picked up.
func Watch(path string, logger *slog.Logger) (*Watcher, error) {
	return watch(path, DefaultDebounceInterval, logger)
}

func watch(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("clientsfile: create watcher: %w", err)
	}

	path = filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("clientsfile: watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:     path,
		name:     filepath.Base(path),
		debounce: debounce,
		logger:   logger.With("component", "clientsfile", "path", path),
		fs:       fsw,
		changes:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	go w.processEvents(fsw.Events, fsw.Errors)
	return w, nil
}

// Changes delivers one value per debounced burst of file changes.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopCh)
		err = w.fs.Close()
		<-w.doneCh

		w.debounceMu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.debounceMu.Unlock()
	})
	return err
}

func (w *Watcher) processEvents(eventsCh <-chan fsnotify.Event, errorsCh <-chan error) {
	defer close(w.doneCh)
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-eventsCh:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-errorsCh:
			if !ok {
				return
			}
			w.logger.Error("fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.name {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.logger.Debug("clients file changed", "op", event.Op.String())
	w.signalDebounced()
}

func (w *Watcher) signalDebounced() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.stopCh:
			return
		default:
		}
		select {
		case w.changes <- struct{}{}:
		default: // already pending
		}
	})
}
