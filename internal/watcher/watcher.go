// Package watcher rebuilds on page changes.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"wikiparse/internal/logging"
	"wikiparse/internal/types"
)

var logger = logging.New("watcher")

// DefaultDebounce is how long the watcher waits for events to settle
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports changed pages under a set of directories. Events are
// debounced, and the callback receives every page path that changed since
// the previous call.
type Watcher struct {
	watcher  *fsnotify.Watcher
	callback func(changed []string)
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	closed  bool
	done    chan struct{}
}

// New creates a new file watcher over dirs
func New(callback func(changed []string), debounce time.Duration, dirs ...string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create file watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		callback: callback,
		debounce: debounce,
		pending:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := w.addTree(dir); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("cannot add watch directory: %w", err)
		}
	}

	go w.watchLoop()
	return w, nil
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// Close stops the watcher. Pending changes are dropped and the callback is
// not called once Close returns.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				logger.Warn("cannot watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	if !types.IsPageFile(event.Name) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	logger.Debug("page changed", "path", event.Name, "op", event.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending[event.Name] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)
	w.callback(changed)
}
