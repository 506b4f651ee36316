package watcher

import (
	"sync"
	"time"
)

// Manager handles starting, stopping, and switching file watchers
type Manager struct {
	mu       sync.Mutex
	watcher  *Watcher
	callback func(changed []string)
	debounce time.Duration
}

// NewManager creates a new watcher manager
func NewManager(callback func(changed []string)) *Manager {
	return &Manager{
		callback: callback,
		debounce: DefaultDebounce,
	}
}

// Start starts watching the given directories, replacing any running
// watcher. Empty entries are ignored; with none left nothing is watched.
func (m *Manager) Start(dirs ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()

	var watchDirs []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		if dir != "" && !seen[dir] {
			seen[dir] = true
			watchDirs = append(watchDirs, dir)
		}
	}
	if len(watchDirs) == 0 {
		return nil
	}

	w, err := New(m.callback, m.debounce, watchDirs...)
	if err != nil {
		return err
	}

	m.watcher = w
	logger.Info("file watcher started", "dirs", watchDirs)
	return nil
}

// Stop stops the current watcher
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Manager) stopLocked() {
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
		logger.Info("file watcher stopped")
	}
}

// IsRunning returns true if a watcher is currently active
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.watcher != nil
}
