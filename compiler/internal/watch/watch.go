// Package watch reports changes to a single source file.
package watch

import (
	"path/filepath"
	"sync"
	"time"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls OnChange once per burst of writes to Path.
type Watcher struct {
	Path     string // absolute
	Debounce time.Duration
	OnChange func(path string)

	mu    sync.Mutex
	timer *time.Timer

	sys // platform state
}

// New watches path. Run starts delivering events.
func New(path string, onChange func(string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{Path: abs, Debounce: DefaultDebounce, OnChange: onChange}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Watcher) changed() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.Debounce, func() {
		w.OnChange(w.Path)
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
