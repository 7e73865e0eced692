//go:build !linux

package watch

import (
	"context"
	"os"
	"time"
)

const pollInterval = 250 * time.Millisecond

// sys polls the file's modification time.
type sys struct {
	mod  time.Time
	size int64
}

func (w *Watcher) open() error {
	fi, err := os.Stat(w.Path)
	if err != nil {
		return err
	}
	w.mod, w.size = fi.ModTime(), fi.Size()
	return nil
}

func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
		fi, err := os.Stat(w.Path)
		if err != nil {
			continue // mid-save
		}
		if !fi.ModTime().Equal(w.mod) || fi.Size() != w.size {
			w.mod, w.size = fi.ModTime(), fi.Size()
			w.changed()
		}
	}
}

func (w *Watcher) Close() error {
	w.stopTimer()
	return nil
}
