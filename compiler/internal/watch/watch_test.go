package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherSeesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.storm")
	if err := os.WriteFile(path, []byte("say 1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	changes := make(chan string, 4)
	w, err := New(path, func(p string) { changes <- p })
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the poller a baseline tick and make the mtime move
	time.Sleep(300 * time.Millisecond)
	if err := os.WriteFile(path, []byte("say 2 say 3"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case got := <-changes:
		if got != w.Path {
			t.Fatalf("want %s, got %s", w.Path, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestDebounceCollapsesBursts(t *testing.T) {
	var calls atomic.Int32
	w := &Watcher{Path: "/x", Debounce: 50 * time.Millisecond, OnChange: func(string) { calls.Add(1) }}
	for i := 0; i < 5; i++ {
		w.changed()
	}
	time.Sleep(300 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Fatalf("want 1 callback, got %d", n)
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "no", "such", "file.storm"), func(string) {}); err == nil {
		t.Fatalf("expected error watching a missing directory")
	}
}
