//go:build linux

package watch

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const dirEvents = unix.IN_MODIFY | unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO | unix.IN_CREATE

// sys watches the parent directory so editors that save by rename are seen.
type sys struct {
	fd int
	wd int
}

func (w *Watcher) open() error {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return fmt.Errorf("inotify_init failed: %v", err)
	}
	wd, err := unix.InotifyAddWatch(fd, filepath.Dir(w.Path), dirEvents)
	if err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("failed to watch %s: %v", w.Path, err)
	}
	w.fd, w.wd = fd, wd
	return nil
}

// Run blocks until ctx is done or reading events fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()
	base := filepath.Base(w.Path)
	buf := make([]byte, (unix.SizeofInotifyEvent+unix.NAME_MAX+1)*16)

	for {
		if ctx.Err() != nil {
			return nil
		}
		n, err := unix.Read(w.fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR {
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(100 * time.Millisecond):
				}
				continue
			}
			return fmt.Errorf("reading inotify events: %v", err)
		}

		offset := 0
		for offset+unix.SizeofInotifyEvent <= n {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			nameStart := offset + unix.SizeofInotifyEvent
			nameEnd := nameStart + int(event.Len)
			offset = nameEnd
			if int(event.Wd) != w.wd || event.Mask&dirEvents == 0 || nameEnd > n {
				continue
			}
			name := string(bytes.TrimRight(buf[nameStart:nameEnd], "\x00"))
			if name == base {
				w.changed()
			}
		}
	}
}

func (w *Watcher) Close() error {
	w.stopTimer()
	return unix.Close(w.fd)
}
