// internal/device/watch_linux.go
//go:build linux

package device

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// InputDir is where joydev nodes (js0, js1, ...) appear.
const InputDir = "/dev/input"

type inotifyWatcher struct {
	fd  int
	wd  int
	buf []byte
}

// NewWatcher watches dir for joystick nodes appearing and disappearing.
// The descriptor is non-blocking so Drain never waits.
func NewWatcher(dir string) (Watcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify init failed: %w", err)
	}

	// IN_ATTRIB: udev fixes permissions after the node is created
	wd, err := unix.InotifyAddWatch(fd, dir, unix.IN_CREATE|unix.IN_DELETE|unix.IN_ATTRIB)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("inotify add watch failed: %w", err)
	}

	return &inotifyWatcher{fd: fd, wd: wd, buf: make([]byte, 4096)}, nil
}

func (w *inotifyWatcher) Drain() (Change, error) {
	var ch Change
	for {
		n, err := unix.Read(w.fd, w.buf)
		if errors.Is(err, unix.EAGAIN) {
			return ch, nil
		}
		if err != nil {
			return ch, fmt.Errorf("inotify read failed: %w", err)
		}
		if n < unix.SizeofInotifyEvent {
			return ch, nil
		}

		var offset uint32
		for offset+unix.SizeofInotifyEvent <= uint32(n) {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&w.buf[offset]))
			start := offset + unix.SizeofInotifyEvent
			name := trimNul(w.buf[start : start+event.Len])
			offset = start + event.Len

			if !strings.HasPrefix(name, "js") {
				continue
			}
			switch {
			case event.Mask&unix.IN_DELETE != 0:
				ch.Removed = append(ch.Removed, name)
			case event.Mask&(unix.IN_CREATE|unix.IN_ATTRIB) != 0:
				ch.Added = append(ch.Added, name)
			}
		}
	}
}

func (w *inotifyWatcher) Close() error {
	_, _ = unix.InotifyRmWatch(w.fd, uint32(w.wd))
	return unix.Close(w.fd)
}

func trimNul(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
