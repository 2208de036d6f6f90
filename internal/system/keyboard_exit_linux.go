//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// StartExitOnKey watches the evdev devices under /dev/input/event* and
// calls onExit once when key goes down. Without input devices it logs and
// returns.
func StartExitOnKey(ctx context.Context, logger logger, key Key, onExit func()) {
	if onExit == nil {
		return
	}
	if logger == nil {
		logger = noopLogger{}
	}

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		logger.Infof("input", "no evdev devices found for %s exit", key)
		return
	}

	var once sync.Once
	pressed := func() {
		once.Do(func() {
			logger.Infof("input", "%s pressed: exiting", key)
			onExit()
		})
	}
	tvSize := binary.Size(unix.Timeval{})
	for _, path := range paths {
		go watchDevice(ctx, path, tvSize, key, pressed)
	}
}

// watchDevice polls one device until ctx ends, the device goes away or key
// is seen.
func watchDevice(ctx context.Context, path string, tvSize int, key Key, pressed func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	buf := make([]byte, 4096)
	for ctx.Err() == nil {
		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if keyPressed(buf[:n], tvSize, key) {
			pressed()
			return
		}
	}
}
