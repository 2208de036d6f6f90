//go:build !linux

package system

import "context"

// StartExitOnKey needs evdev; elsewhere it only logs.
func StartExitOnKey(ctx context.Context, logger logger, key Key, onExit func()) {
	if logger != nil {
		logger.Infof("input", "%s exit not supported on this platform", key)
	}
}
