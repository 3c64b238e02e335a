// internal/device/watch_other.go
//go:build !linux

package device

// InputDir is unused off Linux.
const InputDir = ""

// NewWatcher has no hot-plug source off Linux; the monitor rescans instead.
func NewWatcher(string) (Watcher, error) {
	return NopWatcher(), nil
}
