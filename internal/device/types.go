// internal/device/types.go
package device

import "errors"

// MaxHats is the number of directional hats the bridge encodes.
const MaxHats = 2

// ErrDevice marks a failed capability query or sample read.
// Callers treat it as a detach; it is never fatal.
var ErrDevice = errors.New("input device error")

// Caps is the capability set of the bound device.
type Caps struct {
	Name    string
	Axes    int // as reported, including hat axes
	Buttons int // as reported

	// Hats are read from axis pairs starting at HatAxisBase.
	Hats        int
	HatAxisBase int
}

// Reading is one snapshot of device inputs.
// Axes are normalized to [-1.0, 1.0].
type Reading struct {
	Axes    []float64
	Buttons []bool
}

// Pad is an opened input device.
type Pad interface {
	Caps() (Caps, error)
	Read() (Reading, error)
	Close() error
}

// Source opens input devices by index.
type Source interface {
	Open(index int) (Pad, error)
}

// EventKind is the closed set of device lifecycle events.
type EventKind uint8

const (
	Attached EventKind = iota + 1
	Detached
)

func (k EventKind) String() string {
	switch k {
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

// Event is one device lifecycle change. Caps is set for Attached only.
type Event struct {
	Kind EventKind
	Caps Caps
}

// Change is the set of joystick nodes created or removed since the last Drain.
type Change struct {
	Added   []string
	Removed []string
}

// Watcher reports hot-plug changes without blocking.
type Watcher interface {
	Drain() (Change, error)
	Close() error
}

type nopWatcher struct{}

func (nopWatcher) Drain() (Change, error) { return Change{}, nil }
func (nopWatcher) Close() error           { return nil }

// NopWatcher returns a watcher that never reports changes.
// The monitor then relies on periodic rescans alone.
func NopWatcher() Watcher { return nopWatcher{} }
