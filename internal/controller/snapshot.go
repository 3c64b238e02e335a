// internal/controller/snapshot.go
package controller

import (
	"time"

	"github.com/tamzrod/padlink/internal/frame"
	"github.com/tamzrod/padlink/internal/uart"
)

// DeviceStatus is whether an input device is bound.
type DeviceStatus uint8

const (
	Unbound DeviceStatus = iota
	Bound
)

func (d DeviceStatus) String() string {
	if d == Bound {
		return "Bound"
	}
	return "Unbound"
}

// Snapshot is the observable state after the most recent completed operation.
// It is immutable once published; Frame is a private copy.
type Snapshot struct {
	At time.Time

	Connection     uart.State
	Port           string
	Baud           int
	RememberedPort string
	RememberedBaud int
	Reconnect      bool

	Device     DeviceStatus
	DeviceName string

	// Frame is the last frame encoded from a bound device; nil when there is none.
	Frame  []byte
	Fields frame.Fields

	Ticks       uint64
	FramesSent  uint64
	WriteErrors uint64
}

// HasFrame reports whether Frame and Fields are populated.
func (s Snapshot) HasFrame() bool {
	return s.Frame != nil
}
