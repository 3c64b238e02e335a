// internal/uart/errors.go
package uart

import (
	"errors"
	"strings"

	"go.bug.st/serial"
)

// Error kinds. All of them are recovered by the caller; none is fatal.
var (
	ErrPortUnavailable = errors.New("serial port unavailable")
	ErrWrite           = errors.New("serial write failed")
	ErrNotConnected    = errors.New("serial port not connected")
)

// reason gives a short, log-friendly cause for a serial failure.
func reason(err error) string {
	if err == nil {
		return ""
	}

	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PortNotFound:
			return "not found"
		case serial.PortBusy:
			return "busy"
		case serial.PermissionDenied:
			return "permission denied"
		case serial.PortClosed, serial.InvalidSerialPort:
			return "unplugged"
		case serial.InvalidSpeed:
			return "invalid baud"
		default:
			return "port error"
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such device"),
		strings.Contains(msg, "input/output error"),
		strings.Contains(msg, "device not configured"),
		strings.Contains(msg, "broken pipe"):
		return "unplugged"
	default:
		return "io error"
	}
}
