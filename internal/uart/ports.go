// internal/uart/ports.go
package uart

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// Port is one available serial port.
type Port struct {
	Description string
	Path        string
}

// Opener opens path at baud. ONE attempt per call.
type Opener func(path string, baud int) (io.WriteCloser, error)

// Lister returns the currently available ports.
type Lister func() ([]Port, error)

// OpenSerial opens a real serial port, 8N1.
func OpenSerial(path string, baud int) (io.WriteCloser, error) {
	p, err := serial.Open(path, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListSerialPorts enumerates system serial ports ordered by device path.
func ListSerialPorts() ([]Port, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}

	ports := make([]Port, 0, len(details))
	for _, d := range details {
		ports = append(ports, Port{
			Description: describe(d),
			Path:        d.Name,
		})
	}

	slices.SortFunc(ports, func(a, b Port) int {
		return strings.Compare(a.Path, b.Path)
	})
	return ports, nil
}

func describe(d *enumerator.PortDetails) string {
	switch {
	case d.Product != "":
		return d.Product
	case d.IsUSB:
		return fmt.Sprintf("USB VID:PID=%s:%s", d.VID, d.PID)
	default:
		return "n/a"
	}
}
