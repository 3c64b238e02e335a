// internal/frame/encoder.go
package frame

import "github.com/tamzrod/padlink/internal/sampler"

// Encoder serializes States into a fixed-capacity buffer it owns.
// The buffer is rewritten in full on every Encode.
type Encoder struct {
	buf      [MaxLen]byte
	checksum bool
}

func NewEncoder(checksum bool) *Encoder {
	return &Encoder{checksum: checksum}
}

// ChecksumEnabled reports whether frames carry a trailing checksum.
func (e *Encoder) ChecksumEnabled() bool {
	return e.checksum
}

// Encode emits header, active axis bytes, the button bytes covering active
// button bits and, if enabled, the checksum. No padding for inactive slots.
func (e *Encoder) Encode(s sampler.State) Frame {
	e.buf = [MaxLen]byte{}
	e.buf[0] = Header
	n := 1

	axes := min(max(0, s.AxisCount), sampler.MaxAxes)
	n += copy(e.buf[n:], s.Axes[:axes])

	bits := min(max(0, s.ButtonCount), sampler.MaxButtons)
	btnBytes := (bits + 7) / 8
	n += copy(e.buf[n:], s.Buttons[:btnBytes])

	// bits past ButtonCount may be frozen from an earlier layout; never send them
	if rem := bits % 8; rem != 0 {
		e.buf[n-1] &= byte(1<<rem) - 1
	}

	if e.checksum {
		e.buf[n] = Checksum(e.buf[1:n])
		n++
	}

	return Frame{
		Bytes:       e.buf[:n],
		Axes:        axes,
		ButtonBytes: btnBytes,
		HasChecksum: e.checksum,
	}
}
