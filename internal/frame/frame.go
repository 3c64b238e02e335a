// internal/frame/frame.go
package frame

import "github.com/tamzrod/padlink/internal/sampler"

// Wire layout constants. Protocol-locked.
const (
	Header byte = 0x9C

	// MaxLen is header + 6 axis bytes + 2 button bytes + checksum.
	MaxLen = 1 + sampler.MaxAxes + sampler.MaxButtonBytes + 1
)

// Frame is one encoded transmission unit.
// Bytes aliases the encoder's buffer and is valid until the next Encode.
type Frame struct {
	Bytes       []byte
	Axes        int
	ButtonBytes int
	HasChecksum bool
}

// Payload returns the axis and button bytes.
func (f Frame) Payload() []byte {
	return f.Bytes[1 : 1+f.Axes+f.ButtonBytes]
}

// Checksum returns the trailing checksum byte when present.
func (f Frame) Checksum() (byte, bool) {
	if !f.HasChecksum {
		return 0, false
	}
	return f.Bytes[len(f.Bytes)-1], true
}

// Clone copies the frame out of the encoder's buffer.
func (f Frame) Clone() Frame {
	f.Bytes = append([]byte(nil), f.Bytes...)
	return f
}

// Checksum is the XOR fold of b.
// Any single flipped bit in b flips the same bit of the result.
func Checksum(b []byte) byte {
	var c byte
	for _, v := range b {
		c ^= v
	}
	return c
}
