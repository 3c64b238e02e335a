// internal/frame/decode.go
package frame

import (
	"errors"
	"fmt"

	"github.com/tamzrod/padlink/internal/sampler"
)

var (
	ErrHeader   = errors.New("frame: bad header")
	ErrLength   = errors.New("frame: bad length")
	ErrChecksum = errors.New("frame: checksum mismatch")
)

// Fields is a decoded frame, as a receiver configured with the device's
// axis and button counts would see it.
type Fields struct {
	Axes        []int  // sticks signed, triggers unsigned
	Buttons     uint16 // bit i = button i, hat bits after discrete buttons
	Checksum    byte
	HasChecksum bool
}

// Decode parses b using out-of-band axis and button-bit counts.
func Decode(b []byte, axes, buttonBits int, checksum bool) (Fields, error) {
	if axes < 0 || axes > sampler.MaxAxes || buttonBits < 0 || buttonBits > sampler.MaxButtons {
		return Fields{}, fmt.Errorf("%w: axes=%d buttons=%d out of range", ErrLength, axes, buttonBits)
	}

	btnBytes := (buttonBits + 7) / 8
	want := 1 + axes + btnBytes
	if checksum {
		want++
	}
	if len(b) != want {
		return Fields{}, fmt.Errorf("%w: got=%d want=%d", ErrLength, len(b), want)
	}
	if b[0] != Header {
		return Fields{}, fmt.Errorf("%w: 0x%02x", ErrHeader, b[0])
	}

	payload := b[1 : 1+axes+btnBytes]
	f := Fields{Axes: make([]int, axes)}

	for i := 0; i < axes; i++ {
		if sampler.IsTrigger(i) {
			f.Axes[i] = int(payload[i])
		} else {
			f.Axes[i] = int(int8(payload[i]))
		}
	}
	for i := 0; i < btnBytes; i++ {
		f.Buttons |= uint16(payload[axes+i]) << (8 * i)
	}

	if checksum {
		f.HasChecksum = true
		f.Checksum = b[len(b)-1]
		if got := Checksum(payload); got != f.Checksum {
			return Fields{}, fmt.Errorf("%w: got=0x%02x want=0x%02x", ErrChecksum, f.Checksum, got)
		}
	}

	return f, nil
}
