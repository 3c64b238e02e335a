// internal/status/encode.go
package status

// Live converts the live part of a Snapshot into slots 0..LiveSlots-1.
// No IO. No side effects.
func Live(s Snapshot) []uint16 {
	regs := make([]uint16, LiveSlots)

	regs[SlotConnection] = s.Connection
	regs[SlotDevice] = s.Device
	for i, v := range s.Axes {
		regs[SlotAxesStart+i] = uint16(v)
	}
	regs[SlotButtons] = s.Buttons
	regs[SlotChecksum] = s.Checksum
	regs[SlotFramesSent] = s.FramesSent

	return regs
}

// Encode converts a Snapshot into a full status block.
// Layout is protocol-locked.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerDevice)
	copy(regs, Live(s))
	copy(regs[SlotDeviceNameStart:SlotDeviceNameEnd+1], EncodeDeviceName(s.DeviceName))
	return regs
}

// EncodeDeviceName packs up to 16 ASCII characters into 8 registers.
// Each register stores two ASCII bytes in big-endian order.
func EncodeDeviceName(name string) []uint16 {
	out := make([]uint16, SlotDeviceNameSlots)

	b := []byte(name)
	if len(b) > DeviceNameMaxChars {
		b = b[:DeviceNameMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < DeviceNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
