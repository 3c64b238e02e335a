// internal/status/encode_test.go
package status

import "testing"

func TestEncode_Layout(t *testing.T) {
	regs := Encode(Snapshot{
		Connection: ConnectionConnected,
		Device:     DeviceBound,
		Axes:       [SlotAxes]int16{63, -1, 0, 0, 254, 0},
		Buttons:    0x0008,
		Checksum:   0x37,
		FramesSent: 7,
		DeviceName: "Pad",
	})

	if len(regs) != SlotsPerDevice {
		t.Fatalf("block length %d", len(regs))
	}
	if regs[SlotConnection] != 1 || regs[SlotDevice] != 1 {
		t.Fatalf("state slots: %v", regs[:2])
	}
	if regs[SlotAxesStart] != 63 || regs[SlotAxesStart+1] != 0xFFFF || regs[SlotAxesStart+4] != 254 {
		t.Fatalf("axis slots: %v", regs[SlotAxesStart:SlotAxesStart+SlotAxes])
	}
	if regs[SlotButtons] != 8 || regs[SlotChecksum] != 0x37 || regs[SlotFramesSent] != 7 {
		t.Fatalf("tail live slots: %v", regs[SlotButtons:LiveSlots])
	}
	if regs[SlotDeviceNameStart] != uint16('P')<<8|uint16('a') || regs[SlotDeviceNameStart+1] != uint16('d')<<8 {
		t.Fatalf("device name slots: %v", regs[SlotDeviceNameStart:SlotDeviceNameEnd+1])
	}
	if regs[SlotsPerDevice-1] != 0 {
		t.Fatalf("reserved slot must stay zero")
	}
}

func TestEncodeDeviceName_TruncatesAndSanitizes(t *testing.T) {
	regs := EncodeDeviceName("\x01bcdefghijklmnopqrstuvwxyz")

	if regs[0] != uint16('?')<<8|uint16('b') {
		t.Fatalf("first register: %#04x", regs[0])
	}
	if regs[SlotDeviceNameSlots-1] != uint16('o')<<8|uint16('p') {
		t.Fatalf("last register: %#04x", regs[SlotDeviceNameSlots-1])
	}
}
