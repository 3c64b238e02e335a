// internal/status/constants.go
package status

// Controller Status Block layout constants.
// These values define the mirror protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of holding registers per bridge.
const SlotsPerDevice = 20

// ---- LIVE SLOTS ----

// SlotConnection holds the serial session state.
const SlotConnection = 0

// SlotDevice holds the input device binding state.
const SlotDevice = 1

// SlotAxesStart is the first of six axis slots (int16 two's complement).
const SlotAxesStart = 2

// SlotAxes is the number of axis slots.
const SlotAxes = 6

// SlotButtons holds the button bitfield, bit i = button i.
const SlotButtons = 8

// SlotChecksum holds the last frame checksum byte.
const SlotChecksum = 9

// SlotFramesSent holds the frames-sent counter, wrapping at 65536.
const SlotFramesSent = 10

// LiveSlots is the number of slots rewritten while running.
const LiveSlots = SlotFramesSent + 1

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// Slot 19 is reserved.

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- STATE CODES ----

const (
	ConnectionDisconnected uint16 = 0
	ConnectionConnected    uint16 = 1
)

const (
	DeviceUnbound uint16 = 0
	DeviceBound   uint16 = 1
)
