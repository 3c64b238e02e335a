// internal/status/snapshot.go
package status

// Snapshot represents exactly what the mirror is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Connection uint16
	Device     uint16
	Axes       [SlotAxes]int16
	Buttons    uint16
	Checksum   uint16
	FramesSent uint16
	DeviceName string
}
