// internal/mirror/writer.go
package mirror

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tamzrod/padlink/internal/status"
)

// registerClient is the exact contract the status writer uses.
type registerClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// StatusWriter delivers status snapshots into one register block.
// First write and any write after a failure re-assert the full block;
// otherwise only the changed span of live slots is written.
type StatusWriter struct {
	cli      registerClient
	unitID   uint8
	baseSlot uint16

	needFull bool
	last     []uint16 // live slots as last delivered
	name     string
}

func NewStatusWriter(cli registerClient, unitID uint8, baseSlot uint16) *StatusWriter {
	return &StatusWriter{
		cli:      cli,
		unitID:   unitID,
		baseSlot: baseSlot,
		needFull: true,
	}
}

func (sw *StatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.cli == nil {
		return errors.New("status writer: disabled")
	}

	base := sw.baseAddr()

	// identity changed: name registers are only written with the full block
	if s.DeviceName != sw.name {
		sw.needFull = true
	}

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		regs := status.Encode(s)
		if err := sw.cli.WriteRegisters(sw.unitID, base, regs); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}
		sw.needFull = false
		sw.last = regs[:status.LiveSlots]
		sw.name = s.DeviceName
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: one write covering the first..last changed slot
	// ------------------------------------------------------------
	live := status.Live(s)
	first, last := -1, -1
	for i := range live {
		if live[i] != sw.last[i] {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil
	}

	if err := sw.cli.WriteRegisters(sw.unitID, base+uint16(first), live[first:last+1]); err != nil {
		// any failure forces a full block on the next write
		sw.needFull = true
		return fmt.Errorf("status writer: slots %d-%d write failed: %w", first, last, err)
	}
	sw.last = slices.Clone(live)
	return nil
}

func (sw *StatusWriter) baseAddr() uint16 {
	// Each bridge owns a fixed SlotsPerDevice block.
	return sw.baseSlot * status.SlotsPerDevice
}
