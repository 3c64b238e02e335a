// internal/config/validate.go
package config

import (
	"fmt"
	"net"

	"github.com/rs/zerolog"
)

// StandardBauds is the set of baud rates offered to the user.
var StandardBauds = []int{
	1200, 2400, 4800, 9600, 19200, 38400, 57600,
	115200, 230400, 460800, 921600,
}

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values are accepted where Normalize supplies a default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// SERIAL
	// ------------------------------------------------------------

	if cfg.Serial.Baud != 0 && !IsStandardBaud(cfg.Serial.Baud) {
		return fmt.Errorf("serial.baud %d is not a standard rate", cfg.Serial.Baud)
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	if cfg.Device.Index < 0 {
		return fmt.Errorf("device.index must be >= 0, got %d", cfg.Device.Index)
	}
	if cfg.Device.HatAxisBase != nil && *cfg.Device.HatAxisBase < 0 {
		return fmt.Errorf("device.hat_axis_base must be >= 0, got %d", *cfg.Device.HatAxisBase)
	}
	if cfg.Device.RescanIntervalMs < 0 {
		return fmt.Errorf("device.rescan_interval_ms must be >= 0, got %d", cfg.Device.RescanIntervalMs)
	}

	// ------------------------------------------------------------
	// TICK
	// ------------------------------------------------------------

	if cfg.Tick.IntervalMs < 0 {
		return fmt.Errorf("tick.interval_ms must be > 0, got %d", cfg.Tick.IntervalMs)
	}

	// ------------------------------------------------------------
	// MIRROR (OPT-IN)
	// ------------------------------------------------------------

	m := cfg.Mirror
	for i := 0; i < len(m.DeviceName); i++ {
		if m.DeviceName[i] > 0x7F {
			return fmt.Errorf("mirror.device_name must contain ASCII characters only")
		}
	}
	if m.Endpoint != "" {
		if _, _, err := net.SplitHostPort(m.Endpoint); err != nil {
			return fmt.Errorf("mirror.endpoint %q: %w", m.Endpoint, err)
		}
		// base_slot * 20 registers must stay inside the 16-bit address space
		if uint32(m.BaseSlot)*20+20 > 0x10000 {
			return fmt.Errorf("mirror.base_slot %d out of range", m.BaseSlot)
		}
	}
	if m.IntervalMs < 0 || m.TimeoutMs < 0 {
		return fmt.Errorf("mirror.interval_ms and mirror.timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	return nil
}

// IsStandardBaud reports whether baud is one of StandardBauds.
func IsStandardBaud(baud int) bool {
	for _, b := range StandardBauds {
		if b == baud {
			return true
		}
	}
	return false
}
