// internal/config/normalize.go
package config

const (
	DefaultBaud             = 115200
	DefaultHatAxisBase      = 6
	DefaultRescanIntervalMs = 1000
	DefaultTickIntervalMs   = 20
	DefaultMirrorIntervalMs = 1000
	DefaultMirrorTimeoutMs  = 500
	DefaultLogLevel         = "info"

	mirrorDeviceNameMax = 16
)

// Normalize applies defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = DefaultBaud
	}
	if cfg.Serial.AutoReconnect == nil {
		cfg.Serial.AutoReconnect = boolPtr(true)
	}

	if cfg.Device.HatAxisBase == nil {
		v := DefaultHatAxisBase
		cfg.Device.HatAxisBase = &v
	}
	if cfg.Device.Hats == nil {
		cfg.Device.Hats = boolPtr(true)
	}
	if cfg.Device.RescanIntervalMs == 0 {
		cfg.Device.RescanIntervalMs = DefaultRescanIntervalMs
	}

	if cfg.Frame.Checksum == nil {
		cfg.Frame.Checksum = boolPtr(true)
	}

	if cfg.Tick.IntervalMs == 0 {
		cfg.Tick.IntervalMs = DefaultTickIntervalMs
	}

	if cfg.Mirror.IntervalMs == 0 {
		cfg.Mirror.IntervalMs = DefaultMirrorIntervalMs
	}
	if cfg.Mirror.TimeoutMs == 0 {
		cfg.Mirror.TimeoutMs = DefaultMirrorTimeoutMs
	}
	// ASCII already validated; the register block holds 16 characters.
	if len(cfg.Mirror.DeviceName) > mirrorDeviceNameMax {
		cfg.Mirror.DeviceName = cfg.Mirror.DeviceName[:mirrorDeviceNameMax]
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

func boolPtr(v bool) *bool { return &v }
