// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func intPtr(v int) *int { return &v }

// ---- tests ----

func TestValidate_ZeroConfigAccepted(t *testing.T) {
	if err := Validate(&Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"odd baud", Config{Serial: SerialConfig{Baud: 12345}}},
		{"negative index", Config{Device: DeviceConfig{Index: -1}}},
		{"negative hat base", Config{Device: DeviceConfig{HatAxisBase: intPtr(-2)}}},
		{"negative tick", Config{Tick: TickConfig{IntervalMs: -5}}},
		{"bad endpoint", Config{Mirror: MirrorConfig{Endpoint: "no-port"}}},
		{"base slot overflow", Config{Mirror: MirrorConfig{Endpoint: "127.0.0.1:502", BaseSlot: 3300}}},
		{"non-ascii name", Config{Mirror: MirrorConfig{DeviceName: "pad\xe9"}}},
		{"bad log level", Config{Log: LogConfig{Level: "loud"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			if err := Validate(&cfg); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := Default()

	if cfg.Serial.Baud != DefaultBaud {
		t.Fatalf("baud: got=%d want=%d", cfg.Serial.Baud, DefaultBaud)
	}
	if !*cfg.Serial.AutoReconnect {
		t.Fatalf("auto_reconnect should default to true")
	}
	if *cfg.Device.HatAxisBase != DefaultHatAxisBase {
		t.Fatalf("hat_axis_base: got=%d want=%d", *cfg.Device.HatAxisBase, DefaultHatAxisBase)
	}
	if !*cfg.Device.Hats || !*cfg.Frame.Checksum {
		t.Fatalf("hats and checksum should default to true")
	}
	if cfg.Tick.IntervalMs != DefaultTickIntervalMs {
		t.Fatalf("tick: got=%d want=%d", cfg.Tick.IntervalMs, DefaultTickIntervalMs)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Fatalf("log level: got=%q", cfg.Log.Level)
	}
}

func TestNormalize_KeepsExplicitFalse(t *testing.T) {
	off := false
	cfg := &Config{
		Serial: SerialConfig{AutoReconnect: &off},
		Frame:  FrameConfig{Checksum: &off},
		Device: DeviceConfig{Hats: &off, HatAxisBase: intPtr(0)},
	}
	Normalize(cfg)

	if *cfg.Serial.AutoReconnect || *cfg.Frame.Checksum || *cfg.Device.Hats {
		t.Fatalf("explicit false overwritten by defaults")
	}
	if *cfg.Device.HatAxisBase != 0 {
		t.Fatalf("explicit hat_axis_base 0 overwritten: %d", *cfg.Device.HatAxisBase)
	}
}

func TestNormalize_TruncatesDeviceName(t *testing.T) {
	cfg := &Config{Mirror: MirrorConfig{DeviceName: "a-very-long-gamepad-name"}}
	Normalize(cfg)

	if len(cfg.Mirror.DeviceName) != 16 {
		t.Fatalf("device_name not truncated: %q", cfg.Mirror.DeviceName)
	}
}

func TestLoad_DecodesAndRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	body := "serial:\n  port: /dev/ttyUSB0\n  baud: 9600\nframe:\n  checksum: false\n"
	if err := os.WriteFile(good, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(good)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Serial.Port != "/dev/ttyUSB0" || cfg.Serial.Baud != 9600 {
		t.Fatalf("unexpected serial config: %+v", cfg.Serial)
	}
	if cfg.Frame.Checksum == nil || *cfg.Frame.Checksum {
		t.Fatalf("frame.checksum should decode as explicit false")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("serial:\n  speed: 9600\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected unknown key error, got nil")
	}
}
