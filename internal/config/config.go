// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Serial SerialConfig `yaml:"serial"`
	Device DeviceConfig `yaml:"device"`
	Frame  FrameConfig  `yaml:"frame"`
	Tick   TickConfig   `yaml:"tick"`
	Mirror MirrorConfig `yaml:"mirror"`
	Log    LogConfig    `yaml:"log"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Port string `yaml:"port"` // optional; connected at startup when set
	Baud int    `yaml:"baud"`

	// Pointer so an explicit false survives Normalize.
	AutoReconnect *bool `yaml:"auto_reconnect"`
}

// ---- INPUT DEVICE ----

type DeviceConfig struct {
	Index            int   `yaml:"index"`
	HatAxisBase      *int  `yaml:"hat_axis_base"`
	Hats             *bool `yaml:"hats"`
	RescanIntervalMs int   `yaml:"rescan_interval_ms"`
}

// ---- FRAME ----

type FrameConfig struct {
	Checksum *bool `yaml:"checksum"`
}

// ---- TICK ----

type TickConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- STATUS MIRROR (optional) ----

type MirrorConfig struct {
	Endpoint   string `yaml:"endpoint"` // empty disables the mirror
	UnitID     uint8  `yaml:"unit_id"`
	BaseSlot   uint16 `yaml:"base_slot"`
	DeviceName string `yaml:"device_name"`
	IntervalMs int    `yaml:"interval_ms"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
	File   string `yaml:"file"`
}

// Load reads and decodes a YAML config file.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns a normalized config with every default applied.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}
