// internal/controller/builder.go
package controller

import (
	"time"

	"github.com/rs/zerolog"

	cfg "github.com/tamzrod/padlink/internal/config"
	"github.com/tamzrod/padlink/internal/device"
	"github.com/tamzrod/padlink/internal/uart"
)

// Build constructs a Controller on the real joystick and serial stack.
// Config must already be validated and normalized.
// No connection is attempted here.
func Build(c *cfg.Config, log zerolog.Logger) *Controller {
	w, err := device.NewWatcher(device.InputDir)
	if err != nil {
		log.Warn().Err(err).Msg("hot-plug watcher unavailable, rescanning instead")
		w = device.NopWatcher()
	}

	mon := device.NewMonitor(
		device.Config{
			Index:          c.Device.Index,
			Hats:           *c.Device.Hats,
			HatAxisBase:    *c.Device.HatAxisBase,
			RescanInterval: time.Duration(c.Device.RescanIntervalMs) * time.Millisecond,
		},
		device.JoystickSource{},
		w,
		log.With().Str("component", "device").Logger(),
	)

	sess := uart.NewSession(
		uart.OpenSerial,
		uart.ListSerialPorts,
		log.With().Str("component", "uart").Logger(),
	)

	return New(
		Config{
			Checksum:  *c.Frame.Checksum,
			Reconnect: *c.Serial.AutoReconnect,
		},
		mon,
		sess,
		log.With().Str("component", "controller").Logger(),
	)
}
