// internal/controller/controller.go
package controller

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/padlink/internal/device"
	"github.com/tamzrod/padlink/internal/frame"
	"github.com/tamzrod/padlink/internal/sampler"
	"github.com/tamzrod/padlink/internal/uart"
)

// Config is the minimal runtime config the controller needs.
type Config struct {
	Checksum  bool
	Reconnect bool
}

// Controller ties device, sampler, encoder and serial session into one Tick.
//
// Tick and the collaborator operations (Connect, Disconnect, SetReconnectMode)
// must be called from one goroutine and never overlap.
// Snapshot and the status accessors may be called from anywhere.
type Controller struct {
	monitor *device.Monitor
	sampler sampler.Sampler
	encoder *frame.Encoder
	session *uart.Session
	log     zerolog.Logger
	now     func() time.Time

	reconnect bool

	// last frame from a bound device, copied out of the encoder
	last       frame.Frame
	lastState  sampler.State
	hasLast    bool
	ticks      uint64
	sent       uint64
	writeErrs  uint64
	deviceName string

	snap atomic.Pointer[Snapshot]
}

func New(cfg Config, mon *device.Monitor, sess *uart.Session, log zerolog.Logger) *Controller {
	c := &Controller{
		monitor:   mon,
		encoder:   frame.NewEncoder(cfg.Checksum),
		session:   sess,
		log:       log,
		now:       time.Now,
		reconnect: cfg.Reconnect,
	}
	c.publish()
	return c
}

// Tick performs exactly one cycle:
// device events -> sample -> encode -> send, or auto-reconnect when disconnected.
// A device attach or detach ends sampling for this tick; nothing is sent.
func (c *Controller) Tick() {
	c.ticks++

	fresh := c.sampleAndEncode()

	switch {
	case !c.session.Connected():
		if c.reconnect {
			c.session.AutoReconnect()
		}
	case fresh:
		if err := c.session.Send(c.last.Bytes); err != nil {
			c.writeErrs++
		} else {
			c.sent++
		}
	}

	c.publish()
}

func (c *Controller) sampleAndEncode() bool {
	changed := false
	for _, ev := range c.monitor.PollEvents() {
		switch ev.Kind {
		case device.Attached:
			c.deviceName = ev.Caps.Name
			c.warnDroppedHats(ev.Caps)
			changed = true
		case device.Detached:
			c.clearFrame()
			changed = true
		}
	}
	if changed {
		return false
	}

	st, ok, err := c.sampler.Sample(c.monitor.Binding())
	if err != nil {
		c.monitor.Invalidate(err)
		c.clearFrame()
		return false
	}
	if !ok {
		return false
	}

	c.last = c.encoder.Encode(st).Clone()
	c.lastState = st
	c.hasLast = true
	return true
}

// warnDroppedHats reports hats that do not fit in the button field.
func (c *Controller) warnDroppedHats(caps device.Caps) {
	_, buttons, hats := sampler.Layout(caps)
	if hats >= caps.Hats {
		return
	}
	c.log.Warn().
		Str("device", caps.Name).
		Int("buttons", caps.Buttons).
		Int("hats", caps.Hats).
		Int("hats_sent", hats).
		Int("button_bits", buttons).
		Msg("hats dropped: not enough free button bits")
}

func (c *Controller) clearFrame() {
	c.sampler.Invalidate()
	c.last = frame.Frame{}
	c.hasLast = false
	c.deviceName = ""
}

// ---- collaborator operations ----

// ListPorts returns available serial ports as (description, path).
func (c *Controller) ListPorts() ([]uart.Port, error) {
	return c.session.ListPorts()
}

// Connect opens a port. The error is for display only; state already reflects it.
func (c *Controller) Connect(path string, baud int) error {
	err := c.session.Connect(path, baud)
	if err != nil {
		c.log.Warn().Err(err).Str("port", path).Int("baud", baud).Msg("serial connect failed")
	}
	c.publish()
	return err
}

// Disconnect closes the port and disarms auto-reconnect until it is re-enabled.
func (c *Controller) Disconnect() error {
	err := c.session.Disconnect()
	c.reconnect = false
	c.publish()
	return err
}

func (c *Controller) SetReconnectMode(enabled bool) {
	if c.reconnect != enabled {
		c.log.Info().Bool("enabled", enabled).Msg("auto-reconnect mode changed")
	}
	c.reconnect = enabled
	c.publish()
}

// Close releases the port and the input device.
func (c *Controller) Close() error {
	serr := c.session.Disconnect()
	merr := c.monitor.Close()
	c.clearFrame()
	c.publish()
	if serr != nil {
		return serr
	}
	return merr
}

// ---- observers ----

// Snapshot returns the state published by the last completed operation.
func (c *Controller) Snapshot() Snapshot {
	return *c.snap.Load()
}

func (c *Controller) ConnectionStatus() uart.State {
	return c.snap.Load().Connection
}

func (c *Controller) DeviceStatus() DeviceStatus {
	return c.snap.Load().Device
}

// LastFrameFields returns the decoded fields of the last frame, if any.
func (c *Controller) LastFrameFields() (frame.Fields, bool) {
	s := c.snap.Load()
	return s.Fields, s.HasFrame()
}

func (c *Controller) publish() {
	s := &Snapshot{
		At:          c.now(),
		Connection:  c.session.State(),
		Reconnect:   c.reconnect,
		Device:      Unbound,
		DeviceName:  c.deviceName,
		Ticks:       c.ticks,
		FramesSent:  c.sent,
		WriteErrors: c.writeErrs,
	}
	s.Port, s.Baud = c.session.Port()
	s.RememberedPort, s.RememberedBaud, _ = c.session.Remembered()

	if c.monitor.Bound() {
		s.Device = Bound
	}

	if c.hasLast {
		s.Frame = append([]byte(nil), c.last.Bytes...)
		fields, err := frame.Decode(s.Frame, c.lastState.AxisCount, c.lastState.ButtonCount, c.last.HasChecksum)
		if err != nil {
			// encoder and decoder disagree; never expected
			c.log.Error().Err(err).Hex("frame", s.Frame).Msg("frame decode failed")
		}
		s.Fields = fields
	}

	c.snap.Store(s)
}
