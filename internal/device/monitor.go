// internal/device/monitor.go
package device

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// Config is the minimal runtime config the monitor needs.
type Config struct {
	Index       int
	Hats        bool
	HatAxisBase int

	// RescanInterval bounds how often an unbound monitor probes the source.
	// Hot-plug notifications trigger an immediate probe regardless.
	RescanInterval time.Duration
}

// Binding is the currently attached device.
type Binding struct {
	Caps Caps
	pad  Pad
}

// Read samples the bound device. Errors wrap ErrDevice.
func (b *Binding) Read() (Reading, error) {
	r, err := b.pad.Read()
	if err != nil {
		return Reading{}, fmt.Errorf("%w: read %s: %v", ErrDevice, b.Caps.Name, err)
	}
	return r, nil
}

// Monitor owns attach/detach detection for exactly one input device.
// Not safe for concurrent use; the controller tick is its only caller.
type Monitor struct {
	cfg   Config
	src   Source
	watch Watcher
	log   zerolog.Logger
	now   func() time.Time

	binding   *Binding
	node      string
	probeNow  bool
	lastProbe time.Time
}

// NewMonitor creates an unbound monitor. The first PollEvents probes immediately.
func NewMonitor(cfg Config, src Source, w Watcher, log zerolog.Logger) *Monitor {
	if w == nil {
		w = NopWatcher()
	}
	return &Monitor{
		cfg:      cfg,
		src:      src,
		watch:    w,
		log:      log,
		now:      time.Now,
		node:     fmt.Sprintf("js%d", cfg.Index),
		probeNow: true,
	}
}

// Binding returns the attached device, or nil when none is bound.
func (m *Monitor) Binding() *Binding {
	return m.binding
}

// Bound reports whether a device is attached.
func (m *Monitor) Bound() bool {
	return m.binding != nil
}

// PollEvents drains pending hot-plug notifications without blocking.
// At most one Attached event is produced per call, and nothing follows it.
func (m *Monitor) PollEvents() []Event {
	change, err := m.watch.Drain()
	if err != nil {
		m.log.Warn().Err(err).Msg("hot-plug watcher failed, falling back to rescans")
		_ = m.watch.Close()
		m.watch = NopWatcher()
	}

	var events []Event

	if m.binding != nil {
		if !slices.Contains(change.Removed, m.node) {
			return nil
		}
		m.release("removed")
		events = append(events, Event{Kind: Detached})
	}

	if slices.Contains(change.Added, m.node) {
		m.probeNow = true
	}
	if !m.probeNow && m.now().Sub(m.lastProbe) < m.cfg.RescanInterval {
		return events
	}

	if ev, ok := m.probe(); ok {
		events = append(events, ev)
	}
	return events
}

// Invalidate clears the binding after a read failure.
func (m *Monitor) Invalidate(cause error) {
	if m.binding == nil {
		return
	}
	m.log.Warn().Err(cause).Str("device", m.binding.Caps.Name).Msg("input device lost")
	m.release("read error")
}

// Close releases the device and the watcher.
func (m *Monitor) Close() error {
	if m.binding != nil {
		m.release("closed")
	}
	return m.watch.Close()
}

// probe makes ONE attempt to open and bind the configured device.
func (m *Monitor) probe() (Event, bool) {
	m.probeNow = false
	m.lastProbe = m.now()

	pad, err := m.src.Open(m.cfg.Index)
	if err != nil {
		m.log.Debug().Err(err).Int("index", m.cfg.Index).Msg("no input device")
		return Event{}, false
	}

	caps, err := pad.Caps()
	if err != nil {
		// capability failure is an immediate detach of a device never bound
		_ = pad.Close()
		m.log.Warn().Err(err).Int("index", m.cfg.Index).Msg("input device capability query failed")
		return Event{}, false
	}
	caps.HatAxisBase = m.cfg.HatAxisBase
	caps.Hats = m.hatCount(caps.Axes)

	m.binding = &Binding{Caps: caps, pad: pad}
	m.log.Info().
		Str("device", caps.Name).
		Int("axes", caps.Axes).
		Int("buttons", caps.Buttons).
		Int("hats", caps.Hats).
		Msg("input device attached")

	return Event{Kind: Attached, Caps: caps}, true
}

func (m *Monitor) release(reason string) {
	name := m.binding.Caps.Name
	if err := m.binding.pad.Close(); err != nil {
		m.log.Debug().Err(err).Str("device", name).Msg("close input device")
	}
	m.binding = nil
	m.lastProbe = m.now()
	m.log.Info().Str("device", name).Str("reason", reason).Msg("input device detached")
}

func (m *Monitor) hatCount(axes int) int {
	if !m.cfg.Hats || axes <= m.cfg.HatAxisBase {
		return 0
	}
	return min(MaxHats, (axes-m.cfg.HatAxisBase)/2)
}
