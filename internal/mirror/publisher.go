// internal/mirror/publisher.go
package mirror

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	cfg "github.com/tamzrod/padlink/internal/config"
	"github.com/tamzrod/padlink/internal/controller"
	"github.com/tamzrod/padlink/internal/status"
	"github.com/tamzrod/padlink/internal/uart"
)

// Publisher mirrors controller snapshots at most once per interval.
//
// Register writes run on the publisher's own goroutine. Observe only hands
// over the latest snapshot, so a slow endpoint never delays the tick.
type Publisher struct {
	w        *StatusWriter
	interval time.Duration
	name     string // fixed name; empty uses the bound device's name
	log      zerolog.Logger
	now      func() time.Time

	// owned by the run goroutine
	lastAt  time.Time
	failing bool

	latest chan controller.Snapshot // size 1, newest wins
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// Build constructs and starts a Publisher from config.
// Returns (nil, no-op closer, nil) when the mirror is disabled.
// The closer stops the publisher, then closes the endpoint connection.
func Build(m cfg.MirrorConfig, log zerolog.Logger) (*Publisher, func() error, error) {
	if m.Endpoint == "" {
		return nil, func() error { return nil }, nil
	}

	cli, err := NewEndpointClient(ClientConfig{
		Endpoint: m.Endpoint,
		Timeout:  time.Duration(m.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	p := newPublisher(
		NewStatusWriter(cli, m.UnitID, m.BaseSlot),
		time.Duration(m.IntervalMs)*time.Millisecond,
		m.DeviceName,
		log,
	)

	closeFn := func() error {
		p.Close()
		return cli.Close()
	}
	return p, closeFn, nil
}

func newPublisher(w *StatusWriter, interval time.Duration, name string, log zerolog.Logger) *Publisher {
	p := &Publisher{
		w:        w,
		interval: interval,
		name:     name,
		log:      log,
		now:      time.Now,
		latest:   make(chan controller.Snapshot, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

// Observe is a controller.Run observer. It never blocks: a snapshot the
// publisher has not picked up yet is replaced by s.
func (p *Publisher) Observe(s controller.Snapshot) {
	for {
		select {
		case p.latest <- s:
			return
		default:
		}
		select {
		case <-p.latest:
		default:
		}
	}
}

// Close stops the publisher and waits for an in-flight write to finish.
func (p *Publisher) Close() {
	p.once.Do(func() { close(p.stop) })
	<-p.done
}

func (p *Publisher) run() {
	defer close(p.done)

	for {
		select {
		case <-p.stop:
			return
		case s := <-p.latest:
			p.publish(s)
		}
	}
}

// publish writes s unless the previous write is younger than the interval.
func (p *Publisher) publish(s controller.Snapshot) {
	now := p.now()
	if !p.lastAt.IsZero() && now.Sub(p.lastAt) < p.interval {
		return
	}
	p.lastAt = now

	name := p.name
	if name == "" {
		name = s.DeviceName
	}

	if err := p.w.WriteStatus(FromController(s, name)); err != nil {
		if !p.failing {
			p.log.Warn().Err(err).Msg("status mirror write failed")
		} else {
			p.log.Debug().Err(err).Msg("status mirror write failed")
		}
		p.failing = true
		return
	}
	if p.failing {
		p.log.Info().Msg("status mirror recovered")
		p.failing = false
	}
}

// FromController maps a controller snapshot onto the register snapshot.
func FromController(s controller.Snapshot, name string) status.Snapshot {
	out := status.Snapshot{
		Connection: status.ConnectionDisconnected,
		Device:     status.DeviceUnbound,
		FramesSent: uint16(s.FramesSent),
		DeviceName: name,
	}
	if s.Connection == uart.Connected {
		out.Connection = status.ConnectionConnected
	}
	if s.Device == controller.Bound {
		out.Device = status.DeviceBound
	}

	if s.HasFrame() {
		for i, v := range s.Fields.Axes {
			if i < status.SlotAxes {
				out.Axes[i] = int16(v)
			}
		}
		out.Buttons = s.Fields.Buttons
		out.Checksum = uint16(s.Fields.Checksum)
	}
	return out
}
