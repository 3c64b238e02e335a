// internal/device/joystick.go
package device

import (
	"fmt"
	"strings"

	"github.com/0xcafed00d/joystick"
)

// axisFullScale is the magnitude joystick drivers report at full deflection.
const axisFullScale = 32767

// JoystickSource opens system joysticks (Linux joydev, Windows winmm, macOS IOKit).
// A zero value uses joystick.Open.
type JoystickSource struct {
	open func(id int) (joystick.Joystick, error)
}

// Open never panics. The Linux driver panics when a capability ioctl fails,
// which happens when the node vanishes between open and query.
func (s JoystickSource) Open(index int) (pad Pad, err error) {
	defer func() {
		if r := recover(); r != nil {
			pad = nil
			err = fmt.Errorf("%w: open joystick %d: %v", ErrDevice, index, r)
		}
	}()

	open := s.open
	if open == nil {
		open = joystick.Open
	}

	js, err := open(index)
	if err != nil {
		return nil, fmt.Errorf("%w: open joystick %d: %v", ErrDevice, index, err)
	}
	return &joystickPad{js: js}, nil
}

type joystickPad struct {
	js      joystick.Joystick
	reading Reading
}

func (p *joystickPad) Caps() (Caps, error) {
	// the Linux driver returns its whole NUL-padded name buffer
	name, _, _ := strings.Cut(p.js.Name(), "\x00")

	axes, buttons := p.js.AxisCount(), p.js.ButtonCount()
	if axes < 0 || buttons < 0 || (axes == 0 && buttons == 0) {
		return Caps{}, fmt.Errorf("%w: %q reports axes=%d buttons=%d", ErrDevice, name, axes, buttons)
	}
	return Caps{
		Name:    name,
		Axes:    axes,
		Buttons: buttons,
	}, nil
}

// Read returns a normalized view that is reused by the next Read.
func (p *joystickPad) Read() (Reading, error) {
	st, err := p.js.Read()
	if err != nil {
		return Reading{}, err
	}

	if cap(p.reading.Axes) < len(st.AxisData) {
		p.reading.Axes = make([]float64, len(st.AxisData))
	}
	p.reading.Axes = p.reading.Axes[:len(st.AxisData)]
	for i, v := range st.AxisData {
		p.reading.Axes[i] = NormalizeAxis(v)
	}

	// the driver state packs at most 32 buttons
	n := min(p.js.ButtonCount(), 32)
	if cap(p.reading.Buttons) < n {
		p.reading.Buttons = make([]bool, n)
	}
	p.reading.Buttons = p.reading.Buttons[:n]
	for i := range p.reading.Buttons {
		p.reading.Buttons[i] = st.Buttons&(1<<uint(i)) != 0
	}

	return p.reading, nil
}

func (p *joystickPad) Close() error {
	p.js.Close()
	return nil
}

// NormalizeAxis maps a raw driver value to [-1.0, 1.0].
func NormalizeAxis(v int) float64 {
	f := float64(v) / axisFullScale
	return max(-1, min(1, f))
}
