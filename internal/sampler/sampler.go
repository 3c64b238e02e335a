// internal/sampler/sampler.go
package sampler

import (
	"math"

	"github.com/tamzrod/padlink/internal/device"
)

const (
	// Deadzone suppresses stick drift on non-trigger axes.
	Deadzone = 0.08

	// hatThreshold separates a pressed hat direction from center.
	hatThreshold = 0.5
)

// Sampler turns device readings into States.
// It keeps the last State so inactive slots stay frozen across ticks.
type Sampler struct {
	last  State
	valid bool
}

// Sample reads the bound device once.
// ok is false when there is no data: no binding, or the read failed.
// A read error is returned as is; the caller owns the detach.
func (s *Sampler) Sample(b *device.Binding) (st State, ok bool, err error) {
	if b == nil {
		return s.last, false, nil
	}

	r, err := b.Read()
	if err != nil {
		s.valid = false
		return s.last, false, err
	}

	s.last = Normalize(s.last, b.Caps, r)
	s.valid = true
	return s.last, true, nil
}

// Last returns the most recent State and whether it came from a bound device.
func (s *Sampler) Last() (State, bool) {
	return s.last, s.valid
}

// Invalidate marks the last State as stale without clearing its bytes.
func (s *Sampler) Invalidate() {
	s.valid = false
}

// Layout returns active axis, button-bit and hat counts for caps.
// Discrete buttons come first; hats are appended only while they fit in MaxButtons.
func Layout(c device.Caps) (axes, buttons, hats int) {
	axes = min(MaxAxes, max(0, c.Axes))
	if c.Hats > 0 {
		axes = min(axes, c.HatAxisBase)
	}

	discrete := min(MaxButtons, max(0, c.Buttons))
	hats = min(c.Hats, device.MaxHats, (MaxButtons-discrete)/HatBits)
	hats = max(0, hats)

	return axes, discrete + hats*HatBits, hats
}

// Normalize is the pure sampling step: prev with every active slot rewritten from r.
// Slots the reading does not cover keep their previous bytes.
func Normalize(prev State, c device.Caps, r device.Reading) State {
	st := prev
	axes, buttons, hats := Layout(c)
	st.AxisCount, st.ButtonCount, st.HatCount = axes, buttons, hats

	for i := 0; i < axes && i < len(r.Axes); i++ {
		if IsTrigger(i) {
			st.Axes[i] = ScaleTrigger(r.Axes[i])
		} else {
			st.Axes[i] = byte(ScaleAxis(r.Axes[i]))
		}
	}

	discrete := buttons - hats*HatBits
	for i := 0; i < discrete && i < len(r.Buttons); i++ {
		st.setButton(i, r.Buttons[i])
	}

	for h := 0; h < hats; h++ {
		base := discrete + h*HatBits
		x := hatAxis(r.Axes, c.HatAxisBase+2*h)
		y := hatAxis(r.Axes, c.HatAxisBase+2*h+1)
		st.setButton(base+HatLeft, x < 0)
		st.setButton(base+HatRight, x > 0)
		st.setButton(base+HatUp, y < 0)
		st.setButton(base+HatDown, y > 0)
	}

	return st
}

// ScaleAxis maps a stick reading in [-1,1] to a signed byte with deadzone.
// Scaling truncates toward zero: 0.5 -> 63.
func ScaleAxis(raw float64) int8 {
	if math.IsNaN(raw) || math.Abs(raw) < Deadzone {
		return 0
	}
	v := math.Trunc(raw * 127)
	return int8(max(-128, min(127, v)))
}

// ScaleTrigger maps a trigger reading in [-1,1] (released = -1) to [0,255].
func ScaleTrigger(raw float64) uint8 {
	if math.IsNaN(raw) {
		return 0
	}
	v := math.Trunc((raw + 1) * 127)
	return uint8(max(0, min(255, v)))
}

// hatAxis reads a hat axis as -1, 0 or 1. Missing axes read as centered.
func hatAxis(axes []float64, i int) int {
	if i < 0 || i >= len(axes) {
		return 0
	}
	switch v := axes[i]; {
	case v <= -hatThreshold:
		return -1
	case v >= hatThreshold:
		return 1
	default:
		return 0
	}
}
