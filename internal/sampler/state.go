// internal/sampler/state.go
package sampler

// ControllerState limits. These define the wire layout and MUST NOT be configurable.
const (
	// MaxAxes is 2 sticks * 2 axes + 2 triggers.
	MaxAxes = 6

	// MaxButtons caps discrete plus hat-derived button bits.
	MaxButtons     = 16
	MaxButtonBytes = MaxButtons / 8

	// TriggerLeft and TriggerRight are encoded unsigned.
	TriggerLeft  = 4
	TriggerRight = 5

	// HatBits is the number of virtual buttons one hat contributes.
	HatBits = 4
)

// Bit offsets inside a hat's 4-bit slot.
const (
	HatLeft  = iota // x < 0
	HatRight        // x > 0
	HatUp           // y < 0
	HatDown         // y > 0
)

// State is one normalized sample.
//
// Axes and Buttons are fixed-size; slots at or beyond AxisCount/ButtonCount
// keep whatever they last held and are never transmitted.
type State struct {
	Axes    [MaxAxes]byte
	Buttons [MaxButtonBytes]byte

	AxisCount   int // active axes
	ButtonCount int // active button bits, hat bits included
	HatCount    int
}

// IsTrigger reports whether axis i is encoded unsigned.
func IsTrigger(i int) bool {
	return i == TriggerLeft || i == TriggerRight
}

// Axis returns the decoded value of axis i: [-128,127] for sticks, [0,255] for triggers.
func (s State) Axis(i int) int {
	if IsTrigger(i) {
		return int(s.Axes[i])
	}
	return int(int8(s.Axes[i]))
}

// Button reports bit i of the button field.
func (s State) Button(i int) bool {
	return s.Buttons[i/8]&(1<<(i%8)) != 0
}

// ButtonBytes is the number of bytes covering ButtonCount bits.
func (s State) ButtonBytes() int {
	return (s.ButtonCount + 7) / 8
}

// DiscreteButtons is the number of button bits that come from physical buttons.
func (s State) DiscreteButtons() int {
	return s.ButtonCount - s.HatCount*HatBits
}

func (s *State) setButton(i int, on bool) {
	if on {
		s.Buttons[i/8] |= 1 << (i % 8)
	} else {
		s.Buttons[i/8] &^= 1 << (i % 8)
	}
}
