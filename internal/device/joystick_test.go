// internal/device/joystick_test.go
package device

import (
	"errors"
	"strings"
	"testing"

	"github.com/0xcafed00d/joystick"
)

// ---- fake joystick driver ----

type fakeJoystick struct {
	name    string
	axes    int
	buttons int
	state   joystick.State
	readErr error
	closed  bool
}

func (j *fakeJoystick) AxisCount() int   { return j.axes }
func (j *fakeJoystick) ButtonCount() int { return j.buttons }
func (j *fakeJoystick) Name() string     { return j.name }
func (j *fakeJoystick) Close()           { j.closed = true }

func (j *fakeJoystick) Read() (joystick.State, error) {
	return j.state, j.readErr
}

func sourceFor(js *fakeJoystick) JoystickSource {
	return JoystickSource{open: func(int) (joystick.Joystick, error) { return js, nil }}
}

// ---- tests ----

func TestJoystickCaps_TrimsNulPaddedName(t *testing.T) {
	buf := make([]byte, 256)
	copy(buf, "Xbox Wireless")
	js := &fakeJoystick{name: string(buf), axes: 8, buttons: 11}

	pad, err := sourceFor(js).Open(0)
	if err != nil {
		t.Fatalf("Open err=%v", err)
	}
	caps, err := pad.Caps()
	if err != nil {
		t.Fatalf("Caps err=%v", err)
	}
	if caps.Name != "Xbox Wireless" {
		t.Fatalf("name: got=%q (len=%d)", caps.Name, len(caps.Name))
	}
	if caps.Axes != 8 || caps.Buttons != 11 {
		t.Fatalf("counts: axes=%d buttons=%d", caps.Axes, caps.Buttons)
	}
}

func TestJoystickCaps_RejectsEmptyDevice(t *testing.T) {
	pad, _ := sourceFor(&fakeJoystick{name: "dead"}).Open(0)
	if _, err := pad.Caps(); !errors.Is(err, ErrDevice) {
		t.Fatalf("expected ErrDevice, got %v", err)
	}
}

func TestJoystickOpen_DriverPanicBecomesErrDevice(t *testing.T) {
	src := JoystickSource{open: func(int) (joystick.Joystick, error) {
		panic(errors.New("no such device"))
	}}

	pad, err := src.Open(3)
	if pad != nil {
		t.Fatalf("expected no pad, got %v", pad)
	}
	if !errors.Is(err, ErrDevice) || !strings.Contains(err.Error(), "no such device") {
		t.Fatalf("expected wrapped ErrDevice, got %v", err)
	}
}

func TestJoystickOpen_ErrorWrapsErrDevice(t *testing.T) {
	src := JoystickSource{open: func(int) (joystick.Joystick, error) {
		return nil, errors.New("permission denied")
	}}
	if _, err := src.Open(0); !errors.Is(err, ErrDevice) {
		t.Fatalf("expected ErrDevice, got %v", err)
	}
}

func TestJoystickRead_MapsAxesAndButtons(t *testing.T) {
	js := &fakeJoystick{
		name:    "Pad",
		axes:    3,
		buttons: 3,
		state: joystick.State{
			AxisData: []int{32767, -32768, 0},
			Buttons:  0b101,
		},
	}
	pad, _ := sourceFor(js).Open(0)

	r, err := pad.Read()
	if err != nil {
		t.Fatalf("Read err=%v", err)
	}

	wantAxes := []float64{1, -1, 0}
	if len(r.Axes) != len(wantAxes) {
		t.Fatalf("axes len: got=%d", len(r.Axes))
	}
	for i, w := range wantAxes {
		if r.Axes[i] != w {
			t.Fatalf("axis %d: got=%v want=%v", i, r.Axes[i], w)
		}
	}

	wantButtons := []bool{true, false, true}
	if len(r.Buttons) != len(wantButtons) {
		t.Fatalf("buttons len: got=%d", len(r.Buttons))
	}
	for i, w := range wantButtons {
		if r.Buttons[i] != w {
			t.Fatalf("button %d: got=%v want=%v", i, r.Buttons[i], w)
		}
	}

	// buffers are reused across reads and shrink with the report
	js.state = joystick.State{AxisData: []int{0}, Buttons: 0}
	js.buttons = 1
	r, _ = pad.Read()
	if len(r.Axes) != 1 || len(r.Buttons) != 1 || r.Buttons[0] {
		t.Fatalf("second read: %+v", r)
	}
}

func TestJoystickRead_Error(t *testing.T) {
	js := &fakeJoystick{name: "Pad", axes: 2, readErr: errors.New("unplugged")}
	pad, _ := sourceFor(js).Open(0)
	if _, err := pad.Read(); err == nil {
		t.Fatalf("expected read error")
	}
	if err := pad.Close(); err != nil || !js.closed {
		t.Fatalf("close: err=%v closed=%v", err, js.closed)
	}
}
