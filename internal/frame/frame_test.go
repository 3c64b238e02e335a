// internal/frame/frame_test.go
package frame

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tamzrod/padlink/internal/sampler"
)

func scenarioState() sampler.State {
	return sampler.State{
		Axes:        [sampler.MaxAxes]byte{0x3F, 0, 0, 0},
		Buttons:     [sampler.MaxButtonBytes]byte{0x08},
		AxisCount:   4,
		ButtonCount: 8,
	}
}

func TestEncode_Scenario(t *testing.T) {
	f := NewEncoder(true).Encode(scenarioState())

	want := []byte{0x9C, 0x3F, 0x00, 0x00, 0x00, 0x08, 0x37}
	if !bytes.Equal(f.Bytes, want) {
		t.Fatalf("frame: got=% X want=% X", f.Bytes, want)
	}
	if c, ok := f.Checksum(); !ok || c != 0x37 {
		t.Fatalf("checksum: got=%#02x ok=%v", c, ok)
	}
	if !bytes.Equal(f.Payload(), want[1:6]) {
		t.Fatalf("payload: got=% X", f.Payload())
	}
}

func TestEncode_NoChecksum(t *testing.T) {
	f := NewEncoder(false).Encode(scenarioState())

	want := []byte{0x9C, 0x3F, 0x00, 0x00, 0x00, 0x08}
	if !bytes.Equal(f.Bytes, want) {
		t.Fatalf("frame: got=% X want=% X", f.Bytes, want)
	}
	if _, ok := f.Checksum(); ok {
		t.Fatalf("checksum reported on checksum-less frame")
	}
}

func TestEncode_NoPaddingAndMaxLength(t *testing.T) {
	enc := NewEncoder(true)

	cases := []struct {
		axes, buttons, wantLen int
	}{
		{0, 0, 2},
		{2, 1, 5},
		{6, 9, 10},
		{6, 16, MaxLen},
	}
	for _, tc := range cases {
		f := enc.Encode(sampler.State{AxisCount: tc.axes, ButtonCount: tc.buttons})
		if len(f.Bytes) != tc.wantLen {
			t.Fatalf("axes=%d buttons=%d: len=%d want %d", tc.axes, tc.buttons, len(f.Bytes), tc.wantLen)
		}
	}
}

func TestEncode_MasksBitsPastButtonCount(t *testing.T) {
	st := sampler.State{
		Buttons:     [sampler.MaxButtonBytes]byte{0xFF, 0xFF},
		ButtonCount: 11,
	}
	f := NewEncoder(false).Encode(st)

	if got := f.Payload(); got[0] != 0xFF || got[1] != 0x07 {
		t.Fatalf("button bytes: got=% X want=FF 07", got)
	}
}

func TestEncode_BufferRewrittenEachCall(t *testing.T) {
	enc := NewEncoder(true)
	long := enc.Encode(sampler.State{Axes: [sampler.MaxAxes]byte{1, 2, 3, 4, 5, 6}, AxisCount: 6, ButtonCount: 16}).Clone()
	short := enc.Encode(scenarioState())

	if len(short.Bytes) != 7 {
		t.Fatalf("short frame length %d", len(short.Bytes))
	}
	if enc.buf[7] != 0 || enc.buf[9] != 0 {
		t.Fatalf("stale bytes left in buffer: % X", enc.buf)
	}
	if long.Bytes[1] != 1 {
		t.Fatalf("Clone must not alias the encoder buffer")
	}
}

func TestChecksum_DetectsSingleBitFlip(t *testing.T) {
	payload := []byte{0x3F, 0x00, 0x00, 0x00, 0x08}
	base := Checksum(payload)

	for i := range payload {
		for bit := 0; bit < 8; bit++ {
			flipped := append([]byte(nil), payload...)
			flipped[i] ^= 1 << bit
			if Checksum(flipped) == base {
				t.Fatalf("flip byte %d bit %d not detected", i, bit)
			}
		}
	}
}

func TestDecode_RoundTripFields(t *testing.T) {
	st := sampler.State{
		Axes:        [sampler.MaxAxes]byte{0x81, 0x7F, 0x00, 0xF6, 0xFE, 0x00},
		Buttons:     [sampler.MaxButtonBytes]byte{0x08, 0x41},
		AxisCount:   6,
		ButtonCount: 15,
	}
	f := NewEncoder(true).Encode(st)

	got, err := Decode(f.Bytes, 6, 15, true)
	if err != nil {
		t.Fatalf("Decode err=%v", err)
	}

	wantAxes := []int{-127, 127, 0, -10, 254, 0}
	for i, w := range wantAxes {
		if got.Axes[i] != w {
			t.Fatalf("axis %d: got=%d want=%d", i, got.Axes[i], w)
		}
	}
	if got.Buttons != 0x4108 {
		t.Fatalf("buttons: got=%#04x want=0x4108", got.Buttons)
	}
}

func TestDecode_Errors(t *testing.T) {
	good := []byte{0x9C, 0x3F, 0x00, 0x00, 0x00, 0x08, 0x37}

	if _, err := Decode(good, 4, 8, true); err != nil {
		t.Fatalf("good frame rejected: %v", err)
	}

	badHeader := append([]byte(nil), good...)
	badHeader[0] = 0x9D
	if _, err := Decode(badHeader, 4, 8, true); !errors.Is(err, ErrHeader) {
		t.Fatalf("expected ErrHeader, got %v", err)
	}

	if _, err := Decode(good[:6], 4, 8, true); !errors.Is(err, ErrLength) {
		t.Fatalf("expected ErrLength, got %v", err)
	}

	corrupt := append([]byte(nil), good...)
	corrupt[2] ^= 0x10
	if _, err := Decode(corrupt, 4, 8, true); !errors.Is(err, ErrChecksum) {
		t.Fatalf("expected ErrChecksum, got %v", err)
	}

	if _, err := Decode(good, 7, 8, true); !errors.Is(err, ErrLength) {
		t.Fatalf("expected ErrLength for 7 axes, got %v", err)
	}
}
