package ggmesh

import (
	"image/color"
	"math"
	"testing"
)

func TestPackedRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		c    RGBA
	}{
		{"black", Black},
		{"white", White},
		{"red", Red},
		{"transparent", Transparent},
		{"half alpha", RGBA{R: 0.5, G: 0.25, B: 0.75, A: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnpackColor(tt.c.Packed())
			const epsilon = 1.0 / 255
			if math.Abs(got.R-tt.c.R) > epsilon ||
				math.Abs(got.G-tt.c.G) > epsilon ||
				math.Abs(got.B-tt.c.B) > epsilon ||
				math.Abs(got.A-tt.c.A) > epsilon {
				t.Errorf("round trip = %+v, want %+v", got, tt.c)
			}
		})
	}
}

func TestPackedByteOrder(t *testing.T) {
	// R occupies the low byte, A the high byte.
	if got := Red.Packed(); got != 0xff0000ff {
		t.Errorf("Red.Packed() = %#x, want 0xff0000ff", got)
	}
	if got := (RGBA{B: 1, A: 1}).Packed(); got != 0xffff0000 {
		t.Errorf("Blue.Packed() = %#x, want 0xffff0000", got)
	}
	if got := (RGBA{G: 1}).Packed(); got != 0x0000ff00 {
		t.Errorf("alpha-zero green = %#x, want 0x0000ff00", got)
	}
}

func TestPackedClamps(t *testing.T) {
	c := RGBA{R: 2, G: -1, B: 0.5, A: 1}
	got := UnpackColor(c.Packed())
	if got.R != 1 || got.G != 0 {
		t.Errorf("clamped unpack = %+v, want R=1 G=0", got)
	}
}

func TestPremultiply(t *testing.T) {
	c := RGBA{R: 1, G: 0.5, B: 0.2, A: 0.5}
	got := c.Premultiply()
	want := RGBA{R: 0.5, G: 0.25, B: 0.1, A: 0.5}
	const epsilon = 1e-9
	if math.Abs(got.R-want.R) > epsilon ||
		math.Abs(got.G-want.G) > epsilon ||
		math.Abs(got.B-want.B) > epsilon ||
		got.A != want.A {
		t.Errorf("Premultiply() = %+v, want %+v", got, want)
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want RGBA
	}{
		{"opaque red", color.NRGBA{R: 255, A: 255}, Red},
		{"zero alpha", color.NRGBA{R: 255, A: 0}, Transparent},
		{"half alpha white", color.NRGBA{R: 255, G: 255, B: 255, A: 128}, RGBA{R: 1, G: 1, B: 1, A: 128.0 / 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromColor(tt.in)
			const epsilon = 1.0 / 255
			if math.Abs(got.R-tt.want.R) > epsilon ||
				math.Abs(got.G-tt.want.G) > epsilon ||
				math.Abs(got.B-tt.want.B) > epsilon ||
				math.Abs(got.A-tt.want.A) > epsilon {
				t.Errorf("FromColor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGB(t *testing.T) {
	c := RGB(0.1, 0.2, 0.3)
	if c.A != 1 {
		t.Errorf("RGB() alpha = %v, want 1", c.A)
	}
}
