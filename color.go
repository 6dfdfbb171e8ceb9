package ggmesh

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Common colors.
var (
	Transparent = RGBA{0, 0, 0, 0}
	Black       = RGBA{0, 0, 0, 1}
	White       = RGBA{1, 1, 1, 1}
	Red         = RGBA{1, 0, 0, 1}
	Green       = RGBA{0, 1, 0, 1}
	Blue        = RGBA{0, 0, 1, 1}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	// RGBA() returns premultiplied components; undo the multiply.
	return RGBA{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
		A: float64(a) / 65535,
	}
}

// Premultiply returns the color with RGB scaled by alpha.
func (c RGBA) Premultiply() RGBA {
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Packed returns the color as packed RGBA bytes in a uint32, R in the
// low byte through A in the high byte. This is the format of
// per-vertex colors in a Mesh.
func (c RGBA) Packed() uint32 {
	r := uint32(clamp255(c.R * 255))
	g := uint32(clamp255(c.G * 255))
	b := uint32(clamp255(c.B * 255))
	a := uint32(clamp255(c.A * 255))
	return r | g<<8 | b<<16 | a<<24
}

// UnpackColor converts a packed RGBA uint32 back to an RGBA color.
func UnpackColor(p uint32) RGBA {
	return RGBA{
		R: float64(p&0xff) / 255,
		G: float64(p>>8&0xff) / 255,
		B: float64(p>>16&0xff) / 255,
		A: float64(p>>24&0xff) / 255,
	}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
