package ggmesh

import (
	"fmt"
	"sort"

	"github.com/gogpu/ggmesh/internal/shader"
)

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode int

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// MaxGradientStops is the number of stops a gradient shader can carry.
const MaxGradientStops = shader.GradientMaxStops

// Gradient supplies the fragment program and uniform values for the
// rect draw path.
type Gradient interface {
	program() shader.Program
	setUniforms(u *uniformBlock) error
}

// LinearGradient interpolates colors along the line from (X0, Y0) to
// (X1, Y1) in target pixel coordinates.
type LinearGradient struct {
	X0, Y0 float64
	X1, Y1 float64
	Stops  []ColorStop
	Extend ExtendMode
}

func (g *LinearGradient) program() shader.Program {
	return shader.Gradient(shader.GradientLinear, shaderExtend(g.Extend))
}

func (g *LinearGradient) setUniforms(u *uniformBlock) error {
	if err := u.setVec4("gradient_params",
		float32(g.X0), float32(g.Y0), float32(g.X1), float32(g.Y1)); err != nil {
		return err
	}
	return setStopUniforms(u, g.Stops)
}

// RadialGradient interpolates colors by distance from a center, in
// target pixel coordinates.
type RadialGradient struct {
	CX, CY float64
	Radius float64
	Stops  []ColorStop
	Extend ExtendMode
}

func (g *RadialGradient) program() shader.Program {
	return shader.Gradient(shader.GradientRadial, shaderExtend(g.Extend))
}

func (g *RadialGradient) setUniforms(u *uniformBlock) error {
	if err := u.setVec4("gradient_params",
		float32(g.CX), float32(g.CY), float32(g.Radius), 0); err != nil {
		return err
	}
	return setStopUniforms(u, g.Stops)
}

func shaderExtend(m ExtendMode) shader.ExtendMode {
	switch m {
	case ExtendRepeat:
		return shader.ExtendRepeat
	case ExtendReflect:
		return shader.ExtendReflect
	default:
		return shader.ExtendPad
	}
}

// sortStops returns the stops ordered by offset without modifying the
// caller's slice.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// setStopUniforms packs sorted stop offsets and premultiplied stop
// colors into the gradient uniform slots. A gradient without stops
// falls back to a two-stop transparent-to-transparent ramp.
func setStopUniforms(u *uniformBlock, stops []ColorStop) error {
	if len(stops) > MaxGradientStops {
		return fmt.Errorf("%w: %d stops, limit %d", ErrGradientStops, len(stops), MaxGradientStops)
	}
	if len(stops) == 0 {
		stops = []ColorStop{{Offset: 0}, {Offset: 1}}
	} else if len(stops) == 1 {
		stops = []ColorStop{{Offset: 0, Color: stops[0].Color}, {Offset: 1, Color: stops[0].Color}}
	} else {
		stops = sortStops(stops)
	}

	if err := u.setVec4("stop_info", float32(len(stops)), 0, 0, 0); err != nil {
		return err
	}

	offsets := make([]float32, MaxGradientStops)
	colors := make([]float32, MaxGradientStops*4)
	for i, s := range stops {
		offsets[i] = float32(s.Offset)
		c := s.Color.Premultiply()
		colors[i*4+0] = float32(c.R)
		colors[i*4+1] = float32(c.G)
		colors[i*4+2] = float32(c.B)
		colors[i*4+3] = float32(c.A)
	}
	if err := u.putFloats("stops", offsets); err != nil {
		return err
	}
	return u.putFloats("colors", colors)
}
