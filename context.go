package ggmesh

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/ggmesh/internal/driver"
	"github.com/gogpu/ggmesh/internal/shader"
)

// compiledProgram pairs an opaque linked program handle with the
// metadata needed to feed it: the uniform layout recorded by the
// shader builder and the vertex buffer layout. Programs are immutable
// once linked and lifetime-bound to the context that created them.
type compiledProgram struct {
	handle driver.Program
	layout shader.Layout
	stride int
}

// newUniforms allocates a staging block sized for the program's
// uniform layout.
func (cp *compiledProgram) newUniforms() *uniformBlock {
	return &uniformBlock{
		layout: cp.layout,
		data:   make([]byte, cp.layout.Size()),
	}
}

// uniformBlock stages uniform values by name into the packed byte
// block uploaded at binding 0. Required uniforms fail hard when the
// name is absent; optional ones report found/not-found instead.
type uniformBlock struct {
	layout shader.Layout
	data   []byte
}

// putFloats writes vals at the named slot, checking capacity.
func (u *uniformBlock) putFloats(name string, vals []float32) error {
	off, size, ok := u.layout.Offset(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingUniform, name)
	}
	if len(vals)*4 > size {
		return fmt.Errorf("ggmesh: uniform %q overflows its %d-byte slot", name, size)
	}
	for i, v := range vals {
		binary.LittleEndian.PutUint32(u.data[off+i*4:], math.Float32bits(v))
	}
	return nil
}

// setMat4 writes a column-major 4x4 matrix uniform.
func (u *uniformBlock) setMat4(name string, m [16]float32) error {
	return u.putFloats(name, m[:])
}

// setVec4 writes a vec4 uniform.
func (u *uniformBlock) setVec4(name string, x, y, z, w float32) error {
	return u.putFloats(name, []float32{x, y, z, w})
}

// trySetVec4 writes a vec4 uniform if the program declares it and
// reports whether it was found.
func (u *uniformBlock) trySetVec4(name string, x, y, z, w float32) bool {
	if _, _, ok := u.layout.Offset(name); !ok {
		return false
	}
	return u.putFloats(name, []float32{x, y, z, w}) == nil
}

// gpuContext wraps one device surface of fixed pixel dimensions plus
// the program cache keyed by exact generated source. The surface is
// never resized; the context is destroyed and recreated when a larger
// one is needed. The logical viewport may shrink below the surface
// size between draws.
type gpuContext struct {
	dev     driver.Device
	surface driver.Surface

	// Logical viewport for the current draw; at most the surface size.
	width  int
	height int

	programs map[string]*compiledProgram
}

// newGpuContext allocates a surface at the given dimensions.
func newGpuContext(dev driver.Device, width, height int) (*gpuContext, error) {
	surf, err := dev.NewSurface(width, height)
	if err != nil {
		return nil, fmt.Errorf("ggmesh: create surface: %w", err)
	}
	return &gpuContext{
		dev:      dev,
		surface:  surf,
		width:    width,
		height:   height,
		programs: make(map[string]*compiledProgram),
	}, nil
}

// setViewport resets the logical viewport to a size within the
// surface.
func (c *gpuContext) setViewport(width, height int) {
	if width > c.surface.Width() {
		width = c.surface.Width()
	}
	if height > c.surface.Height() {
		height = c.surface.Height()
	}
	c.width = width
	c.height = height
}

// getOrCreateProgram resolves a generated source pair to a compiled
// program, compiling and linking only on the first sighting of the
// exact text. Builder determinism guarantees that equal descriptions
// produce equal text, which is what makes this cache correct.
func (c *gpuContext) getOrCreateProgram(p shader.Program, label string) (*compiledProgram, error) {
	key := p.CacheKey()
	if cp, ok := c.programs[key]; ok {
		logger().Debug("ggmesh: program cache hit", "label", label)
		return cp, nil
	}

	handle, err := c.dev.NewProgram(p.Spec(label))
	if err != nil {
		return nil, err
	}
	cp := &compiledProgram{
		handle: handle,
		layout: p.Layout,
		stride: p.VertexStride,
	}
	c.programs[key] = cp
	return cp, nil
}

// setClipTransform writes the shared vertex uniforms: the caller
// transform and the scale/shift pair mapping pixel space to clip
// space. The Y scale is negated because the raster Y axis grows
// downward while clip space grows upward.
func (c *gpuContext) setClipTransform(u *uniformBlock, transform Matrix) error {
	if err := u.setMat4("transform", transform.mat4()); err != nil {
		return err
	}
	sw := float32(c.surface.Width())
	sh := float32(c.surface.Height())
	if err := u.setVec4("scale", 2/sw, -2/sh, 1, 1); err != nil {
		return err
	}
	return u.setVec4("shift", -1, 1, 0, 0)
}

// draw clears the surface and submits one draw.
func (c *gpuContext) draw(spec driver.DrawSpec) error {
	return c.dev.Render(c.surface, spec)
}

// readImage reads back the logical viewport as an RGBA image.
func (c *gpuContext) readImage() (*image.RGBA, error) {
	pixels, err := c.dev.ReadPixels(c.surface, c.width, c.height)
	if err != nil {
		return nil, fmt.Errorf("ggmesh: readback: %w", err)
	}
	return &image.RGBA{
		Pix:    pixels,
		Stride: c.width * 4,
		Rect:   image.Rect(0, 0, c.width, c.height),
	}, nil
}

// destroy releases the surface and every cached program.
func (c *gpuContext) destroy() {
	for _, cp := range c.programs {
		cp.handle.Destroy()
	}
	c.programs = nil
	if c.surface != nil {
		c.surface.Destroy()
		c.surface = nil
	}
}
