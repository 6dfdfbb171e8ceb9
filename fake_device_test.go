package ggmesh

import (
	"github.com/gogpu/ggmesh/internal/driver"
)

// fakeDevice records every driver call so tests can assert on exactly
// what the orchestrator submitted without touching a GPU.
type fakeDevice struct {
	caps driver.Caps

	programs []driver.ProgramSpec
	textures []driver.TextureSpec
	surfaces []*fakeSurface
	draws    []recordedDraw

	// fill is the per-channel RGBA value ReadPixels reports for every
	// pixel.
	fill [4]byte

	programDestroys int
	textureDestroys int
	surfaceDestroys int
	destroyed       bool

	programErr error
	surfaceErr error
}

type recordedDraw struct {
	surface *fakeSurface
	spec    driver.DrawSpec
}

type fakeProgram struct {
	dev  *fakeDevice
	spec driver.ProgramSpec
}

func (p *fakeProgram) Destroy() { p.dev.programDestroys++ }

type fakeTexture struct {
	dev  *fakeDevice
	spec driver.TextureSpec
}

func (t *fakeTexture) Destroy() { t.dev.textureDestroys++ }

type fakeSurface struct {
	dev    *fakeDevice
	width  int
	height int
}

func (s *fakeSurface) Width() int  { return s.width }
func (s *fakeSurface) Height() int { return s.height }
func (s *fakeSurface) Destroy()    { s.dev.surfaceDestroys++ }

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		caps: driver.Caps{NativeTileModes: true, MaxTextureSize: 8192},
	}
}

func (d *fakeDevice) Caps() driver.Caps { return d.caps }

func (d *fakeDevice) NewProgram(spec driver.ProgramSpec) (driver.Program, error) {
	if d.programErr != nil {
		return nil, d.programErr
	}
	d.programs = append(d.programs, spec)
	return &fakeProgram{dev: d, spec: spec}, nil
}

func (d *fakeDevice) NewTexture(spec driver.TextureSpec) (driver.Texture, error) {
	d.textures = append(d.textures, spec)
	return &fakeTexture{dev: d, spec: spec}, nil
}

func (d *fakeDevice) NewSurface(width, height int) (driver.Surface, error) {
	if d.surfaceErr != nil {
		return nil, d.surfaceErr
	}
	s := &fakeSurface{dev: d, width: width, height: height}
	d.surfaces = append(d.surfaces, s)
	return s, nil
}

func (d *fakeDevice) Render(dst driver.Surface, spec driver.DrawSpec) error {
	d.draws = append(d.draws, recordedDraw{surface: dst.(*fakeSurface), spec: spec})
	return nil
}

func (d *fakeDevice) ReadPixels(dst driver.Surface, width, height int) ([]byte, error) {
	pixels := make([]byte, width*height*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i+0] = d.fill[0]
		pixels[i+1] = d.fill[1]
		pixels[i+2] = d.fill[2]
		pixels[i+3] = d.fill[3]
	}
	return pixels, nil
}

func (d *fakeDevice) Destroy() { d.destroyed = true }

// lastDraw returns the most recent submission.
func (d *fakeDevice) lastDraw() recordedDraw {
	return d.draws[len(d.draws)-1]
}
