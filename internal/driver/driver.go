// Package driver defines the graphics device abstraction used by the
// mesh renderer. The concrete implementation lives in driver/wgpu;
// tests substitute a recording fake.
package driver

// TileMode selects how a texture is sampled outside the [0,1]
// coordinate range.
type TileMode uint8

const (
	// TileClamp extends edge texels.
	TileClamp TileMode = iota
	// TileDecal maps to clamp-to-edge addressing, same as TileClamp.
	TileDecal
	// TileRepeat wraps coordinates.
	TileRepeat
	// TileMirror wraps coordinates with alternating reflection.
	TileMirror
)

// Caps describes device capabilities. Resolved once when the device is
// created and cached; callers never re-query per draw.
type Caps struct {
	// NativeTileModes reports whether the device sampler supports
	// repeat and mirror addressing. When false, shaders synthesize
	// both by coordinate arithmetic before sampling.
	NativeTileModes bool

	// Mipmaps reports whether the device can generate mipmaps for
	// sampled textures.
	Mipmaps bool

	// MaxTextureSize is the largest supported texture dimension.
	MaxTextureSize int
}

// AttribFormat is the data format of one vertex attribute.
type AttribFormat uint8

const (
	// AttribFloat32x2 is two 32-bit floats (positions, texcoords).
	AttribFloat32x2 AttribFormat = iota
	// AttribUnorm8x4 is four unsigned bytes normalized to [0,1]
	// (packed RGBA vertex colors).
	AttribUnorm8x4
)

// ByteSize returns the attribute size in bytes.
func (f AttribFormat) ByteSize() int {
	switch f {
	case AttribFloat32x2:
		return 8
	case AttribUnorm8x4:
		return 4
	}
	return 0
}

// VertexAttribute describes one interleaved vertex attribute.
type VertexAttribute struct {
	Name     string
	Location int
	Format   AttribFormat
	Offset   int
}

// ProgramSpec describes a shader program to compile and link.
// VertexSource and FragmentSource are compiled as separate modules;
// identical source text must yield an equivalent program, which is
// what makes source-keyed program caching above this layer correct.
type ProgramSpec struct {
	Label          string
	VertexSource   string
	FragmentSource string

	// Vertex buffer layout.
	VertexStride int
	Attributes   []VertexAttribute

	// UniformSize is the byte size of the uniform block at binding 0.
	UniformSize int

	// Textured adds a texture and sampler binding for the fragment
	// stage.
	Textured bool
}

// TextureSpec describes an immutable sampled texture and its pixels.
type TextureSpec struct {
	Label  string
	Width  int
	Height int
	Pixels []byte // RGBA, 4*Width*Height bytes

	// Sampler addressing per axis. Repeat and mirror are only honored
	// when Caps.NativeTileModes is set; callers pass clamp otherwise.
	TileX TileMode
	TileY TileMode

	// Mipmaps requests mipmap generation; ignored when the device
	// lacks the capability.
	Mipmaps bool
}

// DrawSpec is a single clear-then-draw submission.
type DrawSpec struct {
	Program  Program
	Uniforms []byte

	// Vertices is interleaved per the program's vertex layout.
	Vertices    []byte
	VertexCount int

	// Indices switches the submission to an indexed draw when
	// non-nil. Index width is fixed at 16 bits.
	Indices []uint16

	// Texture is bound for textured programs, nil otherwise.
	Texture Texture
}

// Program is an opaque compiled-and-linked shader program. Programs
// are immutable after creation and bound to the device that made them.
type Program interface {
	Destroy()
}

// Texture is an opaque sampled texture with its sampler state.
type Texture interface {
	Destroy()
}

// Surface is an offscreen render target of fixed pixel dimensions.
// Surfaces are never resized; callers allocate a new one instead.
type Surface interface {
	Width() int
	Height() int
	Destroy()
}

// Device is the capability set the renderer needs from a GPU: program
// compile/link, resource creation, draw submission, and pixel
// readback. All methods are synchronous; Render returns after the GPU
// has finished the pass.
type Device interface {
	Caps() Caps

	NewProgram(spec ProgramSpec) (Program, error)
	NewTexture(spec TextureSpec) (Texture, error)
	NewSurface(width, height int) (Surface, error)

	// Render clears dst and issues the single draw described by spec.
	Render(dst Surface, spec DrawSpec) error

	// ReadPixels returns the top-left width x height region of dst as
	// tightly packed RGBA rows.
	ReadPixels(dst Surface, width, height int) ([]byte, error)

	Destroy()
}
