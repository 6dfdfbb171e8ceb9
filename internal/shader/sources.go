package shader

import (
	"sync"

	"github.com/gogpu/ggmesh/internal/driver"
)

// Program is a generated vertex/fragment source pair together with the
// metadata a device needs to link it: the shared uniform layout and the
// interleaved vertex buffer layout.
type Program struct {
	Vertex   string
	Fragment string
	Layout   Layout

	VertexStride int
	Attributes   []driver.VertexAttribute
	Textured     bool
}

// Spec converts the program into a driver descriptor.
func (p Program) Spec(label string) driver.ProgramSpec {
	return driver.ProgramSpec{
		Label:          label,
		VertexSource:   p.Vertex,
		FragmentSource: p.Fragment,
		VertexStride:   p.VertexStride,
		Attributes:     p.Attributes,
		UniformSize:    p.Layout.Size(),
		Textured:       p.Textured,
	}
}

// CacheKey is the program-cache key: the exact concatenation of the
// generated vertex and fragment text. Identical text must resolve to
// the same compiled program.
func (p Program) CacheKey() string {
	return p.Vertex + "\x00" + p.Fragment
}

// meshUniforms is the uniform block shared by the mesh vertex shaders:
// the caller transform (affine embedded in a mat4), and the
// pixel-to-clip scale/shift pair.
func meshUniforms(b *Builder) {
	b.Uniform("transform", "mat4x4<f32>")
	b.Uniform("scale", "vec4<f32>")
	b.Uniform("shift", "vec4<f32>")
}

// meshPositionStmts emits the shared position math: transform the
// pixel-space vertex, then map to clip space.
func meshPositionStmts(b *Builder) {
	b.Stmt(
		"let p = u.transform * vec4<f32>(in.position, 0.0, 1.0);",
		"out.clip_position = p * u.scale + u.shift;",
	)
}

var (
	solidOnce    sync.Once
	solidProgram Program
)

// Solid returns the per-vertex-color program pair. The pair has no
// draw-varying parameters, so it is generated once and memoized.
// The fragment passes the packed color straight through: color math is
// resolved by the host before upload.
func Solid() Program {
	solidOnce.Do(func() {
		vb := NewBuilder(StageVertex)
		meshUniforms(vb)
		vb.Attribute("position", "vec2<f32>")
		vb.Attribute("color", "vec4<f32>")
		vb.Varying("color", "vec4<f32>")
		meshPositionStmts(vb)
		vb.Stmt("out.color = in.color;")

		fb := NewBuilder(StageFragment)
		meshUniforms(fb)
		fb.Varying("color", "vec4<f32>")
		fb.Stmt("return color;")

		solidProgram = Program{
			Vertex:       vb.Source(),
			Fragment:     fb.Source(),
			Layout:       vb.Layout(),
			VertexStride: 12,
			Attributes: []driver.VertexAttribute{
				{Name: "position", Location: 0, Format: driver.AttribFloat32x2, Offset: 0},
				{Name: "color", Location: 1, Format: driver.AttribUnorm8x4, Offset: 8},
			},
		}
	})
	return solidProgram
}

// texturedUniforms extends the mesh block with the texel scale that
// maps pixel positions to normalized texture coordinates.
func texturedUniforms(b *Builder) {
	meshUniforms(b)
	b.Uniform("texture_scale", "vec4<f32>")
}

var (
	texturedVertexOnce sync.Once
	texturedVertexSrc  string
	texturedLayout     Layout
)

// texturedVertex returns the canonical textured vertex source. The
// text has no draw-varying parameters, so a single memoized copy
// serves every textured draw; fragment text varies by tile modes and
// capabilities and is deduplicated by the program cache instead.
func texturedVertex() (string, Layout) {
	texturedVertexOnce.Do(func() {
		b := NewBuilder(StageVertex)
		texturedUniforms(b)
		b.Attribute("position", "vec2<f32>")
		b.Varying("texcoord", "vec2<f32>")
		meshPositionStmts(b)
		b.Stmt("out.texcoord = in.position * u.texture_scale.xy;")
		texturedVertexSrc = b.Source()
		texturedLayout = b.Layout()
	})
	return texturedVertexSrc, texturedLayout
}

// tileStmts emits the coordinate arithmetic that synthesizes a tile
// mode on devices without native wrap/mirror addressing. axis is the
// component name, "x" or "y".
func tileStmts(b *Builder, axis string, mode driver.TileMode) {
	switch mode {
	case driver.TileRepeat:
		b.Stmt("uv." + axis + " = uv." + axis + " - floor(uv." + axis + ");")
	case driver.TileMirror:
		b.Stmt(
			"let m_"+axis+" = uv."+axis+" - 2.0 * floor(uv."+axis+" / 2.0);",
			"uv."+axis+" = 1.0 - abs(m_"+axis+" - 1.0);",
		)
	default:
		// Clamp and decal use native clamp-to-edge addressing.
	}
}

// Textured returns the image-shader program pair for the given tile
// modes. When caps report native tile addressing, the sampler handles
// wrapping and the fragment samples directly; otherwise repeat and
// mirror are synthesized by explicit coordinate arithmetic.
func Textured(tileX, tileY driver.TileMode, caps driver.Caps) Program {
	vertex, layout := texturedVertex()

	fb := NewBuilder(StageFragment)
	texturedUniforms(fb)
	fb.Texture()
	fb.Varying("texcoord", "vec2<f32>")
	fb.Stmt("var uv = texcoord;")
	if !caps.NativeTileModes {
		tileStmts(fb, "x", tileX)
		tileStmts(fb, "y", tileY)
	}
	fb.Stmt("return textureSample(t_image, s_image, uv);")

	return Program{
		Vertex:       vertex,
		Fragment:     fb.Source(),
		Layout:       layout,
		VertexStride: 8,
		Attributes: []driver.VertexAttribute{
			{Name: "position", Location: 0, Format: driver.AttribFloat32x2, Offset: 0},
		},
		Textured: true,
	}
}

// GradientMaxStops is the uniform-block capacity for gradient stops.
const GradientMaxStops = 8

// GradientKind selects the gradient evaluation in the rect fragment.
type GradientKind uint8

const (
	// GradientLinear projects the fragment position onto a line.
	GradientLinear GradientKind = iota
	// GradientRadial measures distance from a center.
	GradientRadial
)

// ExtendMode matches the gradient extend arithmetic applied to t
// before the stop lookup.
type ExtendMode uint8

const (
	// ExtendPad clamps t to [0,1].
	ExtendPad ExtendMode = iota
	// ExtendRepeat wraps t.
	ExtendRepeat
	// ExtendReflect wraps t with alternating reflection.
	ExtendReflect
)

// gradientUniforms is the uniform block of the rect/gradient pair.
// The vertex stage uses only the leading mesh fields; both stages
// declare the full list so offsets agree across modules.
func gradientUniforms(b *Builder) {
	meshUniforms(b)
	b.Uniform("gradient_params", "vec4<f32>")
	b.Uniform("stop_info", "vec4<f32>")
	b.Uniform("stops", "array<vec4<f32>, 2>")
	b.Uniform("colors", "array<vec4<f32>, 8>")
}

var (
	rectVertexOnce sync.Once
	rectVertexSrc  string
	rectLayout     Layout
)

// rectVertex returns the canonical rect vertex source: clip-space
// mapping plus the pixel-space position varying the gradient fragment
// evaluates. Memoized like the textured vertex.
func rectVertex() (string, Layout) {
	rectVertexOnce.Do(func() {
		b := NewBuilder(StageVertex)
		gradientUniforms(b)
		b.Attribute("position", "vec2<f32>")
		b.Varying("frag_position", "vec2<f32>")
		meshPositionStmts(b)
		b.Stmt("out.frag_position = in.position;")
		rectVertexSrc = b.Source()
		rectLayout = b.Layout()
	})
	return rectVertexSrc, rectLayout
}

// extendStmts emits the extend-mode arithmetic normalizing t to [0,1].
func extendStmts(b *Builder, mode ExtendMode) {
	switch mode {
	case ExtendRepeat:
		b.Stmt("t = t - floor(t);")
	case ExtendReflect:
		b.Stmt(
			"let m = t - 2.0 * floor(t / 2.0);",
			"t = 1.0 - abs(m - 1.0);",
		)
	default:
		b.Stmt("t = clamp(t, 0.0, 1.0);")
	}
}

// Gradient returns the rect program pair evaluating an up-to-8-stop
// gradient per fragment.
func Gradient(kind GradientKind, extend ExtendMode) Program {
	vertex, layout := rectVertex()

	fb := NewBuilder(StageFragment)
	gradientUniforms(fb)
	fb.Varying("frag_position", "vec2<f32>")
	fb.Func(
		"fn stop_at(i: u32) -> f32 {",
		"    let v = u.stops[i / 4u];",
		"    return v[i % 4u];",
		"}",
	)

	switch kind {
	case GradientRadial:
		fb.Stmt(
			"let radius = max(u.gradient_params.z, 1e-6);",
			"var t = distance(frag_position, u.gradient_params.xy) / radius;",
		)
	default:
		fb.Stmt(
			"let dir = u.gradient_params.zw - u.gradient_params.xy;",
			"let len2 = max(dot(dir, dir), 1e-6);",
			"var t = dot(frag_position - u.gradient_params.xy, dir) / len2;",
		)
	}
	extendStmts(fb, extend)
	fb.Stmt(
		"let count = u32(u.stop_info.x);",
		"var result = u.colors[0];",
		"for (var i = 1u; i < count; i = i + 1u) {",
		"    let s0 = stop_at(i - 1u);",
		"    let s1 = stop_at(i);",
		"    if (t >= s0 && t <= s1) {",
		"        let f = (t - s0) / max(s1 - s0, 1e-6);",
		"        result = mix(u.colors[i - 1u], u.colors[i], f);",
		"    }",
		"}",
		"if (t >= stop_at(count - 1u)) {",
		"    result = u.colors[count - 1u];",
		"}",
		"return result;",
	)

	return Program{
		Vertex:       vertex,
		Fragment:     fb.Source(),
		Layout:       layout,
		VertexStride: 8,
		Attributes: []driver.VertexAttribute{
			{Name: "position", Location: 0, Format: driver.AttribFloat32x2, Offset: 0},
		},
	}
}
