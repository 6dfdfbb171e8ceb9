// Package shader assembles WGSL shader source from a declarative
// description of attributes, uniforms, varyings, and body statements.
// Generation is deterministic: two builders populated identically emit
// byte-for-byte identical source, which is the property that makes
// source-keyed program caching correct.
package shader

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is a named, WGSL-typed declaration (attribute, uniform, or
// varying).
type Field struct {
	Name string
	Type string
}

// Layout maps uniform names to byte offsets inside the packed uniform
// block at binding 0. Every field occupies a 16-byte-aligned slot.
type Layout struct {
	offsets map[string]int
	sizes   map[string]int
	size    int
}

// Offset returns the byte offset and size of a named uniform.
func (l Layout) Offset(name string) (offset, size int, ok bool) {
	offset, ok = l.offsets[name]
	if !ok {
		return 0, 0, false
	}
	return offset, l.sizes[name], true
}

// Size returns the total block size in bytes.
func (l Layout) Size() int { return l.size }

// typeSize returns the byte size of a WGSL uniform type. Only the
// types the generators emit are supported; all are 16-byte aligned so
// offsets accumulate without padding.
func typeSize(typ string) int {
	switch typ {
	case "mat4x4<f32>":
		return 64
	case "vec4<f32>":
		return 16
	}
	if rest, ok := strings.CutPrefix(typ, "array<vec4<f32>, "); ok {
		n, err := strconv.Atoi(strings.TrimSuffix(rest, ">"))
		if err == nil {
			return n * 16
		}
	}
	panic("shader: unsupported uniform type " + typ)
}

// NewLayout computes the packed layout of a uniform field list.
func NewLayout(uniforms []Field) Layout {
	l := Layout{
		offsets: make(map[string]int, len(uniforms)),
		sizes:   make(map[string]int, len(uniforms)),
	}
	for _, f := range uniforms {
		sz := typeSize(f.Type)
		l.offsets[f.Name] = l.size
		l.sizes[f.Name] = sz
		l.size += sz
	}
	return l
}

// Stage identifies the shader stage a builder targets.
type Stage uint8

const (
	// StageVertex builds a vertex shader with entry point vs_main.
	StageVertex Stage = iota
	// StageFragment builds a fragment shader with entry point fs_main.
	StageFragment
)

// Builder accumulates the declarative description of one shader stage.
// The zero value is not usable; construct with NewBuilder.
type Builder struct {
	stage    Stage
	attrs    []Field // vertex inputs
	varyings []Field // vertex outputs / fragment inputs
	uniforms []Field
	textured bool
	funcs    []string
	body     []string
}

// NewBuilder creates a builder for the given stage.
func NewBuilder(stage Stage) *Builder {
	return &Builder{stage: stage}
}

// Attribute declares a vertex input at the next location.
func (b *Builder) Attribute(name, typ string) *Builder {
	b.attrs = append(b.attrs, Field{name, typ})
	return b
}

// Uniform declares a field of the shared uniform block. Both stages of
// a pair must declare the identical field list so offsets agree.
func (b *Builder) Uniform(name, typ string) *Builder {
	b.uniforms = append(b.uniforms, Field{name, typ})
	return b
}

// Varying declares stage IO: an output of the vertex stage or an input
// of the fragment stage, at the next location.
func (b *Builder) Varying(name, typ string) *Builder {
	b.varyings = append(b.varyings, Field{name, typ})
	return b
}

// Texture declares the sampled texture and sampler bindings used by
// textured fragment shaders.
func (b *Builder) Texture() *Builder {
	b.textured = true
	return b
}

// Func appends a helper function definition above the entry point.
func (b *Builder) Func(lines ...string) *Builder {
	b.funcs = append(b.funcs, lines...)
	return b
}

// Stmt appends body statements to the entry point.
func (b *Builder) Stmt(lines ...string) *Builder {
	b.body = append(b.body, lines...)
	return b
}

// Source emits the WGSL text for the stage.
func (b *Builder) Source() string {
	var sb strings.Builder

	if len(b.uniforms) > 0 {
		sb.WriteString("struct Uniforms {\n")
		for _, f := range b.uniforms {
			fmt.Fprintf(&sb, "    %s: %s,\n", f.Name, f.Type)
		}
		sb.WriteString("}\n\n")
		sb.WriteString("@group(0) @binding(0) var<uniform> u: Uniforms;\n\n")
	}

	if b.textured {
		sb.WriteString("@group(0) @binding(1) var t_image: texture_2d<f32>;\n")
		sb.WriteString("@group(0) @binding(2) var s_image: sampler;\n\n")
	}

	for _, fn := range b.funcs {
		sb.WriteString(fn)
		sb.WriteString("\n")
	}
	if len(b.funcs) > 0 {
		sb.WriteString("\n")
	}

	switch b.stage {
	case StageVertex:
		b.writeVertexEntry(&sb)
	case StageFragment:
		b.writeFragmentEntry(&sb)
	}

	return sb.String()
}

func (b *Builder) writeVertexEntry(sb *strings.Builder) {
	sb.WriteString("struct VertexInput {\n")
	for i, f := range b.attrs {
		fmt.Fprintf(sb, "    @location(%d) %s: %s,\n", i, f.Name, f.Type)
	}
	sb.WriteString("}\n\n")

	sb.WriteString("struct VertexOutput {\n")
	sb.WriteString("    @builtin(position) clip_position: vec4<f32>,\n")
	for i, f := range b.varyings {
		fmt.Fprintf(sb, "    @location(%d) %s: %s,\n", i, f.Name, f.Type)
	}
	sb.WriteString("}\n\n")

	sb.WriteString("@vertex\nfn vs_main(in: VertexInput) -> VertexOutput {\n")
	sb.WriteString("    var out: VertexOutput;\n")
	for _, line := range b.body {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("    return out;\n}\n")
}

func (b *Builder) writeFragmentEntry(sb *strings.Builder) {
	sb.WriteString("@fragment\nfn fs_main(\n")
	for i, f := range b.varyings {
		fmt.Fprintf(sb, "    @location(%d) %s: %s,\n", i, f.Name, f.Type)
	}
	sb.WriteString(") -> @location(0) vec4<f32> {\n")
	for _, line := range b.body {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
}

// Layout returns the uniform layout declared on this builder.
func (b *Builder) Layout() Layout {
	return NewLayout(b.uniforms)
}
