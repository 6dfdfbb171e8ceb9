package shader

import (
	"strings"
	"testing"
)

func TestLayoutOffsets(t *testing.T) {
	l := NewLayout([]Field{
		{"transform", "mat4x4<f32>"},
		{"scale", "vec4<f32>"},
		{"shift", "vec4<f32>"},
		{"colors", "array<vec4<f32>, 8>"},
	})

	tests := []struct {
		name       string
		wantOffset int
		wantSize   int
	}{
		{"transform", 0, 64},
		{"scale", 64, 16},
		{"shift", 80, 16},
		{"colors", 96, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, size, ok := l.Offset(tt.name)
			if !ok {
				t.Fatalf("Offset(%q) not found", tt.name)
			}
			if off != tt.wantOffset || size != tt.wantSize {
				t.Errorf("Offset(%q) = (%d, %d), want (%d, %d)",
					tt.name, off, size, tt.wantOffset, tt.wantSize)
			}
		})
	}

	if l.Size() != 64+16+16+128 {
		t.Errorf("Size() = %d, want %d", l.Size(), 64+16+16+128)
	}
	if _, _, ok := l.Offset("missing"); ok {
		t.Error("Offset(missing) = ok, want not found")
	}
}

func TestTypeSizeUnsupportedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("typeSize(unsupported) should panic")
		}
	}()
	typeSize("vec3<f32>")
}

func TestBuilderDeterminism(t *testing.T) {
	build := func() string {
		b := NewBuilder(StageVertex)
		b.Uniform("transform", "mat4x4<f32>")
		b.Uniform("scale", "vec4<f32>")
		b.Attribute("position", "vec2<f32>")
		b.Varying("color", "vec4<f32>")
		b.Stmt("out.clip_position = vec4<f32>(in.position, 0.0, 1.0);")
		return b.Source()
	}
	if build() != build() {
		t.Error("identical builders must emit identical source")
	}
}

func TestVertexSourceShape(t *testing.T) {
	b := NewBuilder(StageVertex)
	b.Uniform("transform", "mat4x4<f32>")
	b.Attribute("position", "vec2<f32>")
	b.Attribute("color", "vec4<f32>")
	b.Varying("color", "vec4<f32>")
	b.Stmt("out.color = in.color;")
	src := b.Source()

	for _, want := range []string{
		"struct Uniforms {",
		"@group(0) @binding(0) var<uniform> u: Uniforms;",
		"@location(0) position: vec2<f32>,",
		"@location(1) color: vec4<f32>,",
		"@builtin(position) clip_position: vec4<f32>,",
		"@vertex\nfn vs_main(in: VertexInput) -> VertexOutput {",
		"return out;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("vertex source missing %q:\n%s", want, src)
		}
	}
}

func TestFragmentSourceShape(t *testing.T) {
	b := NewBuilder(StageFragment)
	b.Uniform("transform", "mat4x4<f32>")
	b.Texture()
	b.Varying("texcoord", "vec2<f32>")
	b.Func("fn helper() -> f32 {", "    return 1.0;", "}")
	b.Stmt("return textureSample(t_image, s_image, texcoord);")
	src := b.Source()

	for _, want := range []string{
		"@group(0) @binding(1) var t_image: texture_2d<f32>;",
		"@group(0) @binding(2) var s_image: sampler;",
		"fn helper() -> f32 {",
		"@fragment\nfn fs_main(",
		"@location(0) texcoord: vec2<f32>,",
		") -> @location(0) vec4<f32> {",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("fragment source missing %q:\n%s", want, src)
		}
	}
}

func TestBuilderLayoutMatchesDeclarations(t *testing.T) {
	b := NewBuilder(StageFragment)
	b.Uniform("a", "vec4<f32>")
	b.Uniform("b", "mat4x4<f32>")
	l := b.Layout()

	if off, _, _ := l.Offset("b"); off != 16 {
		t.Errorf("Offset(b) = %d, want 16", off)
	}
	if l.Size() != 80 {
		t.Errorf("Size() = %d, want 80", l.Size())
	}
}
