// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ggmesh/internal/driver"
)

// program is a compiled and linked shader pair: two shader modules
// plus the pipeline and layouts that bind them.
type program struct {
	dev *Device

	vsModule   hal.ShaderModule
	fsModule   hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	spec driver.ProgramSpec
}

var _ driver.Program = (*program)(nil)

// compileWGSL runs the naga front end and returns SPIR-V words. A naga
// rejection is the compile-stage failure of the program taxonomy and
// carries the compiler diagnostic.
func compileWGSL(source string) ([]uint32, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V size %d not word aligned", len(spirv))
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}

// vertexFormat maps attribute formats to hal vertex formats.
func vertexFormat(f driver.AttribFormat) gputypes.VertexFormat {
	switch f {
	case driver.AttribUnorm8x4:
		return gputypes.VertexFormatUnorm8x4
	default:
		return gputypes.VertexFormatFloat32x2
	}
}

// NewProgram compiles both stages and links them into a render
// pipeline. Compile failures wrap driver.ErrShaderCompile with the
// naga diagnostic; pipeline creation failures wrap
// driver.ErrProgramLink.
func (d *Device) NewProgram(spec driver.ProgramSpec) (driver.Program, error) {
	if d.destroyed {
		return nil, driver.ErrDeviceDestroyed
	}

	p := &program{dev: d, spec: spec}

	vsWords, err := compileWGSL(spec.VertexSource)
	if err != nil {
		return nil, fmt.Errorf("%w: vertex stage: %w", driver.ErrShaderCompile, err)
	}
	p.vsModule, err = d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  spec.Label + "_vs",
		Source: hal.ShaderSource{SPIRV: vsWords},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: vertex module: %w", driver.ErrShaderCompile, err)
	}

	fsWords, err := compileWGSL(spec.FragmentSource)
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("%w: fragment stage: %w", driver.ErrShaderCompile, err)
	}
	p.fsModule, err = d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  spec.Label + "_fs",
		Source: hal.ShaderSource{SPIRV: fsWords},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("%w: fragment module: %w", driver.ErrShaderCompile, err)
	}

	if err := p.link(); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

// link creates the bind group layout, pipeline layout, and render
// pipeline for the compiled modules.
func (p *program) link() error {
	d := p.dev

	entries := []gputypes.BindGroupLayoutEntry{{
		Binding:    0,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}}
	if p.spec.Textured {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   p.spec.Label + "_bind_layout",
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("%w: bind group layout: %w", driver.ErrProgramLink, err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            p.spec.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		return fmt.Errorf("%w: pipeline layout: %w", driver.ErrProgramLink, err)
	}
	p.pipeLayout = pipeLayout

	attrs := make([]gputypes.VertexAttribute, len(p.spec.Attributes))
	for i, a := range p.spec.Attributes {
		attrs[i] = gputypes.VertexAttribute{
			Format:         vertexFormat(a.Format),
			Offset:         uint64(a.Offset),
			ShaderLocation: uint32(a.Location), //nolint:gosec // locations are tiny
		}
	}
	vertexLayout := []gputypes.VertexBufferLayout{{
		ArrayStride: uint64(p.spec.VertexStride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}}

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := d.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  p.spec.Label,
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.vsModule,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout,
		},
		Fragment: &hal.FragmentState{
			Module:     p.fsModule,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    gputypes.TextureFormatBGRA8Unorm,
				Blend:     &premulBlend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", driver.ErrProgramLink, err)
	}
	p.pipeline = pipeline
	return nil
}

// Destroy releases the pipeline and modules in reverse creation order.
func (p *program) Destroy() {
	d := p.dev
	if d == nil || d.destroyed {
		return
	}
	if p.pipeline != nil {
		d.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		d.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		d.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.fsModule != nil {
		d.device.DestroyShaderModule(p.fsModule)
		p.fsModule = nil
	}
	if p.vsModule != nil {
		d.device.DestroyShaderModule(p.vsModule)
		p.vsModule = nil
	}
}
