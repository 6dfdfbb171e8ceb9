// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ggmesh/internal/driver"
)

// copyPitchAlignment is the BytesPerRow alignment required by
// texture-to-buffer copies (WebGPU and DX12 mandate 256).
const copyPitchAlignment = 256

// createAndUploadBuffer creates a GPU buffer and writes data into it
// through the queue.
func (d *Device) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer %s: %w", label, err)
	}
	if err := d.queue.WriteBuffer(buf, 0, data); err != nil {
		d.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write buffer %s: %w", label, err)
	}
	return buf, nil
}

// Render clears dst and submits the single draw described by spec,
// waiting for the GPU to finish. Per-draw buffers and the bind group
// are transient and released before returning.
func (d *Device) Render(dst driver.Surface, spec driver.DrawSpec) error {
	if d.destroyed {
		return driver.ErrDeviceDestroyed
	}
	s, ok := dst.(*surface)
	if !ok {
		return fmt.Errorf("wgpu: foreign surface %T", dst)
	}
	p, ok := spec.Program.(*program)
	if !ok {
		return fmt.Errorf("wgpu: foreign program %T", spec.Program)
	}

	vertBuf, err := d.createAndUploadBuffer("ggmesh_verts", spec.Vertices,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	defer d.device.DestroyBuffer(vertBuf)

	uniformBuf, err := d.createAndUploadBuffer("ggmesh_uniforms", spec.Uniforms,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	defer d.device.DestroyBuffer(uniformBuf)

	var indexBuf hal.Buffer
	if len(spec.Indices) > 0 {
		indexData := make([]byte, len(spec.Indices)*2)
		for i, idx := range spec.Indices {
			binary.LittleEndian.PutUint16(indexData[i*2:], idx)
		}
		indexBuf, err = d.createAndUploadBuffer("ggmesh_indices", indexData,
			gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		defer d.device.DestroyBuffer(indexBuf)
	}

	entries := []gputypes.BindGroupEntry{{
		Binding: 0,
		Resource: gputypes.BufferBinding{
			Buffer: uniformBuf.NativeHandle(),
			Offset: 0,
			Size:   uint64(len(spec.Uniforms)),
		},
	}}
	if p.spec.Textured {
		t, ok := spec.Texture.(*texture)
		if !ok || t == nil {
			return fmt.Errorf("wgpu: textured draw without texture")
		}
		entries = append(entries,
			gputypes.BindGroupEntry{
				Binding:  1,
				Resource: gputypes.TextureViewBinding{TextureView: t.view.NativeHandle()},
			},
			gputypes.BindGroupEntry{
				Binding:  2,
				Resource: gputypes.SamplerBinding{Sampler: t.sampler.NativeHandle()},
			},
		)
	}

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "ggmesh_bind",
		Layout:  p.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}
	defer d.device.DestroyBindGroup(bindGroup)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "ggmesh_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("ggmesh_draw"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "ggmesh_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       s.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})

	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.SetVertexBuffer(0, vertBuf, 0)
	if indexBuf != nil {
		rp.SetIndexBuffer(indexBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(uint32(len(spec.Indices)), 1, 0, 0, 0) //nolint:gosec // index count fits uint32
	} else {
		rp.Draw(uint32(spec.VertexCount), 1, 0, 0) //nolint:gosec // vertex count fits uint32
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	return d.submitAndWait(cmdBuf)
}

// submitAndWait submits one command buffer and blocks on its fence.
func (d *Device) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	done, err := d.device.Wait(fence, 1, submitTimeout)
	if err != nil {
		return fmt.Errorf("wgpu: fence wait: %w", err)
	}
	if !done {
		return fmt.Errorf("wgpu: fence wait timed out after %v", submitTimeout)
	}
	return nil
}

// ReadPixels copies the top-left width x height region of dst into
// tightly packed RGBA rows. The copy goes through a 256-byte-aligned
// staging buffer; the row padding is stripped and BGRA is swizzled to
// RGBA on the way out.
func (d *Device) ReadPixels(dst driver.Surface, width, height int) ([]byte, error) {
	if d.destroyed {
		return nil, driver.ErrDeviceDestroyed
	}
	s, ok := dst.(*surface)
	if !ok {
		return nil, fmt.Errorf("wgpu: foreign surface %T", dst)
	}
	if width <= 0 || height <= 0 || width > s.width || height > s.height {
		return nil, fmt.Errorf("wgpu: readback region %dx%d outside surface %dx%d",
			width, height, s.width, s.height)
	}

	// The copy always spans full surface rows; cropping to the
	// requested width happens during the unpack below.
	sw := uint32(s.width)  //nolint:gosec // validated positive
	rh := uint32(height)   //nolint:gosec // validated positive
	bytesPerRow := sw * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(rh)

	stagingBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ggmesh_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(stagingBuf)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "ggmesh_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("ggmesh_readback"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	// The render pass leaves the target in attachment layout; the
	// copy needs transfer-source. Transition both ways so the next
	// pass sees the layout it expects.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(s.tex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: rh},
		TextureBase:  hal.ImageCopyTexture{Texture: s.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: sw, Height: rh, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	if err := d.submitAndWait(cmdBuf); err != nil {
		return nil, err
	}

	padded := make([]byte, stagingSize)
	if err := d.queue.ReadBuffer(stagingBuf, 0, padded); err != nil {
		return nil, fmt.Errorf("wgpu: read staging buffer: %w", err)
	}

	// Strip row padding, crop to the requested width, and swizzle
	// BGRA to RGBA.
	out := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		src := padded[y*int(alignedBytesPerRow):]
		row := out[y*width*4:]
		for x := 0; x < width; x++ {
			row[x*4+0] = src[x*4+2]
			row[x*4+1] = src[x*4+1]
			row[x*4+2] = src[x*4+0]
			row[x*4+3] = src[x*4+3]
		}
	}
	return out, nil
}
