// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ggmesh/internal/driver"
)

// texture is an uploaded sampled texture with its view and sampler.
type texture struct {
	dev     *Device
	tex     hal.Texture
	view    hal.TextureView
	sampler hal.Sampler
}

var _ driver.Texture = (*texture)(nil)

// addressMode maps a tile mode to sampler addressing. Decal has no
// sampler-level equivalent and clamps like TileClamp.
func addressMode(m driver.TileMode) gputypes.AddressMode {
	switch m {
	case driver.TileRepeat:
		return gputypes.AddressModeRepeat
	case driver.TileMirror:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

// NewTexture creates an immutable RGBA texture, uploads the pixels,
// and builds the sampler matching the requested tile modes.
func (d *Device) NewTexture(spec driver.TextureSpec) (driver.Texture, error) {
	if d.destroyed {
		return nil, driver.ErrDeviceDestroyed
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid texture size %dx%d", spec.Width, spec.Height)
	}
	if len(spec.Pixels) < spec.Width*spec.Height*4 {
		return nil, fmt.Errorf("wgpu: texture pixel data too short: %d bytes for %dx%d",
			len(spec.Pixels), spec.Width, spec.Height)
	}

	w := uint32(spec.Width)  //nolint:gosec // validated positive
	h := uint32(spec.Height) //nolint:gosec // validated positive

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         spec.Label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture: %w", err)
	}
	t := &texture{dev: d, tex: tex}

	d.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		spec.Pixels[:spec.Width*spec.Height*4],
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         spec.Label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.Destroy()
		return nil, fmt.Errorf("wgpu: create texture view: %w", err)
	}
	t.view = view

	sampler, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        spec.Label + "_sampler",
		AddressModeU: addressMode(spec.TileX),
		AddressModeV: addressMode(spec.TileY),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		t.Destroy()
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	t.sampler = sampler

	return t, nil
}

// Destroy releases the sampler, view, and texture.
func (t *texture) Destroy() {
	d := t.dev
	if d == nil || d.destroyed {
		return
	}
	if t.sampler != nil {
		d.device.DestroySampler(t.sampler)
		t.sampler = nil
	}
	if t.view != nil {
		d.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		d.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}
