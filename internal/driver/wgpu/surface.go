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

// surface is an offscreen BGRA render target. Surfaces have fixed
// dimensions; growth allocates a new surface instead of resizing.
type surface struct {
	dev    *Device
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
}

var _ driver.Surface = (*surface)(nil)

// NewSurface allocates a render target texture and its attachment view.
func (d *Device) NewSurface(width, height int) (driver.Surface, error) {
	if d.destroyed {
		return nil, driver.ErrDeviceDestroyed
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid surface size %dx%d", width, height)
	}
	if width > d.caps.MaxTextureSize || height > d.caps.MaxTextureSize {
		return nil, fmt.Errorf("wgpu: surface size %dx%d exceeds device limit %d",
			width, height, d.caps.MaxTextureSize)
	}

	w := uint32(width)  //nolint:gosec // validated positive
	h := uint32(height) //nolint:gosec // validated positive

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "ggmesh_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create render target: %w", err)
	}

	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "ggmesh_target_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create render target view: %w", err)
	}

	return &surface{dev: d, tex: tex, view: view, width: width, height: height}, nil
}

func (s *surface) Width() int  { return s.width }
func (s *surface) Height() int { return s.height }

// Destroy releases the view and texture.
func (s *surface) Destroy() {
	d := s.dev
	if d == nil || d.destroyed {
		return
	}
	if s.view != nil {
		d.device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.tex != nil {
		d.device.DestroyTexture(s.tex)
		s.tex = nil
	}
}
