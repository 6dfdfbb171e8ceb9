// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build nogpu

// Package wgpu implements the driver.Device abstraction on the wgpu
// hardware abstraction layer. This stub keeps CPU-only builds free of
// the Vulkan backend.
package wgpu

import (
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggmesh/internal/driver"
)

// Options configure device acquisition.
type Options struct {
	// Provider supplies a shared GPU device from a host application.
	Provider gpucontext.DeviceProvider
}

// Device is unavailable under the nogpu build tag.
type Device struct{}

// New always fails under the nogpu build tag.
func New(Options) (*Device, error) {
	return nil, driver.ErrNoGPU
}

// Caps returns empty capabilities.
func (d *Device) Caps() driver.Caps { return driver.Caps{} }

// NewProgram is unavailable.
func (d *Device) NewProgram(driver.ProgramSpec) (driver.Program, error) {
	return nil, driver.ErrNoGPU
}

// NewTexture is unavailable.
func (d *Device) NewTexture(driver.TextureSpec) (driver.Texture, error) {
	return nil, driver.ErrNoGPU
}

// NewSurface is unavailable.
func (d *Device) NewSurface(int, int) (driver.Surface, error) {
	return nil, driver.ErrNoGPU
}

// Render is unavailable.
func (d *Device) Render(driver.Surface, driver.DrawSpec) error {
	return driver.ErrNoGPU
}

// ReadPixels is unavailable.
func (d *Device) ReadPixels(driver.Surface, int, int) ([]byte, error) {
	return nil, driver.ErrNoGPU
}

// Destroy is a no-op.
func (d *Device) Destroy() {}

// SetLogger is a no-op.
func SetLogger(*slog.Logger) {}
