// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package wgpu implements the driver.Device abstraction on the wgpu
// hardware abstraction layer. Shaders arrive as WGSL text and are
// compiled to SPIR-V through naga before module creation.
package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import the Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/ggmesh/internal/driver"
)

// submitTimeout bounds the fence wait after a queue submission.
const submitTimeout = 5 * time.Second

// Options configure device acquisition.
type Options struct {
	// Provider supplies a shared GPU device from a host application
	// (e.g. a gogpu app). When nil, a standalone Vulkan device is
	// opened.
	Provider gpucontext.DeviceProvider
}

// Device implements driver.Device on hal.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	caps driver.Caps

	// external is set when the device came from a provider; shared
	// resources are not destroyed on Close.
	external  bool
	destroyed bool
}

var _ driver.Device = (*Device)(nil)

// New acquires a GPU device. A shared device from opts.Provider is
// preferred; otherwise a standalone Vulkan device is opened, favoring
// discrete and integrated adapters.
func New(opts Options) (*Device, error) {
	d := &Device{
		caps: driver.Caps{
			// Samplers support repeat and mirror addressing natively.
			NativeTileModes: true,
			// Mip chain generation is not implemented; textures are
			// single-level.
			Mipmaps:        false,
			MaxTextureSize: 8192,
		},
	}
	if opts.Provider != nil {
		if err := d.initShared(opts.Provider); err != nil {
			return nil, err
		}
		return d, nil
	}
	if err := d.initStandalone(); err != nil {
		d.Destroy()
		return nil, err
	}
	return d, nil
}

// initShared unwraps hal types from an external device provider.
func (d *Device) initShared(provider gpucontext.DeviceProvider) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("%w: provider does not expose HAL types", driver.ErrNoGPU)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("%w: provider HalDevice is not hal.Device", driver.ErrNoGPU)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("%w: provider HalQueue is not hal.Queue", driver.ErrNoGPU)
	}

	d.device = device
	d.queue = queue
	d.external = true
	return nil
}

// initStandalone opens a Vulkan device without a host application.
func (d *Device) initStandalone() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("%w: vulkan backend not available", driver.ErrNoGPU)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("%w: create instance: %w", driver.ErrNoGPU, err)
	}
	d.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("%w: no GPU adapters found", driver.ErrNoGPU)
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("%w: open device: %w", driver.ErrNoGPU, err)
	}
	d.device = openDev.Device
	d.queue = openDev.Queue

	logger().Info("ggmesh: GPU device opened", "adapter", selected.Info.Name)
	return nil
}

// Caps returns the device capabilities, resolved once at creation.
func (d *Device) Caps() driver.Caps { return d.caps }

// Destroy releases the device and instance unless they are shared.
func (d *Device) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true

	if !d.external {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
}
