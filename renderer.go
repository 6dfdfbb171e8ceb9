package ggmesh

import (
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggmesh/internal/driver/wgpu"
)

// The package-level renderer is constructed lazily on the first draw
// so that programs which never draw meshes pay nothing for this
// subsystem. ReleaseAll tears it down; the next draw recreates it.
var (
	engineMu       sync.Mutex
	engine         *renderer
	engineProvider gpucontext.DeviceProvider
)

// SetDeviceProvider installs a shared GPU device from a host
// application (e.g. a gogpu app). It takes effect when the renderer is
// next created: call it before the first draw, or after ReleaseAll.
// Passing nil reverts to opening a standalone device.
func SetDeviceProvider(p gpucontext.DeviceProvider) {
	engineMu.Lock()
	defer engineMu.Unlock()
	engineProvider = p
}

// Initialize eagerly acquires the GPU device and renderer state that a
// first draw would otherwise create lazily. It is safe to call more
// than once.
func Initialize() error {
	_, err := activeEngine()
	return err
}

// ReleaseAll disposes the cached GPU context, its compiled programs,
// and the device. Intended for app-wide GPU resource reclamation;
// drawing remains valid afterwards and reinitializes lazily.
func ReleaseAll() {
	engineMu.Lock()
	defer engineMu.Unlock()

	if engine == nil {
		return
	}
	engine.cache.release()
	engine.dev.Destroy()
	engine = nil
}

// activeEngine returns the renderer, constructing it on first use.
func activeEngine() (*renderer, error) {
	engineMu.Lock()
	defer engineMu.Unlock()

	if engine != nil {
		return engine, nil
	}
	dev, err := wgpu.New(wgpu.Options{Provider: engineProvider})
	if err != nil {
		return nil, err
	}
	engine = &renderer{dev: dev}
	return engine, nil
}

// DrawVertices renders a triangulated mesh into dst, a destination
// surface of canvasW x canvasH pixels. The transform maps mesh
// positions to canvas pixels; paint supplies the solid color or image
// shader; blend controls the final composite onto dst.
//
// Draws whose transformed bounds fall outside the canvas, collapse to
// zero area, or contain NaN positions are silently skipped.
func DrawVertices(dst *Pixmap, canvasW, canvasH int, transform Matrix, mesh *Mesh, blend BlendMode, paint *Paint) error {
	r, err := activeEngine()
	if err != nil {
		return err
	}
	return r.drawVertices(dst, canvasW, canvasH, transform, mesh, blend, paint)
}

// DrawRect renders an axis-aligned rect filled with a gradient into a
// width x height image and returns it. Rect coordinates are in the
// image's pixel space.
func DrawRect(rect Rect, grad Gradient, width, height int) (*Pixmap, error) {
	r, err := activeEngine()
	if err != nil {
		return nil, err
	}
	return r.drawRect(rect, grad, width, height)
}

// DrawRectToImageURL renders the same pixels as DrawRect encoded as a
// PNG data URL string.
func DrawRectToImageURL(rect Rect, grad Gradient, width, height int) (string, error) {
	r, err := activeEngine()
	if err != nil {
		return "", err
	}
	return r.drawRectToImageURL(rect, grad, width, height)
}
