package ggmesh

import (
	"testing"

	"github.com/gogpu/ggmesh/internal/shader"
)

func TestContextCacheGrowth(t *testing.T) {
	dev := newFakeDevice()
	var cc contextCache

	// First acquire allocates at the requested size.
	ctx, err := cc.acquire(dev, 200, 100)
	if err != nil {
		t.Fatalf("acquire(200, 100) = %v", err)
	}
	if len(dev.surfaces) != 1 {
		t.Fatalf("surfaces allocated = %d, want 1", len(dev.surfaces))
	}
	if s := dev.surfaces[0]; s.width != 200 || s.height != 100 {
		t.Errorf("surface = %dx%d, want 200x100", s.width, s.height)
	}

	// Growing one axis disposes the context and reallocates at the
	// per-axis maximum, not the request.
	ctx2, err := cc.acquire(dev, 100, 400)
	if err != nil {
		t.Fatalf("acquire(100, 400) = %v", err)
	}
	if ctx2 == ctx {
		t.Error("growth should replace the context")
	}
	if dev.surfaceDestroys != 1 {
		t.Errorf("surface destroys = %d, want 1", dev.surfaceDestroys)
	}
	if len(dev.surfaces) != 2 {
		t.Fatalf("surfaces allocated = %d, want 2", len(dev.surfaces))
	}
	if s := dev.surfaces[1]; s.width != 200 || s.height != 400 {
		t.Errorf("grown surface = %dx%d, want 200x400", s.width, s.height)
	}

	// A request under the cap reuses the context with a smaller
	// viewport.
	ctx3, err := cc.acquire(dev, 150, 150)
	if err != nil {
		t.Fatalf("acquire(150, 150) = %v", err)
	}
	if ctx3 != ctx2 {
		t.Error("request within cap should reuse the context")
	}
	if len(dev.surfaces) != 2 || dev.surfaceDestroys != 1 {
		t.Errorf("surfaces = %d, destroys = %d, want 2 and 1",
			len(dev.surfaces), dev.surfaceDestroys)
	}
	if ctx3.width != 150 || ctx3.height != 150 {
		t.Errorf("viewport = %dx%d, want 150x150", ctx3.width, ctx3.height)
	}
}

func TestContextCacheRelease(t *testing.T) {
	dev := newFakeDevice()
	var cc contextCache

	if _, err := cc.acquire(dev, 64, 64); err != nil {
		t.Fatalf("acquire() = %v", err)
	}
	cc.release()

	if dev.surfaceDestroys != 1 {
		t.Errorf("surface destroys = %d, want 1", dev.surfaceDestroys)
	}
	if cc.maxWidth != 0 || cc.maxHeight != 0 {
		t.Errorf("caps after release = %dx%d, want 0x0", cc.maxWidth, cc.maxHeight)
	}

	// Release is idempotent and a later acquire starts a fresh cycle at
	// the requested size.
	cc.release()
	if dev.surfaceDestroys != 1 {
		t.Errorf("double release destroys = %d, want 1", dev.surfaceDestroys)
	}

	if _, err := cc.acquire(dev, 16, 16); err != nil {
		t.Fatalf("acquire() after release = %v", err)
	}
	if s := dev.surfaces[len(dev.surfaces)-1]; s.width != 16 || s.height != 16 {
		t.Errorf("surface after release = %dx%d, want 16x16", s.width, s.height)
	}
}

func TestContextCacheReleaseDestroysPrograms(t *testing.T) {
	dev := newFakeDevice()
	var cc contextCache

	ctx, err := cc.acquire(dev, 32, 32)
	if err != nil {
		t.Fatalf("acquire() = %v", err)
	}
	if _, err := ctx.getOrCreateProgram(shader.Solid(), "solid"); err != nil {
		t.Fatalf("getOrCreateProgram() = %v", err)
	}

	cc.release()
	if dev.programDestroys != 1 {
		t.Errorf("program destroys = %d, want 1", dev.programDestroys)
	}
}
