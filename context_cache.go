package ggmesh

import (
	"sync"

	"github.com/gogpu/ggmesh/internal/driver"
)

// contextCache reuses one GPU context across draw calls. The cached
// surface grows monotonically to the largest size ever requested and
// never shrinks, amortizing reallocation across draws of varying
// size. Growth on either axis disposes the current context (and with
// it the program cache) and lazily allocates a replacement at the new
// cap; requests that fit reuse the context with its logical viewport
// reset.
//
// Draws are sequential by contract, but the mutex keeps the cache
// safe when callers draw from more than one goroutine.
type contextCache struct {
	mu sync.Mutex

	ctx       *gpuContext
	maxWidth  int
	maxHeight int
}

// acquire returns a context whose surface is at least width x height,
// with the logical viewport set to exactly that size.
func (cc *contextCache) acquire(dev driver.Device, width, height int) (*gpuContext, error) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if width > cc.maxWidth || height > cc.maxHeight {
		if cc.ctx != nil {
			cc.ctx.destroy()
			cc.ctx = nil
		}
		cc.maxWidth = max(cc.maxWidth, width)
		cc.maxHeight = max(cc.maxHeight, height)
	}

	if cc.ctx == nil {
		ctx, err := newGpuContext(dev, cc.maxWidth, cc.maxHeight)
		if err != nil {
			return nil, err
		}
		cc.ctx = ctx
		logger().Debug("ggmesh: context allocated",
			"width", cc.maxWidth, "height", cc.maxHeight)
	}

	cc.ctx.setViewport(width, height)
	return cc.ctx, nil
}

// release disposes the cached context and clears the size cap.
// Intended for explicit resource-pressure or shutdown signals, not
// per-draw use; the next acquire starts a fresh growth cycle.
func (cc *contextCache) release() {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.ctx != nil {
		cc.ctx.destroy()
		cc.ctx = nil
	}
	cc.maxWidth = 0
	cc.maxHeight = 0
}
