package ggmesh

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/gogpu/ggmesh/internal/driver"
)

// rectIndices is the fixed two-triangle triangulation of the four
// rect corners in top-left, top-right, bottom-right, bottom-left
// order.
var rectIndices = []uint16{0, 1, 2, 2, 3, 0}

// drawRect is the degenerate rect path used for gradient fills: four
// corner vertices, the fixed index triangulation, the canonical rect
// vertex shader, and a caller-selected gradient fragment. The mesh
// preprocessing and culling of drawVertices do not apply; the caller
// already chose the render size.
func (r *renderer) drawRect(rect Rect, grad Gradient, width, height int) (*Pixmap, error) {
	if grad == nil {
		return nil, fmt.Errorf("ggmesh: nil gradient")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if rect.Empty() {
		return NewPixmap(width, height), nil
	}

	ctx, err := r.cache.acquire(r.dev, width, height)
	if err != nil {
		return nil, err
	}

	cp, err := ctx.getOrCreateProgram(grad.program(), "rect_gradient")
	if err != nil {
		return nil, err
	}

	u := cp.newUniforms()
	if err := ctx.setClipTransform(u, Identity()); err != nil {
		return nil, err
	}
	if err := grad.setUniforms(u); err != nil {
		return nil, err
	}

	corners := []float32{
		float32(rect.MinX), float32(rect.MinY),
		float32(rect.MaxX), float32(rect.MinY),
		float32(rect.MaxX), float32(rect.MaxY),
		float32(rect.MinX), float32(rect.MaxY),
	}
	verts := make([]byte, len(corners)*4)
	for i, v := range corners {
		putVertexFloat(verts, i*4, v)
	}

	if err := ctx.draw(driver.DrawSpec{
		Program:     cp.handle,
		Uniforms:    u.data,
		Vertices:    verts,
		VertexCount: 4,
		Indices:     rectIndices,
	}); err != nil {
		return nil, err
	}

	img, err := ctx.readImage()
	if err != nil {
		return nil, err
	}

	out := NewPixmap(width, height)
	copy(out.data, img.Pix)
	return out, nil
}

// drawRectToImageURL renders the same pixels as drawRect and encodes
// them as a PNG data URL.
func (r *renderer) drawRectToImageURL(rect Rect, grad Gradient, width, height int) (string, error) {
	pm, err := r.drawRect(rect, grad, width, height)
	if err != nil {
		return "", err
	}
	return encodeImageURL(pm.ToImage())
}

// encodeImageURL encodes an image as a base64 PNG data URL.
func encodeImageURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("ggmesh: encode image URL: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
