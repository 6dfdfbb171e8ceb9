package ggmesh

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/gogpu/ggmesh/internal/driver"
	"github.com/gogpu/ggmesh/internal/shader"
)

// renderer owns the GPU device and the context cache behind the
// package-level draw API. Draw calls are terminal on the first
// applicable exit: geometry culling skips before any GPU work, and a
// shader or uniform failure aborts only the draw that hit it.
type renderer struct {
	dev   driver.Device
	cache contextCache
}

// drawVertices renders a mesh into dst.
func (r *renderer) drawVertices(dst *Pixmap, canvasW, canvasH int, transform Matrix, mesh *Mesh, blend BlendMode, paint *Paint) error {
	if dst == nil {
		return ErrNilSurface
	}
	if err := mesh.validate(); err != nil {
		return err
	}
	if paint == nil {
		paint = NewPaint()
	}
	if mesh.degenerate() || canvasW <= 0 || canvasH <= 0 {
		return nil
	}

	// Indexed meshes upload positions as given; unindexed fans and
	// strips are normalized to an independent triangle list first,
	// expanding per-vertex colors the same way.
	positions := mesh.Positions
	colors := mesh.Colors
	if len(mesh.Indices) == 0 && mesh.Mode != Triangles {
		positions = triangulate(mesh.Mode, mesh.Positions)
		colors = triangulateColors(mesh.Mode, mesh.Colors)
	}

	bounds := computeBounds(positions, transform)
	plan := planViewport(bounds, canvasW, canvasH)
	if plan.skip {
		logger().Debug("ggmesh: draw skipped", "canvasW", canvasW, "canvasH", canvasH)
		return nil
	}

	ctx, err := r.cache.acquire(r.dev, plan.width, plan.height)
	if err != nil {
		return err
	}

	// Shift the transform so geometry lands at the render target
	// origin; the composite below restores the device-pixel offset.
	shifted := Translate(float64(-plan.offsetX), float64(-plan.offsetY)).Multiply(transform)

	var img *image.RGBA
	if paint.Image != nil {
		img, err = r.drawTextured(ctx, shifted, positions, mesh.Indices, paint)
	} else {
		img, err = r.drawSolid(ctx, shifted, positions, colors, mesh.Indices, paint.Color)
	}
	if err != nil {
		return err
	}

	dst.drawImage(img, plan.offsetX, plan.offsetY, blend)
	return nil
}

// triangulateColors expands per-vertex colors with the same fan or
// strip walk as triangulate, keeping colors parallel to positions.
func triangulateColors(mode VertexMode, colors []uint32) []uint32 {
	if colors == nil || mode == Triangles {
		return colors
	}
	vertices := len(colors)
	if vertices < 3 {
		return nil
	}
	out := make([]uint32, 0, (vertices-2)*3)
	switch mode {
	case TriangleFan:
		for i := 1; i+1 < vertices; i++ {
			out = append(out, colors[0], colors[i], colors[i+1])
		}
	case TriangleStrip:
		for i := 2; i < vertices; i++ {
			out = append(out, colors[i-2], colors[i-1], colors[i])
		}
	}
	return out
}

// putVertexFloat writes one float32 into an interleaved vertex buffer.
func putVertexFloat(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
}

// drawSolid runs the per-vertex-color pipeline: positions plus packed
// RGBA attributes, with the solid paint color replicated when the mesh
// carries no colors. Color values pass through the shader untouched.
func (r *renderer) drawSolid(ctx *gpuContext, transform Matrix, positions []float32, colors []uint32, indices []uint16, solid RGBA) (*image.RGBA, error) {
	cp, err := ctx.getOrCreateProgram(shader.Solid(), "mesh_solid")
	if err != nil {
		return nil, err
	}

	u := cp.newUniforms()
	if err := ctx.setClipTransform(u, transform); err != nil {
		return nil, err
	}

	vertexCount := len(positions) / 2
	packed := solid.Packed()
	verts := make([]byte, vertexCount*cp.stride)
	for i := 0; i < vertexCount; i++ {
		off := i * cp.stride
		putVertexFloat(verts, off, positions[i*2])
		putVertexFloat(verts, off+4, positions[i*2+1])
		c := packed
		if colors != nil {
			c = colors[i]
		}
		binary.LittleEndian.PutUint32(verts[off+8:], c)
	}

	if err := ctx.draw(driver.DrawSpec{
		Program:     cp.handle,
		Uniforms:    u.data,
		Vertices:    verts,
		VertexCount: vertexCount,
		Indices:     indices,
	}); err != nil {
		return nil, err
	}
	return ctx.readImage()
}

// drawTextured runs the image-shader pipeline: the vertex stage
// derives texture coordinates from positions and the texel-scale
// uniform, and tile addressing is native or shader-synthesized per
// the device capabilities.
func (r *renderer) drawTextured(ctx *gpuContext, transform Matrix, positions []float32, indices []uint16, paint *Paint) (*image.RGBA, error) {
	caps := r.dev.Caps()
	cp, err := ctx.getOrCreateProgram(
		shader.Textured(paint.TileX.driverTile(), paint.TileY.driverTile(), caps),
		"mesh_textured")
	if err != nil {
		return nil, err
	}

	img := paint.Image
	u := cp.newUniforms()
	if err := ctx.setClipTransform(u, transform); err != nil {
		return nil, err
	}
	if err := u.setVec4("texture_scale",
		1/float32(img.Width()), 1/float32(img.Height()), 0, 0); err != nil {
		return nil, err
	}

	texSpec := driver.TextureSpec{
		Label:   "mesh_image",
		Width:   img.Width(),
		Height:  img.Height(),
		Pixels:  img.Data(),
		Mipmaps: caps.Mipmaps,
	}
	if caps.NativeTileModes {
		texSpec.TileX = paint.TileX.driverTile()
		texSpec.TileY = paint.TileY.driverTile()
	}
	tex, err := r.dev.NewTexture(texSpec)
	if err != nil {
		return nil, err
	}
	defer tex.Destroy()

	vertexCount := len(positions) / 2
	verts := make([]byte, vertexCount*cp.stride)
	for i := 0; i < vertexCount; i++ {
		off := i * cp.stride
		putVertexFloat(verts, off, positions[i*2])
		putVertexFloat(verts, off+4, positions[i*2+1])
	}

	if err := ctx.draw(driver.DrawSpec{
		Program:     cp.handle,
		Uniforms:    u.data,
		Vertices:    verts,
		VertexCount: vertexCount,
		Indices:     indices,
		Texture:     tex,
	}); err != nil {
		return nil, err
	}
	return ctx.readImage()
}
