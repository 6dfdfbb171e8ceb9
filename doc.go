// Package ggmesh provides GPU-accelerated triangle mesh rendering for Go.
//
// # Overview
//
// ggmesh renders pre-triangulated 2D meshes on the GPU and composites
// the result onto CPU-side pixel surfaces. It is built on gogpu/wgpu
// and designed to integrate with the GoGPU ecosystem: a host app can
// share its device via SetDeviceProvider, or ggmesh opens its own.
//
// # Quick Start
//
//	import "github.com/gogpu/ggmesh"
//
//	dst := ggmesh.NewPixmap(512, 512)
//
//	mesh := &ggmesh.Mesh{
//		Mode:      ggmesh.Triangles,
//		Positions: []float32{0, 0, 256, 0, 128, 256},
//	}
//	paint := ggmesh.NewPaint()
//	paint.Color = ggmesh.Red
//
//	err := ggmesh.DrawVertices(dst, 512, 512, ggmesh.Identity(),
//		mesh, ggmesh.BlendSrcOver, paint)
//	if err != nil {
//		log.Fatal(err)
//	}
//	dst.SavePNG("output.png")
//
// # Drawing Paths
//
//   - DrawVertices: triangle lists, fans, and strips with per-vertex
//     colors or an image shader, composited into a Pixmap
//   - DrawRect / DrawRectToImageURL: gradient-filled rects rendered to
//     a standalone image or a PNG data URL
//   - DrawHairline: CPU-side one-pixel triangle outlines
//
// # Resource Management
//
// GPU state is created lazily on the first draw and reused across
// draws: the render target grows monotonically to the largest size
// requested, and compiled shader programs are cached by source.
// ReleaseAll frees everything; the next draw starts fresh.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Mesh positions are mapped to canvas pixels by the affine transform
// passed to DrawVertices.
package ggmesh
