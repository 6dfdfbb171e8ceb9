package ggmesh

import "github.com/gogpu/ggmesh/internal/driver"

// BlendMode selects how rendered pixels composite onto the
// destination surface. It is a pass-through parameter: the GPU pass
// itself always renders premultiplied source-over; the mode applies at
// the final copy onto the destination.
type BlendMode uint8

const (
	// BlendSrcOver composites with source-over alpha blending.
	BlendSrcOver BlendMode = iota
	// BlendSrc replaces destination pixels.
	BlendSrc
)

// TileMode is the policy for sampling an image shader outside its
// [0,1] texture coordinate range.
type TileMode uint8

const (
	// TileClamp extends edge pixels.
	TileClamp TileMode = iota
	// TileDecal behaves like clamp at the device level.
	TileDecal
	// TileRepeat wraps coordinates.
	TileRepeat
	// TileMirror wraps coordinates with alternating reflection.
	TileMirror
)

// driverTile converts the public tile mode to the driver enum. The
// orders match by construction.
func (t TileMode) driverTile() driver.TileMode {
	return driver.TileMode(t)
}

// Paint carries the non-geometry parameters of a mesh draw.
type Paint struct {
	// Color is the solid vertex color used when the mesh carries no
	// per-vertex colors.
	Color RGBA

	// Image selects the textured pipeline when non-nil; texture
	// coordinates are derived from vertex positions.
	Image *Pixmap

	// TileX and TileY control sampling outside the image.
	TileX TileMode
	TileY TileMode
}

// NewPaint creates a paint with an opaque black solid color.
func NewPaint() *Paint {
	return &Paint{Color: Black}
}
