package ggmesh

import "math"

// Rect is an axis-aligned box in float pixel coordinates.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect creates a rect from a corner and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Empty reports whether the rect encloses no area. The comparison is
// written so that any NaN coordinate makes the rect empty.
func (r Rect) Empty() bool {
	return !(r.MaxX > r.MinX && r.MaxY > r.MinY)
}

// triangulate normalizes a vertex mode into an independent triangle
// list. Triangles passes through; fans pair the fixed first vertex
// with consecutive pairs; strips slide a three-vertex window in its
// natural order, with no winding flip between alternating triangles
// (face culling is never enabled, so winding parity cannot matter).
// The result holds 3*triangleCount x,y pairs.
func triangulate(mode VertexMode, positions []float32) []float32 {
	if mode == Triangles {
		return positions
	}
	vertices := len(positions) / 2
	if vertices < 3 {
		return nil
	}
	triangles := vertices - 2
	out := make([]float32, 0, triangles*6)

	switch mode {
	case TriangleFan:
		x0, y0 := positions[0], positions[1]
		for i := 1; i <= triangles; i++ {
			out = append(out,
				x0, y0,
				positions[i*2], positions[i*2+1],
				positions[i*2+2], positions[i*2+3],
			)
		}
	case TriangleStrip:
		for i := 2; i < vertices; i++ {
			out = append(out,
				positions[(i-2)*2], positions[(i-2)*2+1],
				positions[(i-1)*2], positions[(i-1)*2+1],
				positions[i*2], positions[i*2+1],
			)
		}
	}
	return out
}

// computeBounds returns the enclosing box of the positions mapped
// through the affine transform. Any NaN coordinate poisons the whole
// result to an empty rect immediately; downstream culling depends on
// that, so the scan aborts rather than skipping the bad vertex.
func computeBounds(positions []float32, m Matrix) Rect {
	if len(positions) < 2 {
		return Rect{}
	}

	minX := math.Inf(1)
	minY := math.Inf(1)
	maxX := math.Inf(-1)
	maxY := math.Inf(-1)
	for i := 0; i+1 < len(positions); i += 2 {
		x := float64(positions[i])
		y := float64(positions[i+1])
		if math.IsNaN(x) || math.IsNaN(y) {
			return Rect{}
		}
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	// Map the four corners of the local box through the transform and
	// enclose them.
	corners := [4]Point{
		m.TransformPoint(Point{minX, minY}),
		m.TransformPoint(Point{maxX, minY}),
		m.TransformPoint(Point{minX, maxY}),
		m.TransformPoint(Point{maxX, maxY}),
	}
	b := Rect{MinX: corners[0].X, MinY: corners[0].Y, MaxX: corners[0].X, MaxY: corners[0].Y}
	for _, p := range corners[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// viewportPlan is the render-target decision for one draw: skip
// entirely, or render width x height pixels composited back at the
// integer offset.
type viewportPlan struct {
	skip    bool
	offsetX int
	offsetY int
	width   int
	height  int
}

// planViewport culls against the canvas and shrinks the render target
// to the transformed bounds when they are smaller than the canvas on
// both axes. Offsets round down and extents round up, so device
// pixels never lose coverage at crop boundaries.
func planViewport(bounds Rect, canvasW, canvasH int) viewportPlan {
	w := float64(canvasW)
	h := float64(canvasH)

	if bounds.Empty() {
		return viewportPlan{skip: true}
	}
	if bounds.MaxX <= 0 || bounds.MaxY <= 0 || bounds.MinX >= w || bounds.MinY >= h {
		return viewportPlan{skip: true}
	}

	plan := viewportPlan{width: canvasW, height: canvasH}
	if bounds.Width() < w && bounds.Height() < h {
		plan.offsetX = int(math.Floor(bounds.MinX))
		plan.offsetY = int(math.Floor(bounds.MinY))
		plan.width = int(math.Ceil(bounds.MaxX)) - plan.offsetX
		plan.height = int(math.Ceil(bounds.MaxY)) - plan.offsetY
	}
	if plan.width <= 0 || plan.height <= 0 {
		return viewportPlan{skip: true}
	}
	return plan
}
