package ggmesh

import "fmt"

// VertexMode describes how a mesh's positions form triangles.
type VertexMode uint8

const (
	// Triangles treats every three vertices as an independent triangle.
	Triangles VertexMode = iota
	// TriangleFan forms triangles that all share the first vertex.
	TriangleFan
	// TriangleStrip forms triangles over a sliding window of the last
	// three vertices.
	TriangleStrip
)

// String returns the mode name.
func (m VertexMode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case TriangleFan:
		return "triangleFan"
	case TriangleStrip:
		return "triangleStrip"
	}
	return fmt.Sprintf("VertexMode(%d)", uint8(m))
}

// Mesh is caller-owned triangulated geometry: a flat list of (x, y)
// positions with optional per-vertex packed colors and optional 16-bit
// indices. A mesh is immutable once constructed and consumed read-only
// by the pipeline.
type Mesh struct {
	Mode VertexMode

	// Positions holds x,y pairs; the length is even.
	Positions []float32

	// Colors optionally holds one packed RGBA value per vertex
	// (see RGBA.Packed). When nil, the paint's solid color is used.
	Colors []uint32

	// Indices optionally selects vertices for an indexed draw.
	Indices []uint16
}

// VertexCount returns the number of vertices in the position list.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 2
}

// validate checks the structural invariants. Degenerate but
// well-formed meshes (fewer than 3 vertices) are not an error; draws
// skip them silently.
func (m *Mesh) validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil mesh", ErrInvalidMesh)
	}
	if len(m.Positions)%2 != 0 {
		return fmt.Errorf("%w: odd position count %d", ErrInvalidMesh, len(m.Positions))
	}
	vertices := m.VertexCount()
	if m.Colors != nil && len(m.Colors) != vertices {
		return fmt.Errorf("%w: %d colors for %d vertices", ErrInvalidMesh, len(m.Colors), vertices)
	}
	for _, idx := range m.Indices {
		if int(idx) >= vertices {
			return fmt.Errorf("%w: index %d out of range for %d vertices", ErrInvalidMesh, idx, vertices)
		}
	}
	return nil
}

// degenerate reports whether the mesh has too few vertices to form a
// triangle. Degenerate draws are silent no-ops.
func (m *Mesh) degenerate() bool {
	if len(m.Indices) > 0 {
		return len(m.Indices) < 3
	}
	return m.VertexCount() < 3
}
