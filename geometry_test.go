package ggmesh

import (
	"math"
	"reflect"
	"testing"
)

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name      string
		mode      VertexMode
		positions []float32
		want      []float32
	}{
		{
			name:      "triangles pass through",
			mode:      Triangles,
			positions: []float32{0, 0, 1, 0, 0, 1},
			want:      []float32{0, 0, 1, 0, 0, 1},
		},
		{
			name:      "fan shares first vertex",
			mode:      TriangleFan,
			positions: []float32{0, 0, 1, 0, 1, 1, 0, 1},
			want: []float32{
				0, 0, 1, 0, 1, 1,
				0, 0, 1, 1, 0, 1,
			},
		},
		{
			name:      "strip slides window without reordering",
			mode:      TriangleStrip,
			positions: []float32{0, 0, 1, 0, 0, 1, 1, 1, 0, 2},
			want: []float32{
				0, 0, 1, 0, 0, 1,
				1, 0, 0, 1, 1, 1,
				0, 1, 1, 1, 0, 2,
			},
		},
		{
			name:      "fan too few vertices",
			mode:      TriangleFan,
			positions: []float32{0, 0, 1, 0},
			want:      nil,
		},
		{
			name:      "strip too few vertices",
			mode:      TriangleStrip,
			positions: []float32{0, 0},
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := triangulate(tt.mode, tt.positions)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("triangulate(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestTriangulateColors(t *testing.T) {
	tests := []struct {
		name   string
		mode   VertexMode
		colors []uint32
		want   []uint32
	}{
		{"nil colors", TriangleFan, nil, nil},
		{"triangles pass through", Triangles, []uint32{1, 2, 3}, []uint32{1, 2, 3}},
		{"fan expansion", TriangleFan, []uint32{1, 2, 3, 4}, []uint32{1, 2, 3, 1, 3, 4}},
		{"strip expansion", TriangleStrip, []uint32{1, 2, 3, 4}, []uint32{1, 2, 3, 2, 3, 4}},
		{"too few vertices", TriangleStrip, []uint32{1, 2}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := triangulateColors(tt.mode, tt.colors)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("triangulateColors(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestComputeBounds(t *testing.T) {
	nan := float32(math.NaN())

	tests := []struct {
		name      string
		positions []float32
		transform Matrix
		want      Rect
	}{
		{
			name:      "identity",
			positions: []float32{1, 2, 5, 8, 3, 4},
			transform: Identity(),
			want:      Rect{MinX: 1, MinY: 2, MaxX: 5, MaxY: 8},
		},
		{
			name:      "scale and translate",
			positions: []float32{0, 0, 2, 2},
			transform: Translate(10, 20).Multiply(Scale(3, 3)),
			want:      Rect{MinX: 10, MinY: 20, MaxX: 16, MaxY: 26},
		},
		{
			name:      "rotation encloses corners",
			positions: []float32{0, 0, 2, 0, 2, 2, 0, 2},
			transform: Rotate(math.Pi / 2),
			want:      Rect{MinX: -2, MinY: 0, MaxX: 0, MaxY: 2},
		},
		{
			name:      "empty positions",
			positions: nil,
			transform: Identity(),
			want:      Rect{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeBounds(tt.positions, tt.transform)
			const epsilon = 1e-6
			if math.Abs(got.MinX-tt.want.MinX) > epsilon ||
				math.Abs(got.MinY-tt.want.MinY) > epsilon ||
				math.Abs(got.MaxX-tt.want.MaxX) > epsilon ||
				math.Abs(got.MaxY-tt.want.MaxY) > epsilon {
				t.Errorf("computeBounds() = %+v, want %+v", got, tt.want)
			}
		})
	}

	t.Run("nan position empties the whole result", func(t *testing.T) {
		got := computeBounds([]float32{0, 0, 100, 100, nan, 5}, Identity())
		if !got.Empty() {
			t.Errorf("computeBounds() with NaN = %+v, want empty", got)
		}
	})
}

func TestRectEmpty(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"normal rect", NewRect(0, 0, 10, 10), false},
		{"zero rect", Rect{}, true},
		{"zero width", Rect{MinX: 5, MinY: 0, MaxX: 5, MaxY: 10}, true},
		{"inverted", Rect{MinX: 10, MinY: 10, MaxX: 0, MaxY: 0}, true},
		{"nan min", Rect{MinX: nan, MinY: 0, MaxX: 10, MaxY: 10}, true},
		{"nan max", Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: nan}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Empty(); got != tt.want {
				t.Errorf("Rect%+v.Empty() = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestPlanViewport(t *testing.T) {
	tests := []struct {
		name   string
		bounds Rect
		w, h   int
		want   viewportPlan
	}{
		{
			name:   "empty bounds skip",
			bounds: Rect{},
			w:      100, h: 100,
			want: viewportPlan{skip: true},
		},
		{
			name:   "fully left of canvas",
			bounds: Rect{MinX: -20, MinY: 10, MaxX: -5, MaxY: 30},
			w:      100, h: 100,
			want: viewportPlan{skip: true},
		},
		{
			name:   "fully below canvas",
			bounds: Rect{MinX: 10, MinY: 150, MaxX: 30, MaxY: 180},
			w:      100, h: 100,
			want: viewportPlan{skip: true},
		},
		{
			name:   "touching right edge only",
			bounds: Rect{MinX: 100, MinY: 10, MaxX: 120, MaxY: 30},
			w:      100, h: 100,
			want: viewportPlan{skip: true},
		},
		{
			name:   "covers canvas",
			bounds: Rect{MinX: -10, MinY: -10, MaxX: 200, MaxY: 200},
			w:      100, h: 100,
			want: viewportPlan{width: 100, height: 100},
		},
		{
			name:   "smaller on one axis keeps full canvas",
			bounds: Rect{MinX: 10, MinY: -5, MaxX: 30, MaxY: 150},
			w:      100, h: 100,
			want: viewportPlan{width: 100, height: 100},
		},
		{
			name:   "smaller both axes shrinks",
			bounds: Rect{MinX: 10.5, MinY: 20.5, MaxX: 40.25, MaxY: 50.75},
			w:      100, h: 100,
			want: viewportPlan{offsetX: 10, offsetY: 20, width: 31, height: 31},
		},
		{
			name:   "fractional sliver keeps coverage",
			bounds: Rect{MinX: 0.9, MinY: 0.9, MaxX: 1.0, MaxY: 1.0},
			w:      100, h: 100,
			want: viewportPlan{offsetX: 0, offsetY: 0, width: 1, height: 1},
		},
		{
			name:   "partially offscreen negative origin",
			bounds: Rect{MinX: -10.5, MinY: -3.25, MaxX: 20, MaxY: 30},
			w:      100, h: 100,
			want: viewportPlan{offsetX: -11, offsetY: -4, width: 31, height: 34},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planViewport(tt.bounds, tt.w, tt.h)
			if got != tt.want {
				t.Errorf("planViewport(%+v, %d, %d) = %+v, want %+v",
					tt.bounds, tt.w, tt.h, got, tt.want)
			}
		})
	}
}
