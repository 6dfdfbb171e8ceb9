package ggmesh

import (
	"math"
	"testing"
)

const matrixEpsilon = 1e-9

func pointsClose(a, b Point) bool {
	return math.Abs(a.X-b.X) < matrixEpsilon && math.Abs(a.Y-b.Y) < matrixEpsilon
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		p    Point
		want Point
	}{
		{"identity", Identity(), Point{3, 4}, Point{3, 4}},
		{"translate", Translate(10, 20), Point{1, 2}, Point{11, 22}},
		{"scale", Scale(2, 3), Point{4, 5}, Point{8, 15}},
		{"rotate 90", Rotate(math.Pi / 2), Point{1, 0}, Point{0, 1}},
		{"rotate 180", Rotate(math.Pi), Point{1, 0}, Point{-1, 0}},
		{
			"scale then translate",
			Translate(10, 0).Multiply(Scale(2, 2)),
			Point{3, 3}, Point{16, 6},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if !pointsClose(got, tt.want) {
				t.Errorf("TransformPoint(%+v) = %+v, want %+v", tt.p, got, tt.want)
			}
		})
	}
}

func TestMultiplyOrder(t *testing.T) {
	// Multiply applies the right operand first.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Point{1, 1})
	want := Point{12, 2}
	if !pointsClose(got, want) {
		t.Errorf("translate*scale point = %+v, want %+v", got, want)
	}
}

func TestInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(5, -7)},
		{"scale", Scale(2, 0.5)},
		{"rotate", Rotate(1.1)},
		{"composed", Translate(3, 4).Multiply(Rotate(0.7)).Multiply(Scale(2, 3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Point{3.5, -2.25}
			back := tt.m.Invert().TransformPoint(tt.m.TransformPoint(p))
			if !pointsClose(back, p) {
				t.Errorf("inverse round trip = %+v, want %+v", back, p)
			}
		})
	}

	t.Run("singular returns identity", func(t *testing.T) {
		if got := Scale(0, 0).Invert(); !got.IsIdentity() {
			t.Errorf("Invert(singular) = %+v, want identity", got)
		}
	})
}

func TestIsIdentity(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"scale 1,1", Scale(1, 1), true},
		{"translate", Translate(1, 0), false},
		{"scale", Scale(2, 1), false},
		{"zero matrix", Matrix{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsIdentity(); got != tt.want {
				t.Errorf("Matrix%+v.IsIdentity() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestMat4Embedding(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	got := m.mat4()

	// Column-major: first column (a, d), second (b, e), translation in
	// the fourth.
	want := [16]float32{
		1, 4, 0, 0,
		2, 5, 0, 0,
		0, 0, 1, 0,
		3, 6, 0, 1,
	}
	if got != want {
		t.Errorf("mat4() = %v, want %v", got, want)
	}
}
