package ggmesh

import "math"

// DrawHairline strokes 1-pixel-wide outlines of the triangles in
// positions directly onto dst, walking the triangle list three
// vertices at a time. This path never touches the GPU: a thin unfilled
// outline is cheaper to draw on the CPU than to upload, rasterize, and
// read back.
func DrawHairline(dst *Pixmap, positions []float32, c RGBA) error {
	if dst == nil {
		return ErrNilSurface
	}
	for i := 0; i+5 < len(positions); i += 6 {
		x0 := float64(positions[i])
		y0 := float64(positions[i+1])
		x1 := float64(positions[i+2])
		y1 := float64(positions[i+3])
		x2 := float64(positions[i+4])
		y2 := float64(positions[i+5])

		strokeLine(dst, x0, y0, x1, y1, c)
		strokeLine(dst, x1, y1, x2, y2, c)
		strokeLine(dst, x2, y2, x0, y0, c)
	}
	return nil
}

// strokeLine draws a 1px line by stepping the longer axis one pixel at
// a time. NaN endpoints draw nothing.
func strokeLine(dst *Pixmap, x0, y0, x1, y1 float64, c RGBA) {
	if math.IsNaN(x0) || math.IsNaN(y0) || math.IsNaN(x1) || math.IsNaN(y1) {
		return
	}
	dx := x1 - x0
	dy := y1 - y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		dst.SetPixel(int(math.Round(x0)), int(math.Round(y0)), c)
		return
	}
	sx := dx / float64(steps)
	sy := dy / float64(steps)
	x, y := x0, y0
	for i := 0; i <= steps; i++ {
		dst.SetPixel(int(math.Round(x)), int(math.Round(y)), c)
		x += sx
		y += sy
	}
}
