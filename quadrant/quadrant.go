// Package quadrant partitions a frame into a fixed grid of labelled regions.
package quadrant

import (
	"fmt"
	"image"
)

// None is the label for a point outside every region
const None = 0

// Grid is a cols x rows partition of a width x height frame.
// Labels run row-major from 1, so a 2x2 grid yields
//
//	1 | 2
//	--+--
//	3 | 4
type Grid struct {
	width, height int
	xs, ys        []int // boundaries, len cols+1 and rows+1
}

// NewGrid computes the region boundaries once for the run. Boundary i along
// an axis is i*size/n with integer division, so on odd sizes the middle
// pixel belongs to the right/bottom region.
func NewGrid(width, height, cols, rows int) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if cols < 1 || rows < 1 || cols > width || rows > height {
		return Grid{}, fmt.Errorf("invalid grid %dx%d for frame %dx%d", cols, rows, width, height)
	}

	g := Grid{
		width:  width,
		height: height,
		xs:     make([]int, cols+1),
		ys:     make([]int, rows+1),
	}
	for i := range g.xs {
		g.xs[i] = i * width / cols
	}
	for j := range g.ys {
		g.ys[j] = j * height / rows
	}
	return g, nil
}

// Cols returns the number of columns
func (g Grid) Cols() int { return len(g.xs) - 1 }

// Rows returns the number of rows
func (g Grid) Rows() int { return len(g.ys) - 1 }

// Labels returns every label in ascending order
func (g Grid) Labels() []int {
	labels := make([]int, 0, g.Cols()*g.Rows())
	for l := 1; l <= g.Cols()*g.Rows(); l++ {
		labels = append(labels, l)
	}
	return labels
}

// Rect returns the half-open rectangle for a label, or an empty rectangle
// for an unknown label.
func (g Grid) Rect(label int) image.Rectangle {
	if label < 1 || label > g.Cols()*g.Rows() {
		return image.Rectangle{}
	}
	col := (label - 1) % g.Cols()
	row := (label - 1) / g.Cols()
	return image.Rect(g.xs[col], g.ys[row], g.xs[col+1], g.ys[row+1])
}

// Classify returns the label of the region containing p, or None when p
// lies outside the frame.
func (g Grid) Classify(p image.Point) int {
	if p.X < 0 || p.Y < 0 || p.X >= g.width || p.Y >= g.height {
		return None
	}
	col := span(g.xs, p.X)
	row := span(g.ys, p.Y)
	return row*g.Cols() + col + 1
}

// span finds i with bounds[i] <= v < bounds[i+1]
func span(bounds []int, v int) int {
	i := 0
	for i < len(bounds)-2 && v >= bounds[i+1] {
		i++
	}
	return i
}
