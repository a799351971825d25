package utils

import (
	"image"
	"math"
)

// FitRect shifts a rectangle so it stays within the image bounds, keeping
// its size. Rectangles larger than the image are aligned to the top-left.
func FitRect(rect image.Rectangle, imgWidth, imgHeight int) image.Rectangle {
	if rect.Max.X > imgWidth {
		rect = rect.Add(image.Pt(imgWidth-rect.Max.X, 0))
	}
	if rect.Max.Y > imgHeight {
		rect = rect.Add(image.Pt(0, imgHeight-rect.Max.Y))
	}
	if rect.Min.X < 0 {
		rect = rect.Add(image.Pt(-rect.Min.X, 0))
	}
	if rect.Min.Y < 0 {
		rect = rect.Add(image.Pt(0, -rect.Min.Y))
	}
	return rect
}

// ClampPoint moves a point onto the nearest pixel inside the image
func ClampPoint(p image.Point, imgWidth, imgHeight int) image.Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.X > imgWidth-1 {
		p.X = imgWidth - 1
	}
	if p.Y > imgHeight-1 {
		p.Y = imgHeight - 1
	}
	return p
}

// SquareAround returns the square of half-size radius centered on p, with
// the radius rounded down to whole pixels.
func SquareAround(p image.Point, radius float64) image.Rectangle {
	r := int(math.Floor(radius))
	return image.Rect(p.X-r, p.Y-r, p.X+r, p.Y+r)
}

// Center returns the center pixel of a rectangle
func Center(rect image.Rectangle) image.Point {
	return image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
}
