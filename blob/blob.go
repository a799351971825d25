// Package blob locates the dominant connected region of a binary mask.
package blob

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"balltracker/types"
)

// Locator finds the largest external contour of a mask and reports its
// moments centroid, rejecting regions whose enclosing circle is too small.
type Locator struct {
	MinRadius float64
}

// NewLocator creates a locator from configuration
func NewLocator(config types.BlobConfig) Locator {
	return Locator{MinRadius: config.MinRadius}
}

// Locate returns the detection for mask, or false when the mask has no
// region or the largest region's enclosing circle radius is <= MinRadius.
func (l Locator) Locate(mask gocv.Mat) (types.Detection, bool) {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	largest := Largest(contours)
	if largest < 0 {
		return types.Detection{}, false
	}

	x, y, radius := gocv.MinEnclosingCircle(contours.At(largest))
	if !Accept(float64(radius), l.MinRadius) {
		return types.Detection{}, false
	}

	region := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), mask.Rows(), mask.Cols(), gocv.MatTypeCV8UC1)
	defer region.Close()
	gocv.DrawContours(&region, contours, largest, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	center, ok := Centroid(gocv.Moments(region, true))
	if !ok {
		return types.Detection{}, false
	}

	return types.Detection{
		Center: center,
		Circle: image.Pt(int(x), int(y)),
		Radius: float64(radius),
	}, true
}

// Largest returns the index of the contour with maximum area, the first
// one on ties, or -1 when there are none.
func Largest(contours gocv.PointsVector) int {
	largest := -1
	var largestArea float64
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if largest < 0 || area > largestArea {
			largest = i
			largestArea = area
		}
	}
	return largest
}

// Accept reports whether an enclosing circle radius is above the noise floor
func Accept(radius, minRadius float64) bool {
	return radius > minRadius
}

// Centroid derives the integer centroid (m10/m00, m01/m00) from raster
// moments. It reports false for an empty region.
func Centroid(m map[string]float64) (image.Point, bool) {
	m00 := m["m00"]
	if m00 <= 0 {
		return image.Point{}, false
	}
	return image.Pt(int(m["m10"]/m00), int(m["m01"]/m00)), true
}
