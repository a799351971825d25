// Package segment turns frames into binary masks of a configured HSV range.
package segment

import (
	"image"

	"gocv.io/x/gocv"

	"balltracker/types"
)

// Segmenter thresholds HSV frames and cleans the result with erosion
// followed by dilation.
type Segmenter struct {
	config types.SegmentConfig
	kernel gocv.Mat
}

// New creates a segmenter. Close must be called to release the kernel.
func New(config types.SegmentConfig) *Segmenter {
	size := config.KernelSize
	if size < 1 {
		size = 3
	}
	return &Segmenter{
		config: config,
		kernel: gocv.GetStructuringElement(gocv.MorphRect, image.Pt(size, size)),
	}
}

// Close releases the structuring element
func (s *Segmenter) Close() error {
	return s.kernel.Close()
}

// HSV converts a BGR frame into HSV space
func (s *Segmenter) HSV(frame gocv.Mat, dst *gocv.Mat) {
	gocv.CvtColor(frame, dst, gocv.ColorBGRToHSV)
}

// Mask writes a binary mask of the pixels of hsv that fall inside the
// inclusive bounds of spec. The mask always has the dimensions of hsv.
func (s *Segmenter) Mask(hsv gocv.Mat, spec types.ColorSpec, dst *gocv.Mat) {
	lower := gocv.NewScalar(float64(spec.Lower.H), float64(spec.Lower.S), float64(spec.Lower.V), 0)
	upper := gocv.NewScalar(float64(spec.Upper.H), float64(spec.Upper.S), float64(spec.Upper.V), 0)
	gocv.InRangeWithScalar(hsv, lower, upper, dst)

	for i := 0; i < s.config.ErodeIterations; i++ {
		gocv.Erode(*dst, dst, s.kernel)
	}
	for i := 0; i < s.config.DilateIterations; i++ {
		gocv.Dilate(*dst, dst, s.kernel)
	}
}
