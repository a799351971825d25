package utils

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitRect(t *testing.T) {
	tests := []struct {
		name string
		rect image.Rectangle
		want image.Rectangle
	}{
		{"inside", image.Rect(10, 10, 20, 20), image.Rect(10, 10, 20, 20)},
		{"off left", image.Rect(-5, 10, 5, 20), image.Rect(0, 10, 10, 20)},
		{"off bottom right", image.Rect(95, 45, 105, 55), image.Rect(90, 40, 100, 50)},
		{"too wide", image.Rect(-10, 0, 150, 10), image.Rect(0, 0, 160, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FitRect(tt.rect, 100, 50))
		})
	}
}

func TestClampPoint(t *testing.T) {
	assert.Equal(t, image.Pt(0, 0), ClampPoint(image.Pt(-3, -9), 10, 10))
	assert.Equal(t, image.Pt(9, 4), ClampPoint(image.Pt(12, 4), 10, 10))
	assert.Equal(t, image.Pt(5, 9), ClampPoint(image.Pt(5, 10), 10, 10))
}

func TestSquareAround(t *testing.T) {
	assert.Equal(t, image.Rect(40, 30, 60, 50), SquareAround(image.Pt(50, 40), 10.7))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, image.Pt(15, 25), Center(image.Rect(10, 20, 20, 30)))
	assert.Equal(t, image.Pt(2, 1), Center(image.Rect(0, 0, 5, 3)))
}
