package utils

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointDist(t *testing.T) {
	assert.InDelta(t, 5.0, Point{0, 0}.Dist(Point{3, 4}), 1e-9)
	assert.InDelta(t, 0.0, Point{2, 2}.Dist(Point{2, 2}), 1e-9)
}

func TestBoundingBox(t *testing.T) {
	pts := []Point{{3, 1}, {-2, 4}, {0, 0}, {5, -1}}
	box := BoundingBox(pts)
	assert.Equal(t, Box{MinX: -2, MinY: -1, MaxX: 5, MaxY: 4}, box)
	assert.InDelta(t, 7.0, box.Width(), 1e-9)
	assert.InDelta(t, 5.0, box.Height(), 1e-9)
	assert.InDelta(t, 1.4, box.AspectRatio(), 1e-9)
}

func TestBoundingBoxEmpty(t *testing.T) {
	assert.Equal(t, Box{}, BoundingBox(nil))
}

func TestAspectRatioDegenerate(t *testing.T) {
	box := Box{MinX: 0, MinY: 0, MaxX: 5, MaxY: 0}
	assert.Equal(t, 0.0, box.AspectRatio())
}

func TestBoxToRectClamped(t *testing.T) {
	b := Box{MinX: -2.6, MinY: 1.2, MaxX: 20.9, MaxY: 8.1}
	bounds := image.Rect(0, 0, 10, 10)
	r := b.ToRect(bounds)
	assert.Equal(t, image.Rect(0, 1, 10, 9), r)
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 3, ClampInt(3, 0, 10))
	assert.Equal(t, 0, ClampInt(-5, 0, 10))
	assert.Equal(t, 10, ClampInt(25, 0, 10))
}
