package utils

import (
	"image"
	"image/draw"
)

// ToGray converts any image to *image.Gray with bounds anchored at the origin.
// The input is never mutated; if it already is a gray image at the origin, it
// is returned as-is.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Histogram computes the 256-bin intensity histogram of a gray image.
func Histogram(g *image.Gray) [256]int {
	var hist [256]int
	b := g.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := g.Pix[(y-b.Min.Y)*g.Stride : (y-b.Min.Y)*g.Stride+b.Dx()]
		for _, v := range row {
			hist[v]++
		}
	}
	return hist
}

// IntegralImage holds summed-area values for O(1) window sums over a gray
// image. Sums are stored with one extra row and column of zeros so the
// window query needs no boundary special cases.
type IntegralImage struct {
	w, h int
	sum  []uint64
}

// NewIntegralImage builds the summed-area table of g.
func NewIntegralImage(g *image.Gray) *IntegralImage {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	return NewIntegralImageInto(g, make([]uint64, (w+1)*(h+1)))
}

// NewIntegralImageInto builds the summed-area table of g into the given
// buffer, which must hold at least (w+1)*(h+1) elements. Callers that pool
// the buffer own its lifetime; the IntegralImage must not outlive it.
func NewIntegralImageInto(g *image.Gray, buf []uint64) *IntegralImage {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	ii := &IntegralImage{w: w, h: h, sum: buf[:(w+1)*(h+1)]}
	stride := w + 1
	for x := range stride {
		ii.sum[x] = 0
	}
	for y := range h {
		var rowSum uint64
		ii.sum[(y+1)*stride] = 0
		src := g.Pix[y*g.Stride : y*g.Stride+w]
		for x := range w {
			rowSum += uint64(src[x])
			ii.sum[(y+1)*stride+x+1] = ii.sum[y*stride+x+1] + rowSum
		}
	}
	return ii
}

// WindowSum returns the sum of pixel values in the rectangle
// [x0,x1) x [y0,y1), clamped to the image.
func (ii *IntegralImage) WindowSum(x0, y0, x1, y1 int) uint64 {
	x0 = ClampInt(x0, 0, ii.w)
	y0 = ClampInt(y0, 0, ii.h)
	x1 = ClampInt(x1, 0, ii.w)
	y1 = ClampInt(y1, 0, ii.h)
	if x1 <= x0 || y1 <= y0 {
		return 0
	}
	stride := ii.w + 1
	return ii.sum[y1*stride+x1] - ii.sum[y0*stride+x1] -
		ii.sum[y1*stride+x0] + ii.sum[y0*stride+x0]
}
