package preprocess

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/compliscan/compliscan/internal/mempool"
	"github.com/compliscan/compliscan/internal/utils"
)

// BlurGray applies a Gaussian blur to a gray image.
func BlurGray(g *image.Gray, sigma float64) *image.Gray {
	if sigma <= 0 {
		return g
	}
	return utils.ToGray(imaging.Blur(g, sigma))
}

// OtsuLevel computes the global threshold minimizing intra-class variance
// over the image histogram (Otsu's method).
func OtsuLevel(g *image.Gray) uint8 {
	hist := utils.Histogram(g)
	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return 0
	}
	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i) * float64(c)
	}
	var sumB, wB float64
	var maxVariance float64
	best := 0
	for t := range 256 {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		meanB := sumB / wB
		meanF := (sumAll - sumB) / wF
		variance := wB * wF * (meanB - meanF) * (meanB - meanF)
		if variance > maxVariance {
			maxVariance = variance
			best = t
		}
	}
	return uint8(best)
}

// Threshold binarizes g: pixels above level become white, the rest black.
func Threshold(g *image.Gray, level uint8) *image.Gray {
	out := image.NewGray(g.Bounds())
	for i, v := range g.Pix {
		if v > level {
			out.Pix[i] = 255
		}
	}
	return out
}

// OtsuThreshold binarizes g at the Otsu level.
func OtsuThreshold(g *image.Gray) *image.Gray {
	return Threshold(g, OtsuLevel(g))
}

// AdaptiveThreshold binarizes g against the local mean of a blockSize window
// minus the constant c. blockSize must be odd; even values are bumped up.
func AdaptiveThreshold(g *image.Gray, blockSize int, c float64) *image.Gray {
	if blockSize < 3 {
		blockSize = 3
	}
	if blockSize%2 == 0 {
		blockSize++
	}
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	buf := mempool.GetUint64((w + 1) * (h + 1))
	defer mempool.PutUint64(buf)
	ii := utils.NewIntegralImageInto(utils.ToGray(g), buf)
	r := blockSize / 2
	for y := range h {
		for x := range w {
			x0, y0 := x-r, y-r
			x1, y1 := x+r+1, y+r+1
			cx0 := utils.ClampInt(x0, 0, w)
			cy0 := utils.ClampInt(y0, 0, h)
			cx1 := utils.ClampInt(x1, 0, w)
			cy1 := utils.ClampInt(y1, 0, h)
			area := (cx1 - cx0) * (cy1 - cy0)
			if area == 0 {
				continue
			}
			mean := float64(ii.WindowSum(cx0, cy0, cx1, cy1)) / float64(area)
			if float64(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y) > mean-c {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// Sharpen3x3 convolves g with the edge-emphasis kernel
//
//	-1 -1 -1
//	-1  9 -1
//	-1 -1 -1
//
// clamping results to [0,255]. Border pixels replicate the nearest edge.
func Sharpen3x3(g *image.Gray) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	src := utils.ToGray(g)
	out := image.NewGray(image.Rect(0, 0, w, h))
	at := func(x, y int) int {
		x = utils.ClampInt(x, 0, w-1)
		y = utils.ClampInt(y, 0, h-1)
		return int(src.Pix[y*src.Stride+x])
	}
	for y := range h {
		for x := range w {
			sum := 9*at(x, y) -
				at(x-1, y-1) - at(x, y-1) - at(x+1, y-1) -
				at(x-1, y) - at(x+1, y) -
				at(x-1, y+1) - at(x, y+1) - at(x+1, y+1)
			out.Pix[y*out.Stride+x] = uint8(utils.ClampInt(sum, 0, 255))
		}
	}
	return out
}
