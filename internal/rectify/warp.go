package rectify

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/compliscan/compliscan/internal/utils"
)

// blurGray applies a Gaussian blur to a gray image.
func blurGray(g *image.Gray, sigma float64) *image.Gray {
	return utils.ToGray(imaging.Blur(g, sigma))
}

// warpQuad warps the quadrilateral (tl, tr, br, bl) from src into an
// axis-aligned rectangle whose size is taken from the longer of each pair of
// opposing quad edges. Returns nil when the geometry degenerates.
func warpQuad(src image.Image, quad [4]utils.Point) image.Image {
	tl, tr, br, bl := quad[0], quad[1], quad[2], quad[3]
	dstW := int(max(br.Dist(bl), tr.Dist(tl)))
	dstH := int(max(tr.Dist(br), tl.Dist(bl)))
	if dstW < 2 || dstH < 2 {
		return nil
	}

	// Homography from destination rectangle corners back to the source quad
	// so each destination pixel can be sampled inversely.
	dstCorners := [4]utils.Point{
		{X: 0, Y: 0},
		{X: float64(dstW - 1), Y: 0},
		{X: float64(dstW - 1), Y: float64(dstH - 1)},
		{X: 0, Y: float64(dstH - 1)},
	}
	h, ok := computeHomography(dstCorners, quad)
	if !ok {
		return nil
	}

	sb := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	for y := range dstH {
		for x := range dstW {
			sx, sy := applyHomography(h, float64(x), float64(y))
			out.Set(x, y, sampleBilinear(src, sx+float64(sb.Min.X), sy+float64(sb.Min.Y), false))
		}
	}
	return out
}

// sampleBilinear samples src at fractional coordinates. Outside the bounds
// it either clamps to the nearest edge pixel (replicate=true) or returns
// black.
func sampleBilinear(src image.Image, x, y float64, replicate bool) color.Color {
	b := src.Bounds()
	if replicate {
		x = clampFloat(x, float64(b.Min.X), float64(b.Max.X-1))
		y = clampFloat(y, float64(b.Min.Y), float64(b.Max.Y-1))
	} else if x < float64(b.Min.X) || y < float64(b.Min.Y) ||
		x > float64(b.Max.X-1) || y > float64(b.Max.Y-1) {
		return color.RGBA{0, 0, 0, 255}
	}

	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	if x1 >= b.Max.X {
		x1 = b.Max.X - 1
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	r00, g00, b00, _ := src.At(x0, y0).RGBA()
	r10, g10, b10, _ := src.At(x1, y0).RGBA()
	r01, g01, b01, _ := src.At(x0, y1).RGBA()
	r11, g11, b11, _ := src.At(x1, y1).RGBA()

	lerp2 := func(v00, v10, v01, v11 uint32) uint8 {
		top := float64(v00)*(1-fx) + float64(v10)*fx
		bot := float64(v01)*(1-fx) + float64(v11)*fx
		return uint8((top*(1-fy) + bot*fy) / 257)
	}
	return color.RGBA{
		R: lerp2(r00, r10, r01, r11),
		G: lerp2(g00, g10, g01, g11),
		B: lerp2(b00, b10, b01, b11),
		A: 255,
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
