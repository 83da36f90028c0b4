package rectify

import (
	"image"
	"log/slog"
	"math"

	"github.com/compliscan/compliscan/internal/utils"
)

const (
	// foregroundLevel: pixels darker than this count as page content.
	foregroundLevel = 250
	// minDeskewAngle: rotations smaller than this are skipped, since
	// interpolation would only degrade an already-aligned page.
	minDeskewAngle = 0.5
)

// Deskew estimates residual rotation from the minimum-area rectangle over
// all foreground pixels and rotates the image to level it. Best-effort: when
// no foreground exists or the angle is negligible, the input is returned
// unchanged. Border pixels introduced by rotation replicate the nearest
// edge.
func Deskew(g *image.Gray) *image.Gray {
	src := utils.ToGray(g)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	pts := make([]utils.Point, 0, 1024)
	for y := range h {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x, v := range row {
			if v < foregroundLevel {
				pts = append(pts, utils.Point{X: float64(x), Y: float64(y)})
			}
		}
	}
	if len(pts) == 0 {
		return src
	}

	angle := utils.MinAreaRectAngle(pts)
	if angle < -45 {
		angle = -(90 + angle)
	} else {
		angle = -angle
	}
	if math.Abs(angle) < minDeskewAngle {
		return src
	}
	slog.Debug("deskewing", "angle", angle)
	return rotateGray(src, angle)
}

// rotateGray rotates the image counter-clockwise by the given angle in
// degrees about its center, keeping the original dimensions. Samples outside
// the source replicate the nearest edge pixel.
func rotateGray(src *image.Gray, angleDeg float64) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	theta := angleDeg * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	cx, cy := float64(w)/2, float64(h)/2

	for y := range h {
		for x := range w {
			dx := float64(x) - cx
			dy := float64(y) - cy
			// Inverse rotation mapping destination back into the source.
			sx := cos*dx - sin*dy + cx
			sy := sin*dx + cos*dy + cy
			out.Pix[y*out.Stride+x] = sampleGrayBilinear(src, sx, sy)
		}
	}
	return out
}

// sampleGrayBilinear samples a gray image at fractional coordinates with
// edge replication outside the bounds.
func sampleGrayBilinear(src *image.Gray, x, y float64) uint8 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	x = clampFloat(x, 0, float64(w-1))
	y = clampFloat(y, 0, float64(h-1))
	x0, y0 := int(x), int(y)
	x1 := utils.ClampInt(x0+1, 0, w-1)
	y1 := utils.ClampInt(y0+1, 0, h-1)
	fx := x - float64(x0)
	fy := y - float64(y0)

	v00 := float64(src.Pix[y0*src.Stride+x0])
	v10 := float64(src.Pix[y0*src.Stride+x1])
	v01 := float64(src.Pix[y1*src.Stride+x0])
	v11 := float64(src.Pix[y1*src.Stride+x1])
	top := v00*(1-fx) + v10*fx
	bot := v01*(1-fx) + v11*fx
	return uint8(top*(1-fy) + bot*fy + 0.5)
}
