// Package rectify corrects document geometry in receipt photographs:
// perspective distortion from an angled camera and residual rotation of an
// otherwise rectilinear page. Both corrections are best-effort and return
// the input unchanged when nothing can be improved.
package rectify

import (
	"image"
	"log/slog"
	"math"

	"github.com/compliscan/compliscan/internal/utils"
)

// Config controls quadrilateral detection for perspective correction.
type Config struct {
	BlurSigma     float64 // Gaussian blur before edge detection
	CannyLow      float64 // hysteresis low threshold
	CannyHigh     float64 // hysteresis high threshold
	MaxCandidates int     // largest contours inspected for a document quad
	ApproxEpsilon float64 // polygon approximation tolerance, fraction of perimeter
	MinAspect     float64 // minimum bounding-box aspect ratio of a plausible page
	MaxAspect     float64 // maximum bounding-box aspect ratio of a plausible page
}

// DefaultConfig returns detection settings tuned for receipt photographs.
func DefaultConfig() Config {
	return Config{
		BlurSigma:     1.0,
		CannyLow:      75,
		CannyHigh:     200,
		MaxCandidates: 5,
		ApproxEpsilon: 0.02,
		MinAspect:     0.2,
		MaxAspect:     5.0,
	}
}

// Corrector applies perspective correction using the configured detector.
// It is stateless and safe for concurrent use.
type Corrector struct {
	cfg Config
}

// NewCorrector creates a Corrector with the given configuration.
func NewCorrector(cfg Config) *Corrector {
	return &Corrector{cfg: cfg}
}

// Correct attempts to find a four-cornered convex document outline and warp
// it into an axis-aligned rectangle. When no qualifying contour exists among
// the largest candidates, the input image is returned untouched.
func (c *Corrector) Correct(img image.Image) image.Image {
	gray := utils.ToGray(img)
	blurred := utils.ToGray(gray)
	if c.cfg.BlurSigma > 0 {
		blurred = blurGray(gray, c.cfg.BlurSigma)
	}
	edges := cannyEdges(blurred, c.cfg.CannyLow, c.cfg.CannyHigh)

	contours := findContours(edges)
	if len(contours) > c.cfg.MaxCandidates {
		contours = contours[:c.cfg.MaxCandidates]
	}

	for _, contour := range contours {
		quad, ok := c.documentQuad(contour)
		if !ok {
			continue
		}
		warped := warpQuad(img, quad)
		if warped == nil {
			continue
		}
		slog.Debug("perspective correction applied",
			"width", warped.Bounds().Dx(), "height", warped.Bounds().Dy())
		return warped
	}
	slog.Debug("no document quad found, keeping original")
	return img
}

// documentQuad tests whether a contour approximates a convex quadrilateral
// with a plausible page aspect ratio, returning its ordered corners.
func (c *Corrector) documentQuad(contour []utils.Point) ([4]utils.Point, bool) {
	peri := utils.PolygonPerimeter(contour)
	approx := approxClosedPolygon(contour, c.cfg.ApproxEpsilon*peri)
	if len(approx) != 4 || !utils.IsConvex(approx) {
		return [4]utils.Point{}, false
	}
	box := utils.BoundingBox(approx)
	ar := box.AspectRatio()
	if ar <= c.cfg.MinAspect || ar >= c.cfg.MaxAspect {
		return [4]utils.Point{}, false
	}
	return orderCorners(approx), true
}

// approxClosedPolygon approximates a closed contour with Douglas-Peucker.
// The contour is rotated to start at the vertex farthest from the centroid
// (almost certainly a corner) so the forced DP endpoints do not land
// mid-edge, then a near-duplicate closing point is dropped.
func approxClosedPolygon(contour []utils.Point, epsilon float64) []utils.Point {
	n := len(contour)
	if n < 3 {
		return append([]utils.Point(nil), contour...)
	}
	var cx, cy float64
	for _, p := range contour {
		cx += p.X
		cy += p.Y
	}
	centroid := utils.Point{X: cx / float64(n), Y: cy / float64(n)}
	far := 0
	farDist := -1.0
	for i, p := range contour {
		if d := p.Dist(centroid); d > farDist {
			farDist = d
			far = i
		}
	}
	rotated := make([]utils.Point, 0, n+1)
	rotated = append(rotated, contour[far:]...)
	rotated = append(rotated, contour[:far]...)
	rotated = append(rotated, contour[far]) // close the ring

	approx := utils.SimplifyPolygon(rotated, epsilon)
	if len(approx) >= 2 && approx[0].Dist(approx[len(approx)-1]) <= epsilon+1 {
		approx = approx[:len(approx)-1]
	}
	return approx
}

// orderCorners orders four corners as top-left, top-right, bottom-right,
// bottom-left using the coordinate-sum and coordinate-difference extremes.
func orderCorners(pts []utils.Point) [4]utils.Point {
	var ordered [4]utils.Point
	minSum, maxSum := math.Inf(1), math.Inf(-1)
	minDiff, maxDiff := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		sum := p.X + p.Y
		diff := p.Y - p.X
		if sum < minSum {
			minSum = sum
			ordered[0] = p // top-left
		}
		if sum > maxSum {
			maxSum = sum
			ordered[2] = p // bottom-right
		}
		if diff < minDiff {
			minDiff = diff
			ordered[1] = p // top-right
		}
		if diff > maxDiff {
			maxDiff = diff
			ordered[3] = p // bottom-left
		}
	}
	return ordered
}
