package rectify

import (
	"math"

	"github.com/compliscan/compliscan/internal/utils"
)

// computeHomography computes the 3x3 matrix H mapping p[i] -> q[i].
// Returns H as [9]float64 with h22 fixed at 1.
func computeHomography(p, q [4]utils.Point) ([9]float64, bool) {
	// Build the 8x8 system A*h = b for the unknowns h00..h21.
	var a [8][8]float64
	var b [8]float64
	for i := range 4 {
		sx, sy := p[i].X, p[i].Y
		dx, dy := q[i].X, q[i].Y
		r := 2 * i
		// dx = (h00 sx + h01 sy + h02) / (h20 sx + h21 sy + 1)
		a[r] = [8]float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx}
		b[r] = dx
		// dy = (h10 sx + h11 sy + h12) / (h20 sx + h21 sy + 1)
		a[r+1] = [8]float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy}
		b[r+1] = dy
	}
	h, ok := solveLinear8(a, b)
	if !ok {
		return [9]float64{}, false
	}
	return [9]float64{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}, true
}

// solveLinear8 solves an 8x8 linear system with Gauss-Jordan elimination and
// partial pivoting. Returns false for a singular system.
func solveLinear8(a [8][8]float64, b [8]float64) ([8]float64, bool) {
	for col := range 8 {
		// Pivot selection.
		pivot := col
		maxAbs := math.Abs(a[col][col])
		for r := col + 1; r < 8; r++ {
			if math.Abs(a[r][col]) > maxAbs {
				maxAbs = math.Abs(a[r][col])
				pivot = r
			}
		}
		if maxAbs == 0 {
			return [8]float64{}, false
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			b[col], b[pivot] = b[pivot], b[col]
		}

		// Normalize pivot row.
		div := a[col][col]
		for c := col; c < 8; c++ {
			a[col][c] /= div
		}
		b[col] /= div

		// Eliminate the column from all other rows.
		for r := range 8 {
			if r == col || a[r][col] == 0 {
				continue
			}
			factor := a[r][col]
			for c := col; c < 8; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}
	return b, true
}

// applyHomography maps (x, y) through H, returning far-off-image coordinates
// when the denominator degenerates.
func applyHomography(h [9]float64, x, y float64) (float64, float64) {
	denom := h[6]*x + h[7]*y + h[8]
	if denom == 0 {
		return -1e9, -1e9
	}
	return (h[0]*x + h[1]*y + h[2]) / denom, (h[3]*x + h[4]*y + h[5]) / denom
}
