package preprocess

import (
	"image"
	"math"

	"github.com/compliscan/compliscan/internal/mempool"
	"github.com/compliscan/compliscan/internal/utils"
)

// DenoiseConfig controls non-local-means denoising.
type DenoiseConfig struct {
	Strength       float64 // filter strength h; larger removes more noise and detail
	TemplateWindow int     // odd patch size used for similarity comparison
	SearchWindow   int     // odd window scanned for similar patches
}

// DefaultDenoiseConfig returns the parameters used by the clahe_pro strategy.
func DefaultDenoiseConfig() DenoiseConfig {
	return DenoiseConfig{Strength: 10, TemplateWindow: 7, SearchWindow: 21}
}

// DenoiseNLM applies non-local-means denoising: each pixel becomes a weighted
// average of search-window pixels, weighted by patch similarity. This is the
// slowest filter in the set and is only used by the most aggressive strategy.
func DenoiseNLM(g *image.Gray, cfg DenoiseConfig) *image.Gray {
	if cfg.TemplateWindow < 3 {
		cfg.TemplateWindow = 3
	}
	if cfg.TemplateWindow%2 == 0 {
		cfg.TemplateWindow++
	}
	if cfg.SearchWindow < cfg.TemplateWindow {
		cfg.SearchWindow = cfg.TemplateWindow
	}
	if cfg.SearchWindow%2 == 0 {
		cfg.SearchWindow++
	}
	if cfg.Strength <= 0 {
		cfg.Strength = 10
	}

	src := utils.ToGray(g)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	tr := cfg.TemplateWindow / 2
	sr := cfg.SearchWindow / 2
	h2 := cfg.Strength * cfg.Strength * float64(cfg.TemplateWindow*cfg.TemplateWindow)

	// Work on a pooled float64 copy so the inner loops skip per-sample
	// integer conversion.
	pix := mempool.GetFloat64(w * h)
	defer mempool.PutFloat64(pix)
	for y := range h {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x, v := range row {
			pix[y*w+x] = float64(v)
		}
	}

	at := func(x, y int) float64 {
		x = utils.ClampInt(x, 0, w-1)
		y = utils.ClampInt(y, 0, h-1)
		return pix[y*w+x]
	}

	// Loops are ordered by search offset: an integral image over the squared
	// per-pixel differences for one offset answers every patch distance at
	// that offset in constant time, so the cost is O(w*h*S^2) instead of
	// O(w*h*S^2*T^2).
	diff2 := mempool.GetFloat64(w * h)
	defer mempool.PutFloat64(diff2)
	iw := w + 1
	integ := mempool.GetFloat64(iw * (h + 1))
	defer mempool.PutFloat64(integ)
	sum := mempool.GetFloat64(w * h)
	defer mempool.PutFloat64(sum)
	wsum := mempool.GetFloat64(w * h)
	defer mempool.PutFloat64(wsum)
	for i := range w * h {
		sum[i] = 0
		wsum[i] = 0
	}

	for dy := -sr; dy <= sr; dy++ {
		for dx := -sr; dx <= sr; dx++ {
			for y := range h {
				for x := range w {
					d := pix[y*w+x] - at(x+dx, y+dy)
					diff2[y*w+x] = d * d
				}
			}

			for i := range iw {
				integ[i] = 0
			}
			for y := range h {
				integ[(y+1)*iw] = 0
				for x := range w {
					integ[(y+1)*iw+x+1] = diff2[y*w+x] +
						integ[y*iw+x+1] + integ[(y+1)*iw+x] - integ[y*iw+x]
				}
			}

			for y := range h {
				y0 := utils.ClampInt(y-tr, 0, h)
				y1 := utils.ClampInt(y+tr+1, 0, h)
				for x := range w {
					x0 := utils.ClampInt(x-tr, 0, w)
					x1 := utils.ClampInt(x+tr+1, 0, w)
					d := integ[y1*iw+x1] - integ[y0*iw+x1] -
						integ[y1*iw+x0] + integ[y0*iw+x0]
					wgt := math.Exp(-d / h2)
					sum[y*w+x] += wgt * at(x+dx, y+dy)
					wsum[y*w+x] += wgt
				}
			}
		}
	}

	for y := range h {
		for x := range w {
			if ws := wsum[y*w+x]; ws > 0 {
				out.Pix[y*out.Stride+x] = uint8(sum[y*w+x]/ws + 0.5)
			} else {
				out.Pix[y*out.Stride+x] = src.Pix[y*src.Stride+x]
			}
		}
	}
	return out
}
