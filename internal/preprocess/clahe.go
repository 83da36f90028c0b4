package preprocess

import (
	"image"

	"github.com/compliscan/compliscan/internal/utils"
)

// CLAHEConfig controls contrast-limited adaptive histogram equalization.
type CLAHEConfig struct {
	ClipLimit float64 // histogram clip limit relative to a uniform tile
	TilesX    int     // tile grid columns
	TilesY    int     // tile grid rows
}

// DefaultCLAHEConfig matches the moderate enhancement used by the clahe
// strategy; clahe_pro uses a stronger configuration.
func DefaultCLAHEConfig() CLAHEConfig {
	return CLAHEConfig{ClipLimit: 2.0, TilesX: 8, TilesY: 8}
}

// CLAHE applies contrast-limited adaptive histogram equalization: the image
// is split into a tile grid, each tile gets a clipped equalization mapping,
// and every pixel is remapped by bilinear interpolation between the mappings
// of its four surrounding tile centers.
func CLAHE(g *image.Gray, cfg CLAHEConfig) *image.Gray {
	if cfg.TilesX < 1 {
		cfg.TilesX = 1
	}
	if cfg.TilesY < 1 {
		cfg.TilesY = 1
	}
	if cfg.ClipLimit <= 0 {
		cfg.ClipLimit = 2.0
	}
	src := utils.ToGray(g)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}

	tileW := (w + cfg.TilesX - 1) / cfg.TilesX
	tileH := (h + cfg.TilesY - 1) / cfg.TilesY
	luts := make([][256]uint8, cfg.TilesX*cfg.TilesY)
	for ty := range cfg.TilesY {
		for tx := range cfg.TilesX {
			x0 := tx * tileW
			y0 := ty * tileH
			x1 := utils.ClampInt(x0+tileW, 0, w)
			y1 := utils.ClampInt(y0+tileH, 0, h)
			luts[ty*cfg.TilesX+tx] = tileLUT(src, x0, y0, x1, y1, cfg.ClipLimit)
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		// Tile-center coordinates in tile units.
		fy := (float64(y)+0.5)/float64(tileH) - 0.5
		ty0 := utils.ClampInt(int(fy), 0, cfg.TilesY-1)
		ty1 := utils.ClampInt(ty0+1, 0, cfg.TilesY-1)
		wy := fy - float64(ty0)
		if wy < 0 {
			wy = 0
		} else if wy > 1 {
			wy = 1
		}
		for x := range w {
			fx := (float64(x)+0.5)/float64(tileW) - 0.5
			tx0 := utils.ClampInt(int(fx), 0, cfg.TilesX-1)
			tx1 := utils.ClampInt(tx0+1, 0, cfg.TilesX-1)
			wx := fx - float64(tx0)
			if wx < 0 {
				wx = 0
			} else if wx > 1 {
				wx = 1
			}
			v := src.Pix[y*src.Stride+x]
			v00 := float64(luts[ty0*cfg.TilesX+tx0][v])
			v01 := float64(luts[ty0*cfg.TilesX+tx1][v])
			v10 := float64(luts[ty1*cfg.TilesX+tx0][v])
			v11 := float64(luts[ty1*cfg.TilesX+tx1][v])
			top := v00*(1-wx) + v01*wx
			bot := v10*(1-wx) + v11*wx
			out.Pix[y*out.Stride+x] = uint8(top*(1-wy) + bot*wy + 0.5)
		}
	}
	return out
}

// tileLUT builds the clipped-equalization lookup table for one tile.
func tileLUT(g *image.Gray, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	var lut [256]uint8
	area := (x1 - x0) * (y1 - y0)
	if area <= 0 {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	var hist [256]int
	for y := y0; y < y1; y++ {
		row := g.Pix[y*g.Stride+x0 : y*g.Stride+x1]
		for _, v := range row {
			hist[v]++
		}
	}

	// Clip and redistribute the excess uniformly.
	clip := int(clipLimit * float64(area) / 256.0)
	if clip < 1 {
		clip = 1
	}
	excess := 0
	for i, c := range hist {
		if c > clip {
			excess += c - clip
			hist[i] = clip
		}
	}
	bonus := excess / 256
	rem := excess % 256
	for i := range hist {
		hist[i] += bonus
		if i < rem {
			hist[i]++
		}
	}

	// Cumulative mapping.
	cum := 0
	scale := 255.0 / float64(area)
	for i, c := range hist {
		cum += c
		lut[i] = uint8(float64(cum)*scale + 0.5)
	}
	return lut
}
