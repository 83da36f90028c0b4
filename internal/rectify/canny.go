package rectify

import (
	"image"
	"math"

	"github.com/compliscan/compliscan/internal/utils"
)

// cannyEdges computes a binary edge map of a gray image using Sobel
// gradients, non-maximum suppression and double-threshold hysteresis.
func cannyEdges(g *image.Gray, lowThresh, highThresh float64) *image.Gray {
	src := utils.ToGray(g)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w < 3 || h < 3 {
		return out
	}

	at := func(x, y int) float64 {
		x = utils.ClampInt(x, 0, w-1)
		y = utils.ClampInt(y, 0, h-1)
		return float64(src.Pix[y*src.Stride+x])
	}

	// Sobel gradients.
	mag := make([]float64, w*h)
	dir := make([]uint8, w*h) // quantized direction: 0=E/W 1=NE/SW 2=N/S 3=NW/SE
	for y := range h {
		for x := range w {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			mag[y*w+x] = math.Hypot(gx, gy)
			angle := math.Atan2(gy, gx) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}
			switch {
			case angle < 22.5 || angle >= 157.5:
				dir[y*w+x] = 0
			case angle < 67.5:
				dir[y*w+x] = 1
			case angle < 112.5:
				dir[y*w+x] = 2
			default:
				dir[y*w+x] = 3
			}
		}
	}

	// Non-maximum suppression, then classify as strong/weak.
	const (
		none   = 0
		weak   = 128
		strong = 255
	)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			m := mag[y*w+x]
			if m < lowThresh {
				continue
			}
			var a, bb float64
			switch dir[y*w+x] {
			case 0:
				a, bb = mag[y*w+x-1], mag[y*w+x+1]
			case 1:
				a, bb = mag[(y-1)*w+x+1], mag[(y+1)*w+x-1]
			case 2:
				a, bb = mag[(y-1)*w+x], mag[(y+1)*w+x]
			default:
				a, bb = mag[(y-1)*w+x-1], mag[(y+1)*w+x+1]
			}
			if m < a || m < bb {
				continue
			}
			if m >= highThresh {
				out.Pix[y*out.Stride+x] = strong
			} else {
				out.Pix[y*out.Stride+x] = weak
			}
		}
	}

	// Hysteresis: weak edges survive only when connected to a strong edge.
	stack := make([][2]int, 0, 256)
	for y := range h {
		for x := range w {
			if out.Pix[y*out.Stride+x] == strong {
				stack = append(stack, [2]int{x, y})
			}
		}
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p[0]+dx, p[1]+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				if out.Pix[ny*out.Stride+nx] == weak {
					out.Pix[ny*out.Stride+nx] = strong
					stack = append(stack, [2]int{nx, ny})
				}
			}
		}
	}
	for i, v := range out.Pix {
		if v == weak {
			out.Pix[i] = none
		}
	}
	return out
}
