package rectify

import (
	"image"
	"sort"

	"github.com/compliscan/compliscan/internal/utils"
)

// findContours labels 8-connected components of non-zero pixels in the edge
// map and traces each component's outer boundary with Moore-Neighbor
// tracing. Returned contours are sorted by enclosed area, largest first.
func findContours(edges *image.Gray) [][]utils.Point {
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	labels := make([]int32, w*h)
	isSet := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && edges.Pix[y*edges.Stride+x] != 0
	}

	var contours [][]utils.Point
	next := int32(1)
	stack := make([][2]int, 0, 256)
	for y := range h {
		for x := range w {
			if !isSet(x, y) || labels[y*w+x] != 0 {
				continue
			}
			// Flood-fill the component.
			label := next
			next++
			labels[y*w+x] = label
			stack = append(stack[:0], [2]int{x, y})
			minX, minY, maxX, maxY := x, y, x, y
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p[0]+dx, p[1]+dy
						if isSet(nx, ny) && labels[ny*w+nx] == 0 {
							labels[ny*w+nx] = label
							stack = append(stack, [2]int{nx, ny})
							minX = min(minX, nx)
							minY = min(minY, ny)
							maxX = max(maxX, nx)
							maxY = max(maxY, ny)
						}
					}
				}
			}
			if c := traceBoundary(labels, w, h, label, minX, minY, maxX, maxY); len(c) >= 3 {
				contours = append(contours, c)
			}
		}
	}

	sort.SliceStable(contours, func(i, j int) bool {
		return utils.PolygonArea(contours[i]) > utils.PolygonArea(contours[j])
	})
	return contours
}

// mooreOffsets enumerates the 8-neighborhood clockwise starting east.
var mooreOffsets = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

// traceBoundary extracts the outer boundary polygon of a labeled component
// using Moore-Neighbor tracing, dropping collinear midpoints as it goes.
func traceBoundary(labels []int32, w, h int, label int32, minX, minY, maxX, maxY int) []utils.Point {
	inComp := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && labels[y*w+x] == label
	}

	// Starting pixel: first component pixel in scan order within the AABB.
	sx, sy := -1, -1
	for y := minY; y <= maxY && sx < 0; y++ {
		for x := minX; x <= maxX; x++ {
			if inComp(x, y) {
				sx, sy = x, y
				break
			}
		}
	}
	if sx < 0 {
		return nil
	}

	pts := make([]utils.Point, 0, 64)
	push := func(x, y int) {
		p := utils.Point{X: float64(x), Y: float64(y)}
		if n := len(pts); n >= 2 {
			a, b := pts[n-2], pts[n-1]
			if (b.X-a.X)*(p.Y-b.Y)-(b.Y-a.Y)*(p.X-b.X) == 0 {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, p)
	}
	push(sx, sy)

	// Backtrack starts west of the start pixel.
	cx, cy := sx, sy
	prevDir := 4 // direction pointing back west
	maxSteps := 4*(w*h) + 8
	for range maxSteps {
		found := false
		// Resume scanning clockwise from just past the backtrack direction.
		start := (prevDir + 6) % 8
		for i := range 8 {
			d := (start + i) % 8
			nx, ny := cx+mooreOffsets[d][0], cy+mooreOffsets[d][1]
			if inComp(nx, ny) {
				cx, cy = nx, ny
				prevDir = d
				found = true
				break
			}
		}
		if !found {
			break // isolated pixel
		}
		if cx == sx && cy == sy {
			break
		}
		push(cx, cy)
	}

	// Drop a duplicated closing point.
	if n := len(pts); n >= 2 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}
