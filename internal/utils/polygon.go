package utils

import (
	"math"
	"sort"
)

// SimplifyPolygon reduces the number of points in a closed polygon using the
// Douglas-Peucker algorithm with the given tolerance epsilon.
func SimplifyPolygon(pts []Point, epsilon float64) []Point {
	if len(pts) <= 3 || epsilon <= 0 {
		return append([]Point(nil), pts...)
	}
	keep := make([]bool, len(pts))
	dpSimplify(pts, 0, len(pts)-1, epsilon, keep)
	keep[0] = true
	keep[len(pts)-1] = true
	out := make([]Point, 0, len(pts))
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

func dpSimplify(pts []Point, start, end int, eps float64, keep []bool) {
	if end <= start+1 {
		return
	}
	maxDist := -1.0
	index := -1
	for i := start + 1; i < end; i++ {
		d := perpendicularDistance(pts[i], pts[start], pts[end])
		if d > maxDist {
			maxDist = d
			index = i
		}
	}
	if maxDist > eps {
		dpSimplify(pts, start, index, eps, keep)
		keep[index] = true
		dpSimplify(pts, index, end, eps, keep)
	}
}

func perpendicularDistance(p, a, b Point) float64 {
	vx, vy := b.X-a.X, b.Y-a.Y
	if vx == 0 && vy == 0 {
		return a.Dist(p)
	}
	num := math.Abs((p.X-a.X)*vy - (p.Y-a.Y)*vx)
	return num / math.Hypot(vx, vy)
}

// IsConvex reports whether the closed polygon is convex. All cross products
// between consecutive edges must share a sign; collinear runs are tolerated.
func IsConvex(pts []Point) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	sign := 0.0
	for i := range n {
		c := cross(pts[i], pts[(i+1)%n], pts[(i+2)%n])
		if c == 0 {
			continue
		}
		if sign == 0 {
			sign = c
		} else if sign*c < 0 {
			return false
		}
	}
	return sign != 0
}

// PolygonArea returns the absolute area of a closed polygon (shoelace formula).
func PolygonArea(pts []Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := range n {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// PolygonPerimeter returns the perimeter of a closed polygon.
func PolygonPerimeter(pts []Point) float64 {
	n := len(pts)
	if n < 2 {
		return 0
	}
	sum := 0.0
	for i := range n {
		sum += pts[i].Dist(pts[(i+1)%n])
	}
	return sum
}

// ConvexHull computes the convex hull of a set of points using the monotone
// chain algorithm. Returns the hull in CCW order without duplicating the
// first point at the end.
func ConvexHull(pts []Point) []Point {
	n := len(pts)
	if n <= 1 {
		return append([]Point(nil), pts...)
	}
	p := make([]Point, n)
	copy(p, pts)
	sort.Slice(p, func(i, j int) bool {
		if p[i].X != p[j].X {
			return p[i].X < p[j].X
		}
		return p[i].Y < p[j].Y
	})
	p = dedupPoints(p)
	if len(p) <= 1 {
		return append([]Point(nil), p...)
	}
	lower := buildHalfHull(p, false)
	upper := buildHalfHull(p, true)
	hull := make([]Point, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)
	return hull
}

func dedupPoints(p []Point) []Point {
	q := p[:0]
	for i, pt := range p {
		if i == 0 || pt != p[i-1] {
			q = append(q, pt)
		}
	}
	return q
}

func buildHalfHull(p []Point, reverse bool) []Point {
	half := make([]Point, 0, len(p))
	idx := func(i int) int {
		if reverse {
			return len(p) - 1 - i
		}
		return i
	}
	for i := range p {
		pt := p[idx(i)]
		for len(half) >= 2 && cross(half[len(half)-2], half[len(half)-1], pt) <= 0 {
			half = half[:len(half)-1]
		}
		half = append(half, pt)
	}
	return half
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// MinimumAreaRectangle computes the minimum-area enclosing rectangle using
// rotating calipers over the convex hull. Returns 4 corners in CCW order,
// or nil for an empty input.
func MinimumAreaRectangle(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	hull := ConvexHull(pts)
	switch len(hull) {
	case 0:
		return nil
	case 1:
		p := hull[0]
		return []Point{p, {p.X + 1, p.Y}, {p.X + 1, p.Y + 1}, {p.X, p.Y + 1}}
	case 2:
		a, b := hull[0], hull[1]
		return []Point{a, b, {b.X, b.Y + 1}, {a.X, a.Y + 1}}
	}
	return minAreaRectFromHull(hull)
}

func minAreaRectFromHull(hull []Point) []Point {
	bestArea := math.Inf(1)
	var bestU, bestV Point
	var bestMinS, bestMaxS, bestMinT, bestMaxT float64
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		l := a.Dist(b)
		if l == 0 {
			continue
		}
		ux, uy := (b.X-a.X)/l, (b.Y-a.Y)/l
		vx, vy := -uy, ux
		minS, maxS := math.Inf(1), math.Inf(-1)
		minT, maxT := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			s := p.X*ux + p.Y*uy
			t := p.X*vx + p.Y*vy
			minS = math.Min(minS, s)
			maxS = math.Max(maxS, s)
			minT = math.Min(minT, t)
			maxT = math.Max(maxT, t)
		}
		area := (maxS - minS) * (maxT - minT)
		if area < bestArea {
			bestArea = area
			bestU = Point{ux, uy}
			bestV = Point{vx, vy}
			bestMinS, bestMaxS, bestMinT, bestMaxT = minS, maxS, minT, maxT
		}
	}
	if math.IsInf(bestArea, 1) {
		return nil
	}
	corner := func(s, t float64) Point {
		return Point{X: bestU.X*s + bestV.X*t, Y: bestU.Y*s + bestV.Y*t}
	}
	return []Point{
		corner(bestMinS, bestMinT),
		corner(bestMaxS, bestMinT),
		corner(bestMaxS, bestMaxT),
		corner(bestMinS, bestMaxT),
	}
}

// MinAreaRectAngle returns the orientation of the minimum-area rectangle over
// pts, expressed in degrees in the range (-90, 0] following the OpenCV
// minAreaRect convention. Returns 0 for degenerate inputs.
func MinAreaRectAngle(pts []Point) float64 {
	rect := MinimumAreaRectangle(pts)
	if len(rect) != 4 {
		return 0
	}
	dx := rect[1].X - rect[0].X
	dy := rect[1].Y - rect[0].Y
	if dx == 0 && dy == 0 {
		return 0
	}
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	for deg <= -90 {
		deg += 90
	}
	for deg > 0 {
		deg -= 90
	}
	return deg
}
