package contour

import (
	"image"
	"math"
)

// Perimeter returns the length of the closed polygon
func Perimeter(pts []image.Point) float64 {
	var total float64
	for i := range pts {
		total += dist(pts[i], pts[(i+1)%len(pts)])
	}
	return total
}

// Approximate reduces a closed polygon with the Douglas-Peucker algorithm.
// The polygon is split at two mutually distant vertices so that the result
// does not depend on where the border trace happened to start.
func Approximate(pts []image.Point, epsilon float64) []image.Point {
	n := len(pts)
	if n < 3 {
		return append([]image.Point(nil), pts...)
	}

	a := farthest(pts, pts[0])
	b := farthest(pts, pts[a])
	if a == b {
		return []image.Point{pts[a]}
	}

	// walk the ring from a to b and from b back to a
	first := ring(pts, a, b)
	second := ring(pts, b, a)

	out := douglasPeucker(first, epsilon)
	tail := douglasPeucker(second, epsilon)
	out = out[:len(out)-1]
	out = append(out, tail[:len(tail)-1]...)
	return out
}

func farthest(pts []image.Point, from image.Point) int {
	best, bestDist := 0, -1.0
	for i, p := range pts {
		if d := dist(p, from); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// ring returns pts[from..to] inclusive, wrapping around the end.
func ring(pts []image.Point, from, to int) []image.Point {
	n := len(pts)
	out := []image.Point{pts[from]}
	for i := from; i != to; {
		i = (i + 1) % n
		out = append(out, pts[i])
	}
	return out
}

func douglasPeucker(pts []image.Point, epsilon float64) []image.Point {
	if len(pts) < 3 {
		return append([]image.Point(nil), pts...)
	}

	start, end := pts[0], pts[len(pts)-1]
	index, maxDist := 0, 0.0
	for i := 1; i < len(pts)-1; i++ {
		if d := segmentDistance(pts[i], start, end); d > maxDist {
			index, maxDist = i, d
		}
	}

	if maxDist <= epsilon {
		return []image.Point{start, end}
	}

	left := douglasPeucker(pts[:index+1], epsilon)
	right := douglasPeucker(pts[index:], epsilon)
	return append(left[:len(left)-1], right...)
}

// segmentDistance returns the distance from p to the segment a-b.
func segmentDistance(p, a, b image.Point) float64 {
	px, py := float64(p.X), float64(p.Y)
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
