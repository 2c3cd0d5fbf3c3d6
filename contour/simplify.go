package contour

import (
	"image"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// straightAngle is the direction change below which a vertex counts as
// collinear with its neighbours.
const straightAngle = 10.0

// Simplifier removes near-collinear vertices from closed polygons.
type Simplifier struct {
	// Threshold is the direction change, in degrees, at or above which a
	// vertex is treated as a spike and removed.
	Threshold float64

	// MinDistance is the distance below which neighbouring vertices are
	// skipped when measuring angles.
	MinDistance float64
}

// NewSimplifier creates a simplifier with default settings
func NewSimplifier() *Simplifier {
	return &Simplifier{
		Threshold:   170,
		MinDistance: 10,
	}
}

// Simplify returns a copy of the closed polygon with redundant vertices
// removed. Polygons with fewer than 3 points are returned unchanged.
//
// Both guards follow the current length: the walk stops once the removals
// reach the number of vertices left, once the evaluations reach twice that
// number, or after a full pass without removals.
func (s *Simplifier) Simplify(points []image.Point) []image.Point {
	pts := append([]image.Point(nil), points...)
	if len(pts) < 3 {
		return pts
	}

	i, evaluations, removals, idle := 0, 0, 0, 0
	for len(pts) >= 3 && removals < len(pts) && evaluations < 2*len(pts) && idle < len(pts) {
		n := len(pts)
		i %= n
		evaluations++

		v1 := pts[i]
		next := (i + 1) % n
		for next != i && dist(pts[next], v1) < s.MinDistance {
			next = (next + 1) % n
		}
		if next == i {
			i++
			idle++
			continue
		}

		v0 := pts[(i-1+n)%n]
		if dist(v1, v0) < s.MinDistance {
			i++
			idle++
			continue
		}

		a := toPoint(v1).Sub(toPoint(v0))
		b := toPoint(pts[next]).Sub(toPoint(v1))
		if a.Norm() == 0 || b.Norm() == 0 {
			i++
			idle++
			continue
		}

		angle := model.VectorAngle(a, b)
		if angle >= s.Threshold || angle <= straightAngle {
			pts = append(pts[:i], pts[i+1:]...)
			removals++
			idle = 0
			continue
		}
		i++
		idle++
	}
	return pts
}

// Corners reports the direction change at each vertex of a closed polygon,
// measured between the incoming and outgoing edges.
func Corners(pts []image.Point) []float64 {
	n := len(pts)
	angles := make([]float64, n)
	for i := range pts {
		prev := toPoint(pts[(i-1+n)%n])
		cur := toPoint(pts[i])
		next := toPoint(pts[(i+1)%n])
		angles[i] = model.VectorAngle(cur.Sub(prev), next.Sub(cur))
	}
	return angles
}

func toPoint(p image.Point) model.Point {
	return model.Point{X: float64(p.X), Y: float64(p.Y)}
}

func dist(a, b image.Point) float64 {
	return toPoint(a).Distance(toPoint(b))
}
