package contour

import (
	"image"
	"math"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// signedArea returns the shoelace area; its sign depends on orientation.
func signedArea(pts []image.Point) float64 {
	var sum float64
	n := len(pts)
	for i := range pts {
		p, q := pts[i], pts[(i+1)%n]
		sum += float64(p.X*q.Y - q.X*p.Y)
	}
	return sum / 2
}

// Area returns the absolute area enclosed by the polygon
func Area(pts []image.Point) float64 {
	return math.Abs(signedArea(pts))
}

// Centroid returns the area centroid of the polygon. Polygons without area
// fall back to the mean of their vertices.
func Centroid(pts []image.Point) model.Point {
	if len(pts) == 0 {
		return model.Point{}
	}

	a := signedArea(pts)
	if a == 0 {
		var sx, sy float64
		for _, p := range pts {
			sx += float64(p.X)
			sy += float64(p.Y)
		}
		return model.Point{X: sx / float64(len(pts)), Y: sy / float64(len(pts))}
	}

	var cx, cy float64
	n := len(pts)
	for i := range pts {
		p, q := pts[i], pts[(i+1)%n]
		cross := float64(p.X*q.Y - q.X*p.Y)
		cx += float64(p.X+q.X) * cross
		cy += float64(p.Y+q.Y) * cross
	}
	return model.Point{X: cx / (6 * a), Y: cy / (6 * a)}
}

// BoundingRect returns the smallest pixel rectangle covering every point.
// Both edges are inclusive pixels, so a single point has size 1×1.
func BoundingRect(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	r.Max = r.Max.Add(image.Point{1, 1})
	return r
}
