package tables

import (
	"image"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/contour"
)

// LeafPredicate decides whether a contour bounds an atomic cell.
// kept marks the contours that survived the area filter.
type LeafPredicate interface {
	IsLeaf(index int, contours []contour.Contour, kept []bool) bool
}

// NoChildren accepts contours that enclose no other kept contour.
type NoChildren struct{}

// IsLeaf implements LeafPredicate
func (NoChildren) IsLeaf(index int, contours []contour.Contour, kept []bool) bool {
	for _, child := range contours[index].Children {
		if kept[child] {
			return false
		}
	}
	return true
}

// HolesOnly accepts leaf contours that are hole borders, i.e. the inside of
// a ruled cell rather than a solid blob of ink.
type HolesOnly struct{}

// IsLeaf implements LeafPredicate
func (HolesOnly) IsLeaf(index int, contours []contour.Contour, kept []bool) bool {
	return contours[index].Hole && NoChildren{}.IsLeaf(index, contours, kept)
}

// ShapePredicate decides whether a simplified outline is a cell.
type ShapePredicate interface {
	Accept(poly []image.Point) bool
}

// Rectangular accepts polygons with a fixed vertex count whose direction
// change at every vertex lies in [MinAngle, MaxAngle].
type Rectangular struct {
	Vertices int
	MinAngle float64
	MaxAngle float64
}

// Accept implements ShapePredicate
func (r Rectangular) Accept(poly []image.Point) bool {
	if len(poly) != r.Vertices {
		return false
	}
	for _, a := range contour.Corners(poly) {
		if a < r.MinAngle || a > r.MaxAngle {
			return false
		}
	}
	return true
}
