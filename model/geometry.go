package model

import "math"

// Point represents a 2D point or vector
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Sub returns the vector from other to p
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Norm returns the length of p treated as a vector
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// DegenerateAngle is returned by the angle helpers when a vector has no length.
const DegenerateAngle = 180.0

// VectorAngle returns the angle between two vectors in degrees, in [0, 180].
// A zero-length vector yields DegenerateAngle.
func VectorAngle(a, b Point) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return DegenerateAngle
	}
	cos := (a.X*b.X + a.Y*b.Y) / (na * nb)
	// rounding can push the cosine slightly outside [-1, 1]
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// AngleAt returns the angle at p1 formed by the segments p1→p0 and p1→p2.
func AngleAt(p0, p1, p2 Point) float64 {
	return VectorAngle(p0.Sub(p1), p2.Sub(p1))
}

// Margins is the padding added on each side of a crop rectangle
type Margins struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// DefaultMargins are the margins added around a table crop before it is
// rasterized.
var DefaultMargins = Margins{Left: 3, Top: 4, Right: 6, Bottom: 4}

// Rect represents an axis-aligned rectangle (left, top, right, bottom).
// Top is the smaller Y value once normalized, whatever the coordinate space.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// NewRect creates a normalized rectangle from two corners
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{Left: x0, Top: y0, Right: x1, Bottom: y1}.Normalize()
}

// RectFromSize creates a rectangle from an origin and a size
func RectFromSize(x, y, w, h float64) Rect {
	return NewRect(x, y, x+w, y+h)
}

// Normalize orders the edges so that Left <= Right and Top <= Bottom
func (r Rect) Normalize() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return math.Abs(r.Right - r.Left)
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return math.Abs(r.Bottom - r.Top)
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: (r.Left + r.Right) / 2,
		Y: (r.Top + r.Bottom) / 2,
	}
}

// Area returns the area of the rectangle
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Point) bool {
	n := r.Normalize()
	return n.Left <= p.X && p.X <= n.Right &&
		n.Top <= p.Y && p.Y <= n.Bottom
}

// ContainsRect reports whether other lies completely inside r
func (r Rect) ContainsRect(other Rect) bool {
	o := other.Normalize()
	return r.Contains(Point{o.Left, o.Top}) && r.Contains(Point{o.Right, o.Bottom})
}

// Intersects checks if two rectangles overlap, touching edges included
func (r Rect) Intersects(other Rect) bool {
	a, b := r.Normalize(), other.Normalize()
	return !(a.Right < b.Left || a.Left > b.Right ||
		a.Bottom < b.Top || a.Top > b.Bottom)
}

// Expand grows the rectangle by the given margins
func (r Rect) Expand(m Margins) Rect {
	n := r.Normalize()
	return Rect{
		Left:   n.Left - m.Left,
		Top:    n.Top - m.Top,
		Right:  n.Right + m.Right,
		Bottom: n.Bottom + m.Bottom,
	}
}

// FlipY converts a top-left origin rectangle into a bottom-left origin one
// for a page of the given height.
func (r Rect) FlipY(pageHeight float64) Rect {
	n := r.Normalize()
	return Rect{
		Left:   n.Left,
		Top:    pageHeight - n.Bottom,
		Right:  n.Right,
		Bottom: pageHeight - n.Top,
	}
}

// Matrix represents a 2D affine transformation matrix [a b c d e f]
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply returns m × other, i.e. m applied first
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translation returns the (e, f) components
func (m Matrix) Translation() Point {
	return Point{X: m[4], Y: m[5]}
}
