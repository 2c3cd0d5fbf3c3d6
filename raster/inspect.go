package raster

import (
	"image"
	"image/color"
)

// BlankLevel is the grey level at or above which a pixel counts as paper.
const BlankLevel = 250

// IsBlank reports whether every pixel of img inside r has all channels at or
// above level. An empty region is blank.
func IsBlank(img image.Image, r image.Rectangle, level uint8) bool {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R < level || c.G < level || c.B < level {
				return false
			}
		}
	}
	return true
}

// Edges selects sides of a rectangle
type Edges uint8

const (
	EdgeTop Edges = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight

	AllEdges = EdgeTop | EdgeBottom | EdgeLeft | EdgeRight
)

// DirtyPerimeter looks for ink on the selected edges of r, one pixel inside
// the rectangle. Pixels inside any of the exclude rectangles are ignored.
// It returns the first pixel that is not pure white.
func DirtyPerimeter(img image.Image, r image.Rectangle, edges Edges, exclude []image.Rectangle) (image.Point, bool) {
	r = r.Canon()
	if r.Min.X < 0 {
		r.Min.X = 0
	}
	if r.Min.Y < 0 {
		r.Min.Y = 0
	}
	left, top := r.Min.X+1, r.Min.Y+1
	right, bottom := r.Max.X-2, r.Max.Y-2

	var pts []image.Point
	if edges&EdgeTop != 0 {
		for x := left; x <= right; x++ {
			pts = append(pts, image.Point{x, top})
		}
	}
	if edges&EdgeBottom != 0 {
		for x := left; x <= right; x++ {
			pts = append(pts, image.Point{x, bottom})
		}
	}
	if edges&EdgeLeft != 0 {
		for y := top; y <= bottom; y++ {
			pts = append(pts, image.Point{left, y})
		}
	}
	if edges&EdgeRight != 0 {
		for y := top; y <= bottom; y++ {
			pts = append(pts, image.Point{right, y})
		}
	}

	b := img.Bounds()
next:
	for _, p := range pts {
		if !p.In(b) {
			continue
		}
		for _, ex := range exclude {
			if p.In(ex) {
				continue next
			}
		}
		c := color.NRGBAModel.Convert(img.At(p.X, p.Y)).(color.NRGBA)
		if c.R != 255 || c.G != 255 || c.B != 255 {
			return p, true
		}
	}
	return image.Point{}, false
}
