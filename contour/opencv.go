//go:build gocv

package contour

import (
	"image"

	"gocv.io/x/gocv"
)

// OpenCV traces borders with cv::findContours and approximates them with
// cv::approxPolyDP.
type OpenCV struct{}

// NewOpenCV returns the OpenCV backend
func NewOpenCV() (Backend, error) {
	return OpenCV{}, nil
}

func (OpenCV) Name() string { return "opencv" }

// maskToMat copies a mask into an 8 bit single channel Mat, 255 for set
// pixels
func maskToMat(m Mask) (gocv.Mat, error) {
	b := m.Bounds()
	buf := make([]byte, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if m.IsSet(b.Min.X+x, b.Min.Y+y) {
				buf[y*b.Dx()+x] = 255
			}
		}
	}
	return gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC1, buf)
}

// Find returns every border of the mask with the full hierarchy. A mask
// that cannot be copied into a Mat yields no border.
func (OpenCV) Find(m Mask) []Contour {
	b := m.Bounds()
	if b.Empty() {
		return nil
	}
	mat, err := maskToMat(m)
	if err != nil {
		return nil
	}
	defer mat.Close()

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()
	found := gocv.FindContoursWithParams(mat, &hierarchy, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer found.Close()

	n := found.Size()
	out := make([]Contour, n)
	parents := make([]int, n)
	for i := 0; i < n; i++ {
		// next, previous, first child, parent
		h := hierarchy.GetVeciAt(0, i)
		parents[i] = int(h[3])

		pts := found.At(i).ToPoints()
		for k := range pts {
			pts[k] = pts[k].Add(b.Min)
		}
		out[i] = Contour{Points: pts, Parent: parents[i]}
	}

	holes := holeFlags(parents)
	for i := range out {
		out[i].Hole = holes[i]
		if p := out[i].Parent; p >= 0 {
			out[p].Children = append(out[p].Children, i)
		}
	}
	return out
}

func (OpenCV) Approximate(pts []image.Point, epsilon float64) []image.Point {
	if len(pts) < 3 {
		return append([]image.Point(nil), pts...)
	}
	pv := gocv.NewPointVectorFromPoints(pts)
	defer pv.Close()
	approx := gocv.ApproxPolyDP(pv, epsilon, true)
	defer approx.Close()
	return approx.ToPoints()
}
