package contour

import (
	"errors"
	"fmt"
	"image"
)

// ErrOpenCVNotEnabled is returned when the OpenCV backend is requested from
// a binary built without it.
var ErrOpenCVNotEnabled = errors.New("contour: opencv support not enabled; rebuild with -tags gocv")

// Backend traces and approximates outlines. The native backend is pure Go;
// the OpenCV one needs cgo and is only compiled with the gocv build tag.
type Backend interface {
	Name() string
	Find(m Mask) []Contour
	Approximate(pts []image.Point, epsilon float64) []image.Point
}

// Native is the pure Go backend
type Native struct{}

func (Native) Name() string { return "native" }

func (Native) Find(m Mask) []Contour { return Find(m) }

func (Native) Approximate(pts []image.Point, epsilon float64) []image.Point {
	return Approximate(pts, epsilon)
}

// BackendByName returns the backend called name. An empty name selects the
// native backend.
func BackendByName(name string) (Backend, error) {
	switch name {
	case "", "native":
		return Native{}, nil
	case "opencv":
		return NewOpenCV()
	}
	return nil, fmt.Errorf("contour: unknown backend %q", name)
}

// holeFlags marks the borders nested at an odd depth, given each border's
// parent index
func holeFlags(parents []int) []bool {
	holes := make([]bool, len(parents))
	done := make([]bool, len(parents))
	var visit func(i int) bool
	visit = func(i int) bool {
		if done[i] {
			return holes[i]
		}
		done[i] = true
		if p := parents[i]; p >= 0 && p < len(parents) && p != i {
			holes[i] = !visit(p)
		}
		return holes[i]
	}
	for i := range parents {
		visit(i)
	}
	return holes
}
