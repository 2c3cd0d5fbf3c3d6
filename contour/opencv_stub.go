//go:build !gocv

package contour

// NewOpenCV returns ErrOpenCVNotEnabled.
func NewOpenCV() (Backend, error) {
	return nil, ErrOpenCVNotEnabled
}
