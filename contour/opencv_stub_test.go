//go:build !gocv

package contour

import (
	"errors"
	"testing"
)

// TestOpenCVNotEnabled tests that the OpenCV backend reports the missing
// build tag
func TestOpenCVNotEnabled(t *testing.T) {
	b, err := BackendByName("opencv")
	if !errors.Is(err, ErrOpenCVNotEnabled) {
		t.Errorf("Expected ErrOpenCVNotEnabled, got: %v", err)
	}
	if b != nil {
		t.Error("Expected nil backend when OpenCV is disabled")
	}
}
