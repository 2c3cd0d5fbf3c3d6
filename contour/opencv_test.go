//go:build gocv

package contour

import "testing"

// TestOpenCVFindHierarchy tests that OpenCV borders agree with the native
// tracer on a square with a hole
func TestOpenCVFindHierarchy(t *testing.T) {
	m := newGridMask(12, 12)
	m.fill(2, 2, 8, 8)
	m.clear(4, 4, 6, 6)

	b, err := BackendByName("opencv")
	if err != nil {
		t.Fatalf("BackendByName failed: %v", err)
	}
	got := b.Find(m)
	if len(got) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(got))
	}

	outer, hole := got[0], got[1]
	if outer.Hole {
		outer, hole = hole, outer
	}
	if outer.Hole || !hole.Hole {
		t.Fatalf("unexpected border types: %+v", got)
	}
	if len(outer.Children) != 1 || len(hole.Children) != 0 {
		t.Errorf("unexpected hierarchy %+v", got)
	}

	native := Find(m)
	if BoundingRect(outer.Points) != BoundingRect(native[0].Points) {
		t.Errorf("outer bounds %v, native %v", BoundingRect(outer.Points), BoundingRect(native[0].Points))
	}
}

// TestOpenCVApproximate tests polygon reduction through approxPolyDP
func TestOpenCVApproximate(t *testing.T) {
	b := OpenCV{}
	pts := denseRect(240, 120, 12)
	if n := len(b.Approximate(pts, 2)); n != 4 {
		t.Errorf("expected 4 corners, got %d", n)
	}
}
