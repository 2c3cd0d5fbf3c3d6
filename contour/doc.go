// Package contour extracts and simplifies polygon outlines from binary
// rasters.
//
// [Find] follows every border of a [Mask] with 8-connectivity and records the
// parent/child hierarchy between outer borders and hole borders. Points are
// compressed so that only direction changes remain.
//
// A [Simplifier] then removes near-collinear vertices and [Approximate]
// reduces the outline to its dominant corners:
//
//	contours := contour.Find(mask)
//	s := contour.NewSimplifier()
//	for _, c := range contours {
//	    pts := s.Simplify(c.Points)
//	    pts = contour.Approximate(pts, 0.015*contour.Perimeter(pts))
//	    fmt.Println(len(pts), contour.Centroid(pts))
//	}
package contour
