// Package model provides the geometry and table types shared by the curation
// pipeline.
//
// Rectangles are stored as (left, top, right, bottom) in whatever coordinate
// space the caller states: raster pixels with Y growing downward, or
// document points with Y growing upward. [Rect.FlipY] converts a top-left
// origin rectangle into document space.
//
// # Tables
//
// A [Table] is a rows × columns matrix of [TableCell] values. Merged regions
// have exactly one anchor cell carrying the real row and column spans; every
// other grid position covered by the merge has zero spans and the anchor's id:
//
//	for i, row := range table.Rows {
//	    for j, cell := range row {
//	        if cell.IsAnchor() {
//	            fmt.Println(i, j, cell.RowSpan, cell.ColSpan)
//	        }
//	    }
//	}
//
// # Geometry
//
//   - [Point] - 2D point with distance and vector helpers
//   - [Rect] - normalized rectangle with inclusive containment
//   - [Margins] - per-side padding added around a crop
//   - [Matrix] - 2D affine transformation matrix
package model
