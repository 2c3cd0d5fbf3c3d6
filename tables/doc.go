// Package tables reconstructs table structure from a raster of a table crop.
//
// # Detection
//
// A [CellDetector] finds the atomic cells of a bordered table:
//
//	det, err := tables.NewCellDetector().DetectFile("tabla.png")
//
// The raster is flattened onto white, strongly colored pixels are erased,
// missing outer borders are drawn back and the ruling is closed with a small
// morphological kernel. Closed contours without kept children that reduce to
// a rectangle become cells, numbered from 1 in reading order.
//
// Which contours count as leaves and which polygons count as cells is
// controlled by [Config] through [LeafPredicate] and [ShapePredicate].
// Named shapes can be registered with [RegisterShape].
//
// # Structure
//
// [BuildTable] clusters the cell edges into grid lines ([BuildGrid]), labels
// each grid position with the cell containing its center and merges equal
// labels into row and column spans.
//
// # Output
//
// [Remapper] moves cells and tables from raster pixels into document
// coordinates, [AssignWords] fills anchor cells with text and [RenderHTML]
// writes the table as HTML.
package tables
