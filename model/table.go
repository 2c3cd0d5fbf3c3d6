package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DetectedCell is one atomic cell found in a table raster. ID must be at
// least 1; NoCell marks grid positions no cell covers.
type DetectedCell struct {
	ID       int   `json:"id"`
	BBox     Rect  `json:"bbox"`
	Centroid Point `json:"centroid"`
}

// Word is a piece of text with its bounding box
type Word struct {
	Text string `json:"text"`
	BBox Rect   `json:"bbox"`
}

// NoCell is the id of a grid position that no detected cell covers.
// Detected cell ids start at 1.
const NoCell = 0

// TableCell is one grid position of a reconstructed table.
type TableCell struct {
	ID      int
	Content string
	RowSpan int
	ColSpan int
	Center  Point
	BBox    Rect // merged rectangle of the region this position belongs to
}

// IsAnchor reports whether the cell carries the spans of its region
func (c TableCell) IsAnchor() bool {
	return c.RowSpan > 0 && c.ColSpan > 0
}

// Assigned reports whether a detected cell covers this position
func (c TableCell) Assigned() bool {
	return c.ID != NoCell
}

type tableCellJSON struct {
	ID      *int       `json:"id_celda"`
	Content string     `json:"contenido"`
	RowSpan int        `json:"rowspan"`
	ColSpan int        `json:"colspan"`
	Center  [2]float64 `json:"centro"`
}

// MarshalJSON encodes unassigned positions with a null id
func (c TableCell) MarshalJSON() ([]byte, error) {
	out := tableCellJSON{
		Content: c.Content,
		RowSpan: c.RowSpan,
		ColSpan: c.ColSpan,
		Center:  [2]float64{c.Center.X, c.Center.Y},
	}
	if c.Assigned() {
		id := c.ID
		out.ID = &id
	}
	return json.Marshal(out)
}

// GridLines holds the shared column and row boundaries of a table raster.
type GridLines struct {
	X      []int `json:"lines_x"`
	Y      []int `json:"lines_y"`
	Width  int   `json:"width"`
	Height int   `json:"height"`
}

// Rows returns the number of grid rows
func (g GridLines) Rows() int { return len(g.Y) }

// Cols returns the number of grid columns
func (g GridLines) Cols() int { return len(g.X) }

// Cell returns grid cell (i, j). The last row and column extend to the image
// edge.
func (g GridLines) Cell(i, j int) Rect {
	x0, y0 := g.X[j], g.Y[i]
	x1, y1 := g.Width, g.Height
	if j+1 < len(g.X) {
		x1 = g.X[j+1]
	}
	if i+1 < len(g.Y) {
		y1 = g.Y[i+1]
	}
	return Rect{Left: float64(x0), Top: float64(y0), Right: float64(x1), Bottom: float64(y1)}
}

// Table represents a table with cells organized in rows and columns
type Table struct {
	Rows [][]TableCell
	Grid GridLines
}

// NewTable creates a new table with given dimensions
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows: make([][]TableCell, rows),
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]TableCell, cols)
		for j := 0; j < cols; j++ {
			table.Rows[i][j] = TableCell{
				RowSpan: 1,
				ColSpan: 1,
			}
		}
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the first row
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// GetCell returns the cell at the given position, or nil if out of range
func (t *Table) GetCell(row, col int) *TableCell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// Anchor returns the anchor of the region covering (row, col). Unassigned
// positions are their own anchor.
func (t *Table) Anchor(row, col int) *TableCell {
	cell := t.GetCell(row, col)
	if cell == nil || cell.IsAnchor() {
		return cell
	}
	for i := row; i >= 0; i-- {
		for j := col; j >= 0; j-- {
			c := &t.Rows[i][j]
			if c.ID == cell.ID && c.IsAnchor() &&
				i+c.RowSpan > row && j+c.ColSpan > col {
				return c
			}
		}
	}
	return nil
}

// MarshalJSON encodes the table as its matrix of cells
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Rows)
}

// String renders the span layout, one row per line. Useful in test failures.
func (t *Table) String() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			if j > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%d:%dx%d", cell.ID, cell.RowSpan, cell.ColSpan)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
