package tables

import (
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// BuildTable turns detected cells into a rows × columns table with merged
// regions. Each grid cell takes the id of the first detected cell containing
// its center. Runs of equal ids are merged row-major: rightward first, then
// downward while every column of the run matches. Cell ids must be at
// least 1: a cell with id model.NoCell is indistinguishable from an
// uncovered position and its region stays unmerged and empty.
func BuildTable(cells []model.DetectedCell, width, height int) *model.Table {
	grid := BuildGrid(cells, width, height)
	rows, cols := grid.Rows(), grid.Cols()

	table := model.NewTable(rows, cols)
	table.Grid = grid
	if rows == 0 || cols == 0 {
		return table
	}

	ix := newCellIndex(cells)
	ids := make([][]int, rows)
	for i := range ids {
		ids[i] = make([]int, cols)
		for j := range ids[i] {
			if k, ok := ix.lookup(grid.Cell(i, j).Center()); ok {
				ids[i][j] = cells[k].ID
			}
		}
	}

	visited := make([][]bool, rows)
	for i := range visited {
		visited[i] = make([]bool, cols)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if visited[i][j] {
				continue
			}
			id := ids[i][j]
			if id == model.NoCell {
				r := grid.Cell(i, j)
				table.Rows[i][j] = model.TableCell{RowSpan: 1, ColSpan: 1, Center: r.Center(), BBox: r}
				continue
			}

			colspan := 1
			for j+colspan < cols && ids[i][j+colspan] == id && !visited[i][j+colspan] {
				colspan++
			}

			rowspan := 1
			for i+rowspan < rows && rowMatches(ids[i+rowspan], visited[i+rowspan], j, colspan, id) {
				rowspan++
			}

			first := grid.Cell(i, j)
			last := grid.Cell(i+rowspan-1, j+colspan-1)
			merged := model.Rect{Left: first.Left, Top: first.Top, Right: last.Right, Bottom: last.Bottom}
			center := merged.Center()

			for r := 0; r < rowspan; r++ {
				for c := 0; c < colspan; c++ {
					visited[i+r][j+c] = true
					table.Rows[i+r][j+c] = model.TableCell{ID: id, Center: center, BBox: merged}
				}
			}
			table.Rows[i][j].RowSpan = rowspan
			table.Rows[i][j].ColSpan = colspan
		}
	}

	log.Debug("table built", "rows", rows, "cols", cols, "cells", len(cells))
	return table
}

// rowMatches reports whether columns [j, j+span) of a row all carry id and
// are still free.
func rowMatches(ids []int, visited []bool, j, span, id int) bool {
	for k := j; k < j+span; k++ {
		if ids[k] != id || visited[k] {
			return false
		}
	}
	return true
}
