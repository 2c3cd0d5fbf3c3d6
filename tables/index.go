package tables

import (
	"github.com/tidwall/rtree"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// cellIndex answers "which detected cell contains this point" queries.
// Ties go to the cell that comes first in the input order.
type cellIndex struct {
	tr    rtree.RTreeG[int]
	cells []model.DetectedCell
}

func newCellIndex(cells []model.DetectedCell) *cellIndex {
	ix := &cellIndex{cells: cells}
	for i, c := range cells {
		r := c.BBox.Normalize()
		ix.tr.Insert([2]float64{r.Left, r.Top}, [2]float64{r.Right, r.Bottom}, i)
	}
	return ix
}

// lookup returns the position in the input of the first cell containing p.
func (ix *cellIndex) lookup(p model.Point) (int, bool) {
	best := -1
	pt := [2]float64{p.X, p.Y}
	ix.tr.Search(pt, pt, func(_, _ [2]float64, i int) bool {
		if ix.cells[i].BBox.Contains(p) && (best < 0 || i < best) {
			best = i
		}
		return true
	})
	return best, best >= 0
}
