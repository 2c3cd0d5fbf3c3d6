package tables

import (
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// Remapper converts raster coordinates of a table crop into document
// coordinates. The raster must have been produced with uniform scaling of
// the crop expanded by the margins; nothing here can detect otherwise.
type Remapper struct {
	// Effective is the crop rectangle expanded by its margins
	Effective model.Rect
	ScaleX    float64
	ScaleY    float64
}

// NewRemapper creates a remapper for a crop rendered to a width × height
// raster. A zero raster dimension keeps scale 1 on that axis.
func NewRemapper(crop model.Rect, margins model.Margins, width, height int) Remapper {
	eff := crop.Expand(margins)
	r := Remapper{Effective: eff, ScaleX: 1, ScaleY: 1}
	if width > 0 {
		r.ScaleX = eff.Width() / float64(width)
	}
	if height > 0 {
		r.ScaleY = eff.Height() / float64(height)
	}
	return r
}

// Point maps a raster point into document space
func (m Remapper) Point(p model.Point) model.Point {
	return model.Point{
		X: m.Effective.Left + p.X*m.ScaleX,
		Y: m.Effective.Top + p.Y*m.ScaleY,
	}
}

// Rect maps a raster rectangle into document space
func (m Remapper) Rect(r model.Rect) model.Rect {
	r = r.Normalize()
	return model.RectFromSize(
		m.Effective.Left+r.Left*m.ScaleX,
		m.Effective.Top+r.Top*m.ScaleY,
		r.Width()*m.ScaleX,
		r.Height()*m.ScaleY,
	)
}

// Cells returns document-space copies of the cells
func (m Remapper) Cells(cells []model.DetectedCell) []model.DetectedCell {
	out := make([]model.DetectedCell, len(cells))
	for i, c := range cells {
		out[i] = model.DetectedCell{
			ID:       c.ID,
			BBox:     m.Rect(c.BBox),
			Centroid: m.Point(c.Centroid),
		}
	}
	return out
}

// Table moves the centers and boxes of every table cell into document space
// in place.
func (m Remapper) Table(t *model.Table) {
	for i := range t.Rows {
		for j := range t.Rows[i] {
			c := &t.Rows[i][j]
			c.Center = m.Point(c.Center)
			c.BBox = m.Rect(c.BBox)
		}
	}
}

// Remap converts raster-space cells of a width × height crop raster into
// document space.
func Remap(cells []model.DetectedCell, crop model.Rect, margins model.Margins, width, height int) []model.DetectedCell {
	return NewRemapper(crop, margins, width, height).Cells(cells)
}
