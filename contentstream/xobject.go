package contentstream

import (
	"math"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// Placement is an XObject invocation found in a stream
type Placement struct {
	Name string

	// Index counts invocations in stream order from 1
	Index int

	// At is the reference position: the current position for
	// ReplaceImages, the CTM translation for LocateXObjects
	At model.Point

	// CTM and Bounds are only set by LocateXObjects. Bounds is the unit
	// square mapped through the CTM.
	CTM    model.Matrix
	Bounds model.Rect
}

// LocateXObjects lists every Do with the transformation in effect, tracking
// cm through q/Q nesting. An unbalanced Q is ignored.
func LocateXObjects(content []byte) []Placement {
	ctm := model.Identity()
	var stack []model.Matrix
	var out []Placement

	walk(content, func(_ Operation, po PageOperator, _ PositionState) {
		switch po.Kind {
		case OpSave:
			stack = append(stack, ctm)
		case OpRestore:
			if n := len(stack); n > 0 {
				ctm = stack[n-1]
				stack = stack[:n-1]
			}
		case OpTransform:
			ctm = po.Matrix.Multiply(ctm)
		case OpXObject:
			out = append(out, Placement{
				Name:   po.Name,
				Index:  len(out) + 1,
				At:     ctm.Translation(),
				CTM:    ctm,
				Bounds: unitBounds(ctm),
			})
		}
	})
	return out
}

func unitBounds(m model.Matrix) model.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range []model.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}} {
		p := m.Transform(c)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return model.Rect{Left: minX, Top: minY, Right: maxX, Bottom: maxY}
}
