package contentstream

import (
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// PositionState tracks the reference point used to place text and images.
// It is a single point, not a graphics state stack: cm and Tm set it to
// their translation, Td and TD move it.
type PositionState struct {
	X, Y float64
}

// Apply updates the state for a valid operator
func (s *PositionState) Apply(op PageOperator) {
	if !op.Valid {
		return
	}
	switch op.Kind {
	case OpTransform, OpTextMatrix:
		s.X, s.Y = op.Matrix[4], op.Matrix[5]
	case OpTextMove:
		s.X += op.X
		s.Y += op.Y
	}
}

// Point returns the point tested against filter areas for a removable
// operator. Text and XObjects are placed at the current position, path and
// rectangle operators at their own coordinates.
func (s PositionState) Point(op PageOperator) (model.Point, bool) {
	if !op.Valid || !op.Kind.Removable() {
		return model.Point{}, false
	}
	switch op.Kind {
	case OpMoveTo, OpLineTo, OpRect:
		return model.Point{X: op.X, Y: op.Y}, true
	default:
		return model.Point{X: s.X, Y: s.Y}, true
	}
}
