package contentstream

import (
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// OpKind is the class of a content stream operator relevant to spatial
// filtering.
type OpKind int

const (
	// OpOther is any operator the filter passes through untouched
	OpOther OpKind = iota
	// OpTransform is cm
	OpTransform
	// OpTextMatrix is Tm
	OpTextMatrix
	// OpTextMove is Td or TD
	OpTextMove
	// OpTextShow is Tj, TJ, ' or "
	OpTextShow
	// OpMoveTo is m
	OpMoveTo
	// OpLineTo is l
	OpLineTo
	// OpRect is re
	OpRect
	// OpXObject is Do
	OpXObject
	// OpSave is q
	OpSave
	// OpRestore is Q
	OpRestore
)

var kindNames = [...]string{
	OpOther:      "other",
	OpTransform:  "cm",
	OpTextMatrix: "Tm",
	OpTextMove:   "Td",
	OpTextShow:   "text",
	OpMoveTo:     "m",
	OpLineTo:     "l",
	OpRect:       "re",
	OpXObject:    "Do",
	OpSave:       "q",
	OpRestore:    "Q",
}

func (k OpKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Removable reports whether operators of this kind can be dropped by the
// spatial filter.
func (k OpKind) Removable() bool {
	switch k {
	case OpTextShow, OpMoveTo, OpLineTo, OpRect, OpXObject:
		return true
	}
	return false
}

var operatorKinds = map[string]OpKind{
	"cm": OpTransform,
	"Tm": OpTextMatrix,
	"Td": OpTextMove,
	"TD": OpTextMove,
	"Tj": OpTextShow,
	"TJ": OpTextShow,
	"'":  OpTextShow,
	`"`:  OpTextShow,
	"m":  OpMoveTo,
	"l":  OpLineTo,
	"re": OpRect,
	"Do": OpXObject,
	"q":  OpSave,
	"Q":  OpRestore,
}

// PageOperator is a classified operation with its numeric operands
// extracted. Only the fields of its kind are set.
type PageOperator struct {
	Kind OpKind

	// Matrix is set for OpTransform and OpTextMatrix
	Matrix model.Matrix

	// X, Y hold the point of m, l and re, or the offset of Td and TD
	X, Y float64

	// W, H hold the size of re
	W, H float64

	// Name is the XObject of Do
	Name string

	// Text is the shown string of a text operator. TJ pieces are
	// concatenated.
	Text string

	// Valid is false when the operands did not match the operator
	Valid bool
}

// Classify converts an operation into a PageOperator. Malformed operands
// yield Valid=false.
func Classify(op Operation) PageOperator {
	kind, ok := operatorKinds[op.Operator]
	if !ok {
		return PageOperator{Kind: OpOther, Valid: true}
	}
	po := PageOperator{Kind: kind}
	args := op.Operands

	switch kind {
	case OpTransform, OpTextMatrix:
		if n, ok := numbers(args, 6); ok {
			copy(po.Matrix[:], n)
			po.Valid = true
		}
	case OpTextMove, OpMoveTo, OpLineTo:
		if n, ok := numbers(args, 2); ok {
			po.X, po.Y = n[0], n[1]
			po.Valid = true
		}
	case OpRect:
		if n, ok := numbers(args, 4); ok {
			po.X, po.Y, po.W, po.H = n[0], n[1], n[2], n[3]
			po.Valid = true
		}
	case OpXObject:
		if len(args) == 1 {
			if name, ok := args[0].(Name); ok {
				po.Name = string(name)
				po.Valid = true
			}
		}
	case OpTextShow:
		po.Text, po.Valid = shownText(op.Operator, args)
	case OpSave, OpRestore:
		po.Valid = len(args) == 0
	}
	return po
}

// numbers returns the operands as floats when there are exactly n numbers.
func numbers(args []Operand, n int) ([]float64, bool) {
	if len(args) != n {
		return nil, false
	}
	out := make([]float64, n)
	for i, a := range args {
		v, ok := a.(Number)
		if !ok {
			return nil, false
		}
		out[i] = float64(v)
	}
	return out, true
}

func shownText(operator string, args []Operand) (string, bool) {
	switch operator {
	case "Tj", "'":
		if len(args) == 1 {
			if s, ok := args[0].(Text); ok {
				return string(s), true
			}
		}
	case `"`:
		if len(args) == 3 {
			_, ok1 := args[0].(Number)
			_, ok2 := args[1].(Number)
			if s, ok := args[2].(Text); ok && ok1 && ok2 {
				return string(s), true
			}
		}
	case "TJ":
		if len(args) == 1 {
			if arr, ok := args[0].(Array); ok {
				var out []byte
				for _, item := range arr {
					switch v := item.(type) {
					case Text:
						out = append(out, v...)
					case Number:
					default:
						return "", false
					}
				}
				return string(out), true
			}
		}
	}
	return "", false
}
