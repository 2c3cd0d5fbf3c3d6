package contentstream

import (
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/internal/logger"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

var log = logger.Get("contentstream")

// Mode selects which side of the target rectangle is removed.
type Mode int

const (
	// RemoveInside drops content inside the target, as when excising a table
	RemoveInside Mode = iota
	// KeepInside drops content outside the target, as when isolating a column
	KeepInside
)

func (m Mode) String() string {
	if m == KeepInside {
		return "keep-inside"
	}
	return "remove-inside"
}

// AreaSpec describes one filtering pass over a stream. Coordinates are in
// document space.
type AreaSpec struct {
	Target     model.Rect
	Exceptions []model.Rect
	Mode       Mode
}

// Removes reports whether content anchored at p is filtered out. Points
// inside an exception are always kept.
func (s AreaSpec) Removes(p model.Point) bool {
	for _, ex := range s.Exceptions {
		if ex.Contains(p) {
			return false
		}
	}
	inside := s.Target.Contains(p)
	if s.Mode == KeepInside {
		return !inside
	}
	return inside
}

// ExceptionSet holds exception rectangles by page index
type ExceptionSet map[int][]model.Rect

// Add records an exception on a page
func (e ExceptionSet) Add(page int, r model.Rect) {
	e[page] = append(e[page], r)
}

// For returns the removal spec for a target on a page, carrying the page's
// exceptions that touch the target.
func (e ExceptionSet) For(page int, target model.Rect) AreaSpec {
	spec := AreaSpec{Target: target}
	for _, ex := range e[page] {
		if ex.Intersects(target) {
			spec.Exceptions = append(spec.Exceptions, ex)
		}
	}
	return spec
}

// Result is the outcome of rewriting one stream
type Result struct {
	Content []byte

	// RemovedLines counts dropped source lines
	RemovedLines int

	// StrippedObjects counts removed Do invocations
	StrippedObjects int

	// Malformed counts operators skipped for bad operands plus bytes the
	// tokenizer could not read
	Malformed int

	// Marked is set when a marker was appended
	Marked bool
}

// Changed reports whether the content differs from the input
func (r Result) Changed() bool {
	return r.RemovedLines > 0 || r.StrippedObjects > 0 || r.Marked
}

// walk classifies every operation of content in order, calling fn with the
// position in effect before the operation. Malformed operations are skipped
// and leave the position alone.
func walk(content []byte, fn func(op Operation, po PageOperator, st PositionState)) int {
	p := NewTolerantParser(content)
	ops, _ := p.Parse()

	malformed := p.Skipped
	var st PositionState
	for _, op := range ops {
		po := Classify(op)
		if !po.Valid {
			malformed++
			log.Debug("skipping malformed operator", "op", op.Operator, "offset", op.At)
			continue
		}
		fn(op, po, st)
		st.Apply(po)
	}
	return malformed
}

// FilterStream removes the content selected by spec. A text, path or
// rectangle operator selected for removal drops its whole source line; a
// selected Do loses only its own "/Name Do" span.
func FilterStream(content []byte, spec AreaSpec) Result {
	ed := newEditor(content)
	var res Result

	res.Malformed = walk(content, func(op Operation, po PageOperator, st PositionState) {
		p, ok := st.Point(po)
		if !ok || !spec.Removes(p) {
			return
		}
		if po.Kind == OpXObject {
			ed.cut(op.Start, op.End)
			res.StrippedObjects++
			return
		}
		if ed.dropLine(op.At) {
			res.RemovedLines++
		}
	})

	res.Content = ed.bytes()
	log.Debug("stream filtered",
		"mode", spec.Mode,
		"lines", res.RemovedLines,
		"xobjects", res.StrippedObjects,
		"malformed", res.Malformed)
	return res
}

// FilterStreamWithMarker filters like FilterStream and appends a text
// operator showing marker at the left edge and vertical center of the
// target.
func FilterStreamWithMarker(content []byte, spec AreaSpec, marker string) Result {
	res := FilterStream(content, spec)
	snippet := DefaultMarkerStyle.Snippet(marker, MarkerPoint(spec.Target))

	out := make([]byte, 0, len(res.Content)+len(snippet))
	out = append(out, res.Content...)
	res.Content = append(out, snippet...)
	res.Marked = true
	return res
}

// StripText drops every line that shows text.
func StripText(content []byte) Result {
	ed := newEditor(content)
	var res Result

	res.Malformed = walk(content, func(op Operation, po PageOperator, _ PositionState) {
		if po.Kind == OpTextShow && ed.dropLine(op.At) {
			res.RemovedLines++
		}
	})
	res.Content = ed.bytes()
	return res
}

// ReplaceImages removes every Do invocation. The line of each one is
// preceded by a comment naming the object and followed by a marker showing
// key(n) at the current position, n counting from 1.
func ReplaceImages(content []byte, key func(n int) string) (Result, []Placement) {
	ed := newEditor(content)
	var res Result
	var placed []Placement

	res.Malformed = walk(content, func(op Operation, po PageOperator, st PositionState) {
		if po.Kind != OpXObject {
			return
		}
		res.StrippedObjects++
		at := model.Point{X: st.X, Y: st.Y}
		placed = append(placed, Placement{Name: po.Name, Index: res.StrippedObjects, At: at})

		ed.cut(op.Start, op.End)
		ed.insertBefore(op.At, "% Imagen eliminada: "+po.Name)
		ed.insertAfter(op.At, string(DefaultMarkerStyle.Snippet(key(res.StrippedObjects), at)))
	})
	res.Content = ed.bytes()
	return res, placed
}
