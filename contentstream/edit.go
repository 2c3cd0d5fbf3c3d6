package contentstream

import (
	"bytes"
	"sort"
)

// editor applies line level edits to a content stream. Lines are separated
// by '\n' and the output keeps that separator, so a stream without edits
// comes back unchanged.
type editor struct {
	data   []byte
	starts []int // offset of each line
	drop   map[int]bool
	cuts   [][2]int
	before map[int][]string
	after  map[int][]string
}

func newEditor(data []byte) *editor {
	starts := []int{0}
	for i, c := range data {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &editor{
		data:   data,
		starts: starts,
		drop:   make(map[int]bool),
		before: make(map[int][]string),
		after:  make(map[int][]string),
	}
}

// line returns the index of the line holding offset
func (e *editor) line(offset int) int {
	return sort.SearchInts(e.starts, offset+1) - 1
}

// dropLine removes the line holding offset. It reports false when the line
// was already dropped.
func (e *editor) dropLine(offset int) bool {
	i := e.line(offset)
	if e.drop[i] {
		return false
	}
	e.drop[i] = true
	return true
}

// cut removes the bytes [start, end) from the output
func (e *editor) cut(start, end int) {
	e.cuts = append(e.cuts, [2]int{start, end})
}

func (e *editor) insertBefore(offset int, text string) {
	i := e.line(offset)
	e.before[i] = append(e.before[i], text)
}

func (e *editor) insertAfter(offset int, text string) {
	i := e.line(offset)
	e.after[i] = append(e.after[i], text)
}

func (e *editor) edited() bool {
	return len(e.drop) > 0 || len(e.cuts) > 0 || len(e.before) > 0 || len(e.after) > 0
}

// bytes renders the edited stream
func (e *editor) bytes() []byte {
	if !e.edited() {
		return e.data
	}
	sort.Slice(e.cuts, func(i, j int) bool { return e.cuts[i][0] < e.cuts[j][0] })

	lines := make([][]byte, 0, len(e.starts))
	for i, start := range e.starts {
		end := len(e.data)
		if i+1 < len(e.starts) {
			end = e.starts[i+1] - 1
		}
		for _, s := range e.before[i] {
			lines = append(lines, []byte(s))
		}
		if !e.drop[i] {
			lines = append(lines, e.cutLine(start, end))
		}
		for _, s := range e.after[i] {
			lines = append(lines, []byte(s))
		}
	}
	return bytes.Join(lines, []byte("\n"))
}

// cutLine returns data[start:end] without the cut spans
func (e *editor) cutLine(start, end int) []byte {
	var out []byte
	pos := start
	for _, c := range e.cuts {
		lo, hi := max(c[0], start), min(c[1], end)
		if lo >= hi || hi <= pos {
			continue
		}
		lo = max(lo, pos)
		out = append(out, e.data[pos:lo]...)
		pos = hi
	}
	if out == nil && pos == start {
		return e.data[start:end]
	}
	return append(out, e.data[pos:end]...)
}
