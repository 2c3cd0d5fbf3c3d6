package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// LineTolerance is the largest vertical distance between word centers on
// the same line of a cell.
const LineTolerance = 5.0

type placedWord struct {
	center model.Point
	text   string
}

// AssignWords fills the content of anchor cells with the words whose center
// falls inside the detected cell box of the same id. cells and words must
// share a coordinate space. Words are grouped into lines top to bottom, each
// line read left to right. A cell whose region splits into several anchors,
// as a non rectangular outline does, fills only the first one in row-major
// order.
func AssignWords(table *model.Table, cells []model.DetectedCell, words []model.Word) {
	ix := newCellIndex(cells)
	byID := make(map[int][]placedWord)

	for _, w := range words {
		center := w.BBox.Center()
		k, ok := ix.lookup(center)
		if !ok {
			continue
		}
		id := cells[k].ID
		byID[id] = append(byID[id], placedWord{center: center, text: w.Text})
	}

	content := make(map[int]string, len(byID))
	for id, placed := range byID {
		content[id] = joinLines(placed)
	}

	filled := make(map[int]bool, len(content))
	for i := range table.Rows {
		for j := range table.Rows[i] {
			c := &table.Rows[i][j]
			if !c.IsAnchor() || !c.Assigned() || filled[c.ID] {
				continue
			}
			c.Content = content[c.ID]
			filled[c.ID] = true
		}
	}
}

// joinLines orders words into lines and joins them with spaces and newlines.
func joinLines(words []placedWord) string {
	sort.SliceStable(words, func(i, j int) bool {
		a, b := words[i].center, words[j].center
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	var lines [][]placedWord
	for _, w := range words {
		n := len(lines)
		if n > 0 {
			line := lines[n-1]
			if math.Abs(w.center.Y-line[len(line)-1].center.Y) <= LineTolerance {
				lines[n-1] = append(line, w)
				continue
			}
		}
		lines = append(lines, []placedWord{w})
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].center.X < line[j].center.X
		})
		parts := make([]string, len(line))
		for i, w := range line {
			parts[i] = w.text
		}
		out = append(out, strings.Join(parts, " "))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
