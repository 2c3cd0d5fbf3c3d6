package tables

import (
	"testing"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

func word(text string, x0, y0, x1, y1 float64) model.Word {
	return model.Word{Text: text, BBox: model.NewRect(x0, y0, x1, y1)}
}

// TestAssignWords tests grouping of words into cell content
func TestAssignWords(t *testing.T) {
	cells := []model.DetectedCell{
		cell(1, 0, 0, 100, 50),
		cell(2, 100, 0, 200, 50),
	}
	table := BuildTable(cells, 200, 50)

	words := []model.Word{
		word("mundo", 40, 10, 70, 20),
		word("adiós", 5, 25, 35, 35),
		word("Hola", 5, 11, 35, 21),
		word("precio", 110, 10, 150, 20),
		word("fuera", 300, 10, 340, 20),
	}
	AssignWords(table, cells, words)

	if got := table.GetCell(0, 0).Content; got != "Hola mundo\nadiós" {
		t.Errorf("unexpected content %q", got)
	}
	if got := table.GetCell(0, 1).Content; got != "precio" {
		t.Errorf("unexpected content %q", got)
	}
}

// TestAssignWordsMergedRegion tests that only the anchor receives content
func TestAssignWordsMergedRegion(t *testing.T) {
	cells := []model.DetectedCell{
		cell(1, 0, 0, 200, 50),
		cell(2, 0, 50, 100, 100),
		cell(3, 100, 50, 200, 100),
	}
	table := BuildTable(cells, 200, 100)
	AssignWords(table, cells, []model.Word{word("Total", 120, 10, 160, 20)})

	if got := table.GetCell(0, 0).Content; got != "Total" {
		t.Errorf("expected anchor content, got %q", got)
	}
	if got := table.GetCell(0, 1).Content; got != "" {
		t.Errorf("covered cell should stay empty, got %q", got)
	}
}

// TestAssignWordsSplitRegion tests that a cell split into two anchors gets
// its content once
func TestAssignWordsSplitRegion(t *testing.T) {
	// cell 1 is an L whose box also holds cell 2 in its bottom-right corner
	cells := []model.DetectedCell{
		cell(2, 100, 50, 200, 100),
		cell(1, 0, 0, 200, 100),
	}
	table := BuildTable(cells, 200, 100)
	if a, b := table.GetCell(0, 0), table.GetCell(1, 0); a.ID != 1 || b.ID != 1 || !a.IsAnchor() || !b.IsAnchor() {
		t.Fatalf("expected two anchors for cell 1, got\n%s", table)
	}

	AssignWords(table, cells, []model.Word{word("Total", 20, 60, 60, 70)})
	if got := table.GetCell(0, 0).Content; got != "Total" {
		t.Errorf("expected content in the first anchor, got %q", got)
	}
	if got := table.GetCell(1, 0).Content; got != "" {
		t.Errorf("second anchor should stay empty, got %q", got)
	}
}

// TestJoinLinesEmpty tests joining no words
func TestJoinLinesEmpty(t *testing.T) {
	if got := joinLines(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
