package tables

import (
	"strings"
	"testing"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// TestRenderHTML tests spans, escaping and line breaks
func TestRenderHTML(t *testing.T) {
	table := model.NewTable(2, 2)
	table.Rows[0][0] = model.TableCell{ID: 1, RowSpan: 1, ColSpan: 2, Content: "a < b"}
	table.Rows[0][1] = model.TableCell{ID: 1}
	table.Rows[1][0] = model.TableCell{ID: 2, RowSpan: 1, ColSpan: 1, Content: "uno\ndos"}
	table.Rows[1][1] = model.TableCell{ID: 3, RowSpan: 1, ColSpan: 1}

	var sb strings.Builder
	if err := RenderHTML(&sb, table); err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	got := sb.String()

	want := `<table border="1"><tr><td colspan="2">a &lt; b</td></tr>` +
		`<tr><td>uno<br/>dos</td><td></td></tr></table>`
	if got != want {
		t.Errorf("unexpected html\n got: %s\nwant: %s", got, want)
	}
}

// TestHTMLNodeRowspan tests the rowspan attribute
func TestHTMLNodeRowspan(t *testing.T) {
	table := model.NewTable(2, 1)
	table.Rows[0][0] = model.TableCell{ID: 1, RowSpan: 2, ColSpan: 1}
	table.Rows[1][0] = model.TableCell{ID: 1}

	n := HTMLNode(table)
	td := n.FirstChild.FirstChild
	if td == nil || td.Data != "td" {
		t.Fatal("expected a td in the first row")
	}
	if len(td.Attr) != 1 || td.Attr[0].Key != "rowspan" || td.Attr[0].Val != "2" {
		t.Errorf("unexpected attributes %v", td.Attr)
	}
	if n.LastChild.FirstChild != nil {
		t.Error("second row should have no td")
	}
}
