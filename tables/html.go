package tables

import (
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// HTMLNode builds a <table> element for the table. Only anchor cells emit a
// <td>; spans greater than one become rowspan/colspan attributes.
func HTMLNode(t *model.Table) *html.Node {
	tableNode := element(atom.Table)
	tableNode.Attr = append(tableNode.Attr, html.Attribute{Key: "border", Val: "1"})

	for _, row := range t.Rows {
		tr := element(atom.Tr)
		for _, cell := range row {
			if !cell.IsAnchor() {
				continue
			}
			td := element(atom.Td)
			if cell.RowSpan > 1 {
				td.Attr = append(td.Attr, html.Attribute{Key: "rowspan", Val: strconv.Itoa(cell.RowSpan)})
			}
			if cell.ColSpan > 1 {
				td.Attr = append(td.Attr, html.Attribute{Key: "colspan", Val: strconv.Itoa(cell.ColSpan)})
			}
			appendText(td, cell.Content)
			tr.AppendChild(td)
		}
		tableNode.AppendChild(tr)
	}
	return tableNode
}

// RenderHTML writes the table as HTML
func RenderHTML(w io.Writer, t *model.Table) error {
	return html.Render(w, HTMLNode(t))
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

// appendText adds text to n, turning newlines into <br> elements.
func appendText(n *html.Node, text string) {
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}
		if i > start {
			n.AppendChild(&html.Node{Type: html.TextNode, Data: text[start:i]})
		}
		if i < len(text) {
			n.AppendChild(element(atom.Br))
		}
		start = i + 1
	}
}
