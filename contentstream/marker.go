package contentstream

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// MarkerStyle configures the text operator emitted for markers
type MarkerStyle struct {
	// Font is the resource name of the font, without slash
	Font  string
	Size  float64
	Color string
}

// DefaultMarkerStyle writes markers in /F1 at 8.04 points, black.
var DefaultMarkerStyle = MarkerStyle{Font: "F1", Size: 8.04, Color: "0 G"}

// MarkerPoint returns where a marker for target is placed: its left edge at
// the vertical center.
func MarkerPoint(target model.Rect) model.Point {
	n := target.Normalize()
	return model.Point{X: n.Left, Y: n.Top + n.Height()/2}
}

// Snippet returns a self contained text block showing text at the given
// document position.
func (s MarkerStyle) Snippet(text string, at model.Point) []byte {
	var sb strings.Builder
	sb.WriteString("\nq\nBT\n")
	fmt.Fprintf(&sb, "/%s %s Tf\n", s.Font, formatNumber(s.Size))
	fmt.Fprintf(&sb, "1 0 0 1 %s %s Tm\n", formatNumber(at.X), formatNumber(at.Y))
	sb.WriteString(s.Color + "\n")
	sb.WriteString("[(" + escapeLiteral(EncodeLatin1(text)) + ")] TJ\n")
	sb.WriteString("ET\nQ\n")
	return []byte(sb.String())
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EncodeLatin1 converts UTF-8 text to Latin-1 bytes. Runes outside
// Latin-1 become '?'.
func EncodeLatin1(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return string(out)
}

// DecodeLatin1 converts the raw bytes of a shown string to UTF-8
func DecodeLatin1(s string) string {
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}

// escapeLiteral escapes the bytes that would end or break a literal string
func escapeLiteral(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`, "\r", `\r`, "\n", `\n`)
	return r.Replace(s)
}

// TableKey is the marker written where table idx of page was removed.
// Both indexes count from 0.
func TableKey(page, idx int) string {
	return fmt.Sprintf("Llave_Unica_Tabla_%d_%d", page+1, idx+1)
}

// ImageKey is the marker written where image idx of page was removed.
// Both indexes count from 0.
func ImageKey(page, idx int) string {
	return fmt.Sprintf("Llave_Unica_Imagen_%d_%d", page+1, idx+1)
}
