package contentstream

import (
	"math"
	"unicode"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// Glyph metrics used to size word boxes when the font program is not
// available, as fractions of the font size.
const (
	glyphWidth = 0.5
	ascent     = 0.8
	descent    = 0.2

	defaultFontSize = 12
)

// Words lists the words shown by the text operators of a stream with an
// estimated box in page points, origin at the top-left of a page of the
// given height. Strings are decoded as Latin-1. Successive shows at the
// same position continue where the previous one ended.
func Words(content []byte, pageHeight float64) []model.Word {
	var words []model.Word
	size, scale := float64(defaultFontSize), 1.0
	var last PositionState
	var pen float64
	started := false

	walk(content, func(op Operation, po PageOperator, st PositionState) {
		switch {
		case op.Operator == "Tf" && len(op.Operands) == 2:
			if n, ok := op.Operands[1].(Number); ok && n != 0 {
				size = math.Abs(float64(n))
			}
			return
		case po.Kind == OpTextMatrix:
			if d := math.Abs(po.Matrix[3]); d != 0 {
				scale = d
			}
			return
		case po.Kind != OpTextShow:
			return
		}

		if !started || st != last {
			pen = st.X
			last = st
			started = true
		}
		em := size * scale
		text := []rune(DecodeLatin1(po.Text))

		start := -1
		flush := func(end int) {
			if start < 0 {
				return
			}
			x0 := pen + float64(start)*glyphWidth*em
			x1 := pen + float64(end)*glyphWidth*em
			box := model.NewRect(x0, st.Y-descent*em, x1, st.Y+ascent*em)
			words = append(words, model.Word{Text: string(text[start:end]), BBox: box.FlipY(pageHeight)})
			start = -1
		}
		for i, r := range text {
			if unicode.IsSpace(r) {
				flush(i)
				continue
			}
			if start < 0 {
				start = i
			}
		}
		flush(len(text))
		pen += float64(len(text)) * glyphWidth * em
	})
	return words
}
