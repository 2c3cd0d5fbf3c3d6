package ocr

import (
	"errors"
	"image"
	"strings"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// ErrOCRNotEnabled is returned when OCR support was not compiled in.
var ErrOCRNotEnabled = errors.New("ocr: support not enabled; rebuild with -tags ocr")

// Config holds recognition settings
type Config struct {
	// Language is a Tesseract language list such as "spa" or "spa+eng"
	Language string

	// MinConfidence drops words Tesseract is less sure about, in 0-100
	MinConfidence float64
}

// DefaultConfig recognizes Spanish and keeps every word
func DefaultConfig() Config {
	return Config{Language: "spa", MinConfidence: 0}
}

// Box is one recognized word in raster pixels
type Box struct {
	Rect       image.Rectangle
	Text       string
	Confidence float64
}

// Words converts boxes into words, skipping blank text and boxes below
// minConfidence.
func Words(boxes []Box, minConfidence float64) []model.Word {
	words := make([]model.Word, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Text)
		if text == "" || b.Confidence < minConfidence {
			continue
		}
		r := b.Rect.Canon()
		words = append(words, model.Word{
			Text: text,
			BBox: model.NewRect(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)),
		})
	}
	return words
}
