package raster

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// Flatten composites img onto an opaque white background.
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// ColorLimits select the pixels treated as coloured ink. Values are HSV
// saturation and value in [0, 1].
type ColorLimits struct {
	MinSaturation float64
	MinValue      float64
}

// DefaultColorLimits whiten anything at least moderately saturated and bright.
var DefaultColorLimits = ColorLimits{
	MinSaturation: 150.0 / 255,
	MinValue:      150.0 / 255,
}

// SuppressColor returns a copy of img where coloured pixels are replaced by
// white, keeping only grey ink.
func SuppressColor(img *image.NRGBA, limits ColorLimits) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			_, s, v := hsv(c)
			if s >= limits.MinSaturation && v >= limits.MinValue {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}

func hsv(c color.NRGBA) (h, s, v float64) {
	col := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	return col.Hsv()
}

// isDark reports whether the HSV value of c is at most limit.
func isDark(c color.NRGBA, limit float64) bool {
	_, _, v := hsv(c)
	return v <= limit
}
