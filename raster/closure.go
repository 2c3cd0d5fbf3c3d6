package raster

import (
	"image"
	"image/color"
)

// Closure configures the border-closure pass.
type Closure struct {
	Band       int     // pixels scanned inward from each side
	DarkValue  float64 // HSV value at or below which a pixel is ink
	LineWidth  int     // width of the synthetic frame line
	Threshold  uint8   // grey level separating ink from paper
	Kernel     int     // morphology kernel size
	Iterations int     // dilate/erode iterations
}

// DefaultClosure is the closure used for table crops
var DefaultClosure = Closure{
	Band:       20,
	DarkValue:  115.0 / 255,
	LineWidth:  2,
	Threshold:  170,
	Kernel:     3,
	Iterations: 2,
}

type side int

const (
	sideTop side = iota
	sideBottom
	sideLeft
	sideRight
)

// CloseBorders redraws the outer frame of a table and fuses near-touching
// line fragments. The result is pure black ink on white.
func CloseBorders(img *image.NRGBA, cfg Closure) *image.Gray {
	work := image.NewNRGBA(img.Bounds())
	copy(work.Pix, img.Pix)

	for _, s := range []side{sideTop, sideBottom, sideLeft, sideRight} {
		drawFrameLine(work, s, cfg)
	}

	return Threshold(work, cfg.Threshold).Close(cfg.Kernel, cfg.Iterations).Gray()
}

// drawFrameLine finds the ink in the outer band of one side and draws a
// straight line at the outermost ink row or column, spanning the ink extent
// along that side.
func drawFrameLine(img *image.NRGBA, s side, cfg Closure) {
	b := img.Bounds()
	band := cfg.Band

	var band0 image.Rectangle
	switch s {
	case sideTop:
		band0 = image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+band)
	case sideBottom:
		band0 = image.Rect(b.Min.X, b.Max.Y-band, b.Max.X, b.Max.Y)
	case sideLeft:
		band0 = image.Rect(b.Min.X, b.Min.Y, b.Min.X+band, b.Max.Y)
	case sideRight:
		band0 = image.Rect(b.Max.X-band, b.Min.Y, b.Max.X, b.Max.Y)
	}
	band0 = band0.Intersect(b)

	found := false
	var ext image.Rectangle // inclusive min/max of dark pixels
	for y := band0.Min.Y; y < band0.Max.Y; y++ {
		for x := band0.Min.X; x < band0.Max.X; x++ {
			if !isDark(img.NRGBAAt(x, y), cfg.DarkValue) {
				continue
			}
			if !found {
				ext = image.Rect(x, y, x, y)
				found = true
				continue
			}
			ext.Min.X = min(ext.Min.X, x)
			ext.Min.Y = min(ext.Min.Y, y)
			ext.Max.X = max(ext.Max.X, x)
			ext.Max.Y = max(ext.Max.Y, y)
		}
	}
	if !found {
		return
	}

	black := color.NRGBA{A: 255}
	switch s {
	case sideTop:
		hline(img, ext.Min.X, ext.Max.X, ext.Min.Y, cfg.LineWidth, black)
	case sideBottom:
		hline(img, ext.Min.X, ext.Max.X, ext.Max.Y-cfg.LineWidth+1, cfg.LineWidth, black)
	case sideLeft:
		vline(img, ext.Min.Y, ext.Max.Y, ext.Min.X, cfg.LineWidth, black)
	case sideRight:
		vline(img, ext.Min.Y, ext.Max.Y, ext.Max.X-cfg.LineWidth+1, cfg.LineWidth, black)
	}
}

func hline(img *image.NRGBA, x0, x1, y, width int, c color.NRGBA) {
	r := image.Rect(x0, y, x1+1, y+width).Intersect(img.Bounds())
	for yy := r.Min.Y; yy < r.Max.Y; yy++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, yy, c)
		}
	}
}

func vline(img *image.NRGBA, y0, y1, x, width int, c color.NRGBA) {
	r := image.Rect(x, y0, x+width, y1+1).Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for xx := r.Min.X; xx < r.Max.X; xx++ {
			img.SetNRGBA(xx, y, c)
		}
	}
}
