package raster

import (
	"image"
	"image/color"
)

// Binary is a two-level raster. Set pixels are foreground (ink).
type Binary struct {
	Rect image.Rectangle
	Pix  []bool
}

// NewBinary creates an empty binary raster
func NewBinary(r image.Rectangle) *Binary {
	return &Binary{Rect: r, Pix: make([]bool, r.Dx()*r.Dy())}
}

// Bounds returns the raster bounds
func (b *Binary) Bounds() image.Rectangle { return b.Rect }

func (b *Binary) offset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Rect.Dx() + (x - b.Rect.Min.X)
}

// IsSet reports whether (x, y) is foreground. Points outside are background.
func (b *Binary) IsSet(x, y int) bool {
	if !(image.Point{x, y}).In(b.Rect) {
		return false
	}
	return b.Pix[b.offset(x, y)]
}

// Set changes the pixel at (x, y); points outside are ignored
func (b *Binary) Set(x, y int, v bool) {
	if !(image.Point{x, y}).In(b.Rect) {
		return
	}
	b.Pix[b.offset(x, y)] = v
}

// Count returns the number of foreground pixels
func (b *Binary) Count() int {
	n := 0
	for _, v := range b.Pix {
		if v {
			n++
		}
	}
	return n
}

// Threshold marks every pixel whose grey level is at most level as
// foreground, so dark ink on white paper becomes set.
func Threshold(img image.Image, level uint8) *Binary {
	r := img.Bounds()
	out := NewBinary(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			out.Pix[out.offset(x, y)] = g.Y <= level
		}
	}
	return out
}

// Gray renders the raster as black ink on white paper.
func (b *Binary) Gray() *image.Gray {
	out := image.NewGray(b.Rect)
	for i, v := range b.Pix {
		if v {
			out.Pix[i] = 0
		} else {
			out.Pix[i] = 255
		}
	}
	return out
}

// Dilate grows the foreground with a square kernel of the given size.
// Pixels outside the raster never contribute.
func (b *Binary) Dilate(kernel, iterations int) *Binary {
	out := b
	for i := 0; i < iterations; i++ {
		out = out.morph(kernel, true)
	}
	return out
}

// Erode shrinks the foreground with a square kernel of the given size.
// Pixels outside the raster never erode the border.
func (b *Binary) Erode(kernel, iterations int) *Binary {
	out := b
	for i := 0; i < iterations; i++ {
		out = out.morph(kernel, false)
	}
	return out
}

// Close fuses nearby foreground fragments: dilation followed by erosion.
func (b *Binary) Close(kernel, iterations int) *Binary {
	return b.Dilate(kernel, iterations).Erode(kernel, iterations)
}

// morph applies one pass of dilation (any neighbour set) or erosion
// (all neighbours set), ignoring neighbours outside the raster.
func (b *Binary) morph(kernel int, dilate bool) *Binary {
	out := NewBinary(b.Rect)
	half := kernel / 2
	r := b.Rect
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := !dilate
			for dy := -half; dy <= half && v != dilate; dy++ {
				for dx := -half; dx <= half; dx++ {
					p := image.Point{x + dx, y + dy}
					if !p.In(r) {
						continue
					}
					if b.Pix[b.offset(p.X, p.Y)] == dilate {
						v = dilate
						break
					}
				}
			}
			out.Pix[out.offset(x, y)] = v
		}
	}
	return out
}
