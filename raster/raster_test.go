package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func whiteImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

var black = color.NRGBA{A: 255}

// TestLoadMissingFile tests that an unreadable file yields a LoadError
func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Error("expected error to match ErrUnreadable")
	}
}

// TestDecodeGarbage tests decoding bytes that are not an image
func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")))
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

// TestLoadPNG tests a round trip through a PNG file
func TestLoadPNG(t *testing.T) {
	src := whiteImage(8, 6)
	path := filepath.Join(t.TempDir(), "t.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

// TestFlatten tests that transparency becomes white
func TestFlatten(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(1, 0, black)

	out := Flatten(img)
	if c := out.NRGBAAt(0, 0); c.R != 255 || c.G != 255 || c.B != 255 || c.A != 255 {
		t.Errorf("expected transparent pixel to become white, got %v", c)
	}
	if c := out.NRGBAAt(1, 0); c.R != 0 || c.A != 255 {
		t.Errorf("expected opaque black to survive, got %v", c)
	}
}

// TestSuppressColor tests that saturated pixels are whitened and grey ink kept
func TestSuppressColor(t *testing.T) {
	img := whiteImage(3, 1)
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{R: 100, A: 255})

	out := SuppressColor(img, DefaultColorLimits)

	if c := out.NRGBAAt(0, 0); c.G != 255 {
		t.Errorf("expected bright red to be whitened, got %v", c)
	}
	if c := out.NRGBAAt(1, 0); c.R != 100 {
		t.Errorf("expected grey to be kept, got %v", c)
	}
	if c := out.NRGBAAt(2, 0); c.R != 100 || c.G != 0 {
		t.Errorf("expected dark red to be kept, got %v", c)
	}
}

// TestThreshold tests inverse thresholding
func TestThreshold(t *testing.T) {
	img := whiteImage(3, 1)
	img.SetNRGBA(0, 0, black)
	img.SetNRGBA(1, 0, color.NRGBA{R: 150, G: 150, B: 150, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{R: 151, G: 151, B: 151, A: 255})

	b := Threshold(img, 150)
	if !b.IsSet(0, 0) || !b.IsSet(1, 0) {
		t.Error("expected pixels at or below the level to be set")
	}
	if b.IsSet(2, 0) {
		t.Error("expected pixel above the level to be clear")
	}
	if b.IsSet(-1, 0) {
		t.Error("points outside should be background")
	}
}

// TestCloseFusesGap tests that closing bridges a small gap in a line
func TestCloseFusesGap(t *testing.T) {
	b := NewBinary(image.Rect(0, 0, 20, 5))
	for x := 0; x < 20; x++ {
		if x == 9 || x == 10 {
			continue
		}
		b.Set(x, 2, true)
	}

	closed := b.Close(3, 1)
	for x := 0; x < 20; x++ {
		if !closed.IsSet(x, 2) {
			t.Errorf("expected (%d, 2) to be set after closing", x)
		}
	}
	if closed.Count() != 20 {
		t.Errorf("expected a single line of 20 pixels, got %d", closed.Count())
	}
}

// TestErodeKeepsBorder tests that the raster edge does not erode pixels
func TestErodeKeepsBorder(t *testing.T) {
	b := NewBinary(image.Rect(0, 0, 3, 3))
	for i := range b.Pix {
		b.Pix[i] = true
	}
	if got := b.Erode(3, 2).Count(); got != 9 {
		t.Errorf("expected full raster to survive erosion, got %d", got)
	}
}

// TestCloseBordersDrawsMissingTop tests that an open top edge is closed
func TestCloseBordersDrawsMissingTop(t *testing.T) {
	img := whiteImage(100, 100)
	fillRect(img, image.Rect(10, 5, 12, 96), black)
	fillRect(img, image.Rect(88, 5, 90, 96), black)
	fillRect(img, image.Rect(10, 94, 90, 96), black)

	out := CloseBorders(img, DefaultClosure)

	if v := out.GrayAt(50, 5).Y; v != 0 {
		t.Errorf("expected synthetic top line at (50, 5), got %d", v)
	}
	if v := out.GrayAt(50, 50).Y; v != 255 {
		t.Errorf("expected cell interior to stay white, got %d", v)
	}
	if v := out.GrayAt(50, 0).Y; v != 255 {
		t.Errorf("expected margin above the table to stay white, got %d", v)
	}
}

// TestCloseBordersBlankImage tests that an image without ink is unchanged
func TestCloseBordersBlankImage(t *testing.T) {
	out := CloseBorders(whiteImage(30, 30), DefaultClosure)
	for _, v := range out.Pix {
		if v != 255 {
			t.Fatal("expected blank output")
		}
	}
}

// TestIsBlank tests the white region check
func TestIsBlank(t *testing.T) {
	img := whiteImage(20, 20)
	img.SetNRGBA(15, 15, color.NRGBA{R: 249, G: 255, B: 255, A: 255})

	if !IsBlank(img, image.Rect(0, 0, 10, 10), BlankLevel) {
		t.Error("expected white region to be blank")
	}
	if IsBlank(img, image.Rect(10, 10, 20, 20), BlankLevel) {
		t.Error("expected region with a grey pixel not to be blank")
	}
}

// TestDirtyPerimeter tests ink detection on region edges with exclusions
func TestDirtyPerimeter(t *testing.T) {
	img := whiteImage(50, 50)
	// ink crossing the left edge of the region
	fillRect(img, image.Rect(5, 20, 20, 21), black)

	region := image.Rect(10, 10, 40, 40)

	p, dirty := DirtyPerimeter(img, region, AllEdges, nil)
	if !dirty {
		t.Fatal("expected ink on the perimeter")
	}
	if p != (image.Point{11, 20}) {
		t.Errorf("unexpected dirty pixel %v", p)
	}

	if _, dirty := DirtyPerimeter(img, region, EdgeTop|EdgeBottom|EdgeRight, nil); dirty {
		t.Error("expected other edges to be clean")
	}

	exclude := []image.Rectangle{image.Rect(0, 15, 30, 25)}
	if _, dirty := DirtyPerimeter(img, region, AllEdges, exclude); dirty {
		t.Error("expected excluded ink to be ignored")
	}
}
