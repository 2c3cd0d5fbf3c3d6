package raster

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	// extra decoders beyond the standard library ones registered by imaging
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnreadable is wrapped by every LoadError.
var ErrUnreadable = errors.New("raster: image cannot be decoded")

// LoadError reports an image that could not be opened or decoded.
type LoadError struct {
	Source string // file path, or "reader"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("raster: load %s: %v", e.Source, e.Err)
}

// Unwrap returns both the sentinel and the underlying cause
func (e *LoadError) Unwrap() []error {
	return []error{ErrUnreadable, e.Err}
}

// Load opens and decodes an image file into NRGBA.
func Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return imaging.Clone(img), nil
}

// Decode reads an image from r into NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, &LoadError{Source: "reader", Err: err}
	}
	return imaging.Clone(img), nil
}
