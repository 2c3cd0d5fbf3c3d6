package curation

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/raster"
)

// ErrPerimeter is wrapped by PerimeterError
var ErrPerimeter = errors.New("curation: crop perimeter touches content")

// Renderer rasterizes document pages. zoom 1 maps one page point to one
// pixel.
type Renderer interface {
	Render(ctx context.Context, page int, zoom float64) (image.Image, error)
}

// Issue is a region whose perimeter crosses ink
type Issue struct {
	Region Region
	At     image.Point
}

// PerimeterError lists every region rejected by the perimeter check
type PerimeterError struct {
	Issues []Issue
}

func (e *PerimeterError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = fmt.Sprintf("%s at (%d,%d)", is.Region, is.At.X, is.At.Y)
	}
	return fmt.Sprintf("curation: %d crop(s) cut through content: %s", len(e.Issues), strings.Join(parts, "; "))
}

func (e *PerimeterError) Unwrap() error { return ErrPerimeter }

// checkEdges returns the sides of a region whose perimeter is inspected.
// Header halves meet in the middle and the mobile footer is open on every
// side but its top.
func checkEdges(key Key) raster.Edges {
	switch key {
	case HeaderLeft:
		return raster.AllEdges &^ raster.EdgeRight
	case HeaderRight:
		return raster.AllEdges &^ raster.EdgeLeft
	case MobileFooter:
		return raster.EdgeTop
	}
	return raster.AllEdges
}

// pixelRect converts a page rectangle to raster pixels, truncating every
// edge.
func pixelRect(r model.Rect, zoom float64) image.Rectangle {
	r = r.Normalize()
	return image.Rect(int(r.Left*zoom), int(r.Top*zoom), int(r.Right*zoom), int(r.Bottom*zoom))
}

// CheckRegion inspects one region on its page raster. blank is set when no
// pixel of the region is darker than level. dirty is set, with the first
// offending pixel, when the region's perimeter crosses ink outside the
// page's exceptions. Skipped pages are never dirty.
func CheckRegion(img image.Image, s *Session, r Region, zoom float64, level uint8) (blank, dirty bool, at image.Point) {
	px := pixelRect(r.Rect, zoom)
	if raster.IsBlank(img, px, level) {
		return true, false, image.Point{}
	}
	if s.Skipped(r.Page) {
		return false, false, image.Point{}
	}

	var exclude []image.Rectangle
	for _, ex := range s.perimeterExceptions(r.Page) {
		exclude = append(exclude, pixelRect(ex, zoom))
	}
	at, dirty = raster.DirtyPerimeter(img, px, checkEdges(r.Key), exclude)
	return false, dirty, at
}

// Validate renders every planned page once and checks its regions. Blank
// regions are dropped. If any region fails the perimeter check nothing is
// kept and a *PerimeterError lists the failures.
func Validate(ctx context.Context, rd Renderer, s *Session, plan []Region, opts Options) ([]Region, error) {
	opts = opts.withDefaults()
	images := make(map[int]image.Image)

	var kept []Region
	var issues []Issue
	for _, r := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, ok := images[r.Page]
		if !ok {
			var err error
			img, err = rd.Render(ctx, r.Page, opts.CheckZoom)
			if err != nil {
				return nil, fmt.Errorf("curation: rendering page %d: %w", r.Page, err)
			}
			images[r.Page] = img
		}

		blank, dirty, at := CheckRegion(img, s, r, opts.CheckZoom, opts.BlankLevel)
		switch {
		case blank:
			log.Info("region is blank, dropping", "region", r.String())
		case dirty:
			log.Warn("crop perimeter touches content", "region", r.String(), "x", at.X, "y", at.Y)
			issues = append(issues, Issue{Region: r, At: at})
		default:
			kept = append(kept, r)
		}
	}

	if len(issues) > 0 {
		return nil, &PerimeterError{Issues: issues}
	}
	return kept, nil
}
