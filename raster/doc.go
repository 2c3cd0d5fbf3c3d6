// Package raster prepares table images for contour analysis.
//
// The usual sequence is:
//
//	img, err := raster.Load("tabla.png")      // *LoadError on failure
//	clean := raster.SuppressColor(raster.Flatten(img), raster.DefaultColorLimits)
//	closed := raster.CloseBorders(clean, raster.DefaultClosure)
//	mask := raster.Threshold(closed, 150)       // dark pixels become foreground
//
// Flatten composites transparent images onto white. SuppressColor whitens
// saturated pixels so coloured highlighting does not produce contours.
// CloseBorders redraws the outer frame of the table where scanning broke it
// and fuses nearby line fragments with a morphological closing.
//
// The package also answers simple questions about a rendered page region,
// see [IsBlank] and [DirtyPerimeter].
package raster
