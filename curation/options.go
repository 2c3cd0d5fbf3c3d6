package curation

import (
	"runtime"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/raster"
)

// Options controls the page filtering and validation passes
type Options struct {
	// Workers bounds the pages processed at once
	Workers int

	// Markers appends the table key at each removed table region
	Markers bool

	// CheckZoom is the raster scale used by Validate
	CheckZoom float64

	// BlankLevel is the grey level at or above which a pixel is paper
	BlankLevel uint8
}

// DefaultOptions returns one worker per CPU, no markers and validation at
// one pixel per point.
func DefaultOptions() Options {
	return Options{
		Workers:    runtime.NumCPU(),
		CheckZoom:  1,
		BlankLevel: raster.BlankLevel,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Workers <= 0 {
		o.Workers = d.Workers
	}
	if o.CheckZoom <= 0 {
		o.CheckZoom = d.CheckZoom
	}
	if o.BlankLevel == 0 {
		o.BlankLevel = d.BlankLevel
	}
	return o
}
