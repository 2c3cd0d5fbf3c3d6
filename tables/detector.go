package tables

import (
	"fmt"
	"image"
	"sort"
	"sync"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/contour"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/internal/logger"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/raster"
)

var log = logger.Get("tables")

// Config holds cell detector configuration
type Config struct {
	// Colors selects the saturated pixels whitened before analysis
	Colors raster.ColorLimits

	// Closure configures the synthetic frame and line fusion pass
	Closure raster.Closure

	// Binarize is the grey level at or below which a pixel is ink
	Binarize uint8

	// AreaDivisor sets the minimum contour area to image_area/AreaDivisor
	AreaDivisor float64

	// Backend traces the mask borders and approximates the outlines
	Backend contour.Backend

	// Simplifier removes near-collinear vertices from cell outlines
	Simplifier contour.Simplifier

	// Epsilon is the polygon approximation tolerance as a fraction of the
	// outline perimeter
	Epsilon float64

	// Leaf decides which contours are atomic cells
	Leaf LeafPredicate

	// Shape decides which simplified outlines are rectangular enough
	Shape ShapePredicate
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Colors:      raster.DefaultColorLimits,
		Closure:     raster.DefaultClosure,
		Binarize:    150,
		AreaDivisor: 2000,
		Backend:     contour.Native{},
		Simplifier:  *contour.NewSimplifier(),
		Epsilon:     0.015,
		Leaf:        NoChildren{},
		Shape:       GetShape("rectangle"),
	}
}

// Validate reports configuration values that cannot work
func (c Config) Validate() error {
	switch {
	case c.AreaDivisor <= 0:
		return fmt.Errorf("tables: area divisor must be positive, got %v", c.AreaDivisor)
	case c.Epsilon < 0:
		return fmt.Errorf("tables: epsilon must not be negative, got %v", c.Epsilon)
	case c.Backend == nil:
		return fmt.Errorf("tables: contour backend is required")
	case c.Leaf == nil:
		return fmt.Errorf("tables: leaf predicate is required")
	case c.Shape == nil:
		return fmt.Errorf("tables: shape predicate is required")
	}
	return nil
}

// Detection is the result of one cell detection pass
type Detection struct {
	Cells  []model.DetectedCell
	Width  int
	Height int

	// Extent is the union of all cell boxes, empty when no cell was found
	Extent model.Rect
}

// CellDetector finds the atomic cells of a table raster
type CellDetector struct {
	config Config
}

// NewCellDetector creates a detector with the default configuration
func NewCellDetector() *CellDetector {
	return &CellDetector{config: DefaultConfig()}
}

// Configure replaces the detector configuration
func (d *CellDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Config returns the current configuration
func (d *CellDetector) Config() Config {
	return d.config
}

// DetectFile loads an image file and detects its cells. A file that cannot
// be decoded yields a *raster.LoadError.
func (d *CellDetector) DetectFile(path string) (*Detection, error) {
	img, err := raster.Load(path)
	if err != nil {
		return nil, err
	}
	return d.Detect(img), nil
}

// Detect finds the cells of a table raster. An image without any accepted
// outline yields an empty detection.
func (d *CellDetector) Detect(img image.Image) *Detection {
	cfg := d.config
	b := img.Bounds()
	det := &Detection{Width: b.Dx(), Height: b.Dy()}

	clean := raster.SuppressColor(raster.Flatten(img), cfg.Colors)
	closed := raster.CloseBorders(clean, cfg.Closure)
	mask := raster.Threshold(closed, cfg.Binarize)

	contours := cfg.Backend.Find(mask)
	minArea := float64(b.Dx()*b.Dy()) / cfg.AreaDivisor

	kept := make([]bool, len(contours))
	for i, c := range contours {
		kept[i] = contour.Area(c.Points) >= minArea
	}

	id := 1
	for i, c := range contours {
		if !kept[i] || !cfg.Leaf.IsLeaf(i, contours, kept) {
			continue
		}

		pts := cfg.Simplifier.Simplify(c.Points)
		approx := cfg.Backend.Approximate(pts, cfg.Epsilon*contour.Perimeter(pts))
		if !cfg.Shape.Accept(approx) {
			continue
		}
		if contour.Area(pts) == 0 {
			continue
		}

		r := contour.BoundingRect(approx).Sub(b.Min)
		cell := model.DetectedCell{
			ID:       id,
			BBox:     model.RectFromSize(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy())),
			Centroid: contour.Centroid(pts).Sub(model.Point{X: float64(b.Min.X), Y: float64(b.Min.Y)}),
		}
		id++
		det.Cells = append(det.Cells, cell)

		if len(det.Cells) == 1 {
			det.Extent = cell.BBox
			continue
		}
		det.Extent.Left = min(det.Extent.Left, cell.BBox.Left)
		det.Extent.Top = min(det.Extent.Top, cell.BBox.Top)
		det.Extent.Right = max(det.Extent.Right, cell.BBox.Right)
		det.Extent.Bottom = max(det.Extent.Bottom, cell.BBox.Bottom)
	}

	sort.SliceStable(det.Cells, func(i, j int) bool {
		a, b := det.Cells[i].Centroid, det.Cells[j].Centroid
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	log.Debug("cells detected", "backend", cfg.Backend.Name(), "contours", len(contours), "cells", len(det.Cells))
	return det
}

// ShapeRegistry holds named shape predicates
type ShapeRegistry struct {
	mu     sync.RWMutex
	shapes map[string]ShapePredicate
}

// NewShapeRegistry creates an empty registry
func NewShapeRegistry() *ShapeRegistry {
	return &ShapeRegistry{shapes: make(map[string]ShapePredicate)}
}

// Register adds a predicate under a name, replacing any previous one
func (r *ShapeRegistry) Register(name string, shape ShapePredicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shapes[name] = shape
}

// Get retrieves a predicate by name
func (r *ShapeRegistry) Get(name string) ShapePredicate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.shapes[name]
}

// List returns all registered names in sorted order
func (r *ShapeRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.shapes))
	for name := range r.shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var globalShapes = NewShapeRegistry()

// RegisterShape registers a shape predicate globally
func RegisterShape(name string, shape ShapePredicate) {
	globalShapes.Register(name, shape)
}

// GetShape retrieves a globally registered shape predicate
func GetShape(name string) ShapePredicate {
	return globalShapes.Get(name)
}

// ListShapes returns the globally registered shape names
func ListShapes() []string {
	return globalShapes.List()
}

func init() {
	RegisterShape("rectangle", Rectangular{Vertices: 4, MinAngle: 80, MaxAngle: 100})
	RegisterShape("quadrilateral", Rectangular{Vertices: 4, MinAngle: 0, MaxAngle: 180})
}
