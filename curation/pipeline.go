package curation

import (
	"context"
	"errors"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/contentstream"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/raster"
	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/tables"
)

// TablePipeline turns table crops into structured tables
type TablePipeline struct {
	Detector *tables.CellDetector

	// Margins are the margins the crops were rendered with
	Margins model.Margins
}

// NewTablePipeline creates a pipeline with a default detector
func NewTablePipeline(margins model.Margins) *TablePipeline {
	return &TablePipeline{Detector: tables.NewCellDetector(), Margins: margins}
}

// TableResult is the outcome of one table region
type TableResult struct {
	Page  int
	Index int
	Key   string
	Table *model.Table

	// Cells are the detected cells in document coordinates
	Cells []model.DetectedCell

	// Err is set when the region's raster could not be read
	Err error
}

// Extract detects the cells of a crop raster, builds the table, moves it
// into document space and fills it with the words. crop is the table
// region in page points and words share its coordinate space.
func (tp *TablePipeline) Extract(ctx context.Context, img image.Image, crop model.Rect, words []model.Word) (*model.Table, []model.DetectedCell, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	det := tp.Detector.Detect(img)
	table := tables.BuildTable(det.Cells, det.Width, det.Height)

	rm := tables.NewRemapper(crop, tp.Margins, det.Width, det.Height)
	cells := rm.Cells(det.Cells)
	rm.Table(table)
	tables.AssignWords(table, cells, words)

	log.Debug("table extracted", "cells", len(cells), "rows", table.RowCount(), "cols", table.ColCount())
	return table, cells, nil
}

// TableJob is one table region waiting for extraction. Image is used when
// set; otherwise the raster is read from Path.
type TableJob struct {
	Page  int
	Index int
	Crop  model.Rect
	Path  string
	Image image.Image
	Words []model.Word
}

// ExtractAll runs the jobs concurrently and returns their results in job
// order. A raster that cannot be read only fails its own region.
func (tp *TablePipeline) ExtractAll(ctx context.Context, jobs []TableJob, workers int) ([]TableResult, error) {
	if workers <= 0 {
		workers = DefaultOptions().Workers
	}
	results := make([]TableResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res := TableResult{
				Page:  job.Page,
				Index: job.Index,
				Key:   contentstream.TableKey(job.Page, job.Index),
			}
			img := job.Image
			if img == nil {
				loaded, err := raster.Load(job.Path)
				if err != nil {
					var le *raster.LoadError
					if !errors.As(err, &le) {
						return err
					}
					log.Warn("table raster unreadable", "key", res.Key, "error", err)
					res.Err = err
					results[i] = res
					return nil
				}
				img = loaded
			}

			table, cells, err := tp.Extract(ctx, img, job.Crop, job.Words)
			if err != nil {
				return err
			}
			res.Table, res.Cells = table, cells
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Jobs lists one job per table region of the session. Words are taken from
// words by page and paths come from path(page, index).
func (s *Session) Jobs(words map[int][]model.Word, path func(page, index int) string) []TableJob {
	var jobs []TableJob
	for _, page := range s.TablePages() {
		for idx, r := range s.Regions(page) {
			jobs = append(jobs, TableJob{
				Page:  page,
				Index: idx,
				Crop:  r.Rect,
				Path:  path(page, idx),
				Words: words[page],
			})
		}
	}
	return jobs
}

// RasterWords moves words read from a width × height crop raster, such as
// OCR output, into the page space of crop.
func (tp *TablePipeline) RasterWords(words []model.Word, crop model.Rect, width, height int) []model.Word {
	rm := tables.NewRemapper(crop, tp.Margins, width, height)
	out := make([]model.Word, len(words))
	for i, w := range words {
		out[i] = model.Word{Text: w.Text, BBox: rm.Rect(w.BBox)}
	}
	return out
}
