package tables

import (
	"math"
	"sort"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// minTolerance is used when there are no cells to measure
const minTolerance = 10.0

// toleranceFactor divides the smallest cell dimension to get the clustering
// tolerance on that axis
const toleranceFactor = 1.5

// Tolerances returns the clustering tolerance for left edges (x) and top
// edges (y) of the given cells.
func Tolerances(cells []model.DetectedCell) (x, y float64) {
	if len(cells) == 0 {
		return minTolerance / toleranceFactor, minTolerance / toleranceFactor
	}
	minW, minH := math.MaxFloat64, math.MaxFloat64
	for _, c := range cells {
		minW = math.Min(minW, c.BBox.Width())
		minH = math.Min(minH, c.BBox.Height())
	}
	return minW / toleranceFactor, minH / toleranceFactor
}

// BuildGrid clusters the left and top edges of all cells into grid lines
// shared by every cell. The last row and column extend to the image edge.
func BuildGrid(cells []model.DetectedCell, width, height int) model.GridLines {
	tolX, tolY := Tolerances(cells)

	xs := make([]float64, 0, len(cells))
	ys := make([]float64, 0, len(cells))
	for _, c := range cells {
		xs = append(xs, c.BBox.Left)
		ys = append(ys, c.BBox.Top)
	}

	return model.GridLines{
		X:      clusterPositions(xs, tolX),
		Y:      clusterPositions(ys, tolY),
		Width:  width,
		Height: height,
	}
}

// clusterPositions sorts the distinct positions and groups them greedily: a
// value joins the current group when it is within tolerance of the group's
// last member. Each group collapses to the floor of its mean.
func clusterPositions(positions []float64, tolerance float64) []int {
	if len(positions) == 0 {
		return nil
	}

	sorted := append([]float64(nil), positions...)
	sort.Float64s(sorted)

	// distinct values only
	unique := sorted[:1]
	for _, p := range sorted[1:] {
		if p != unique[len(unique)-1] {
			unique = append(unique, p)
		}
	}

	var lines []int
	group := []float64{unique[0]}
	flush := func() {
		var sum float64
		for _, v := range group {
			sum += v
		}
		lines = append(lines, int(math.Floor(sum/float64(len(group)))))
	}

	for _, p := range unique[1:] {
		if p-group[len(group)-1] <= tolerance {
			group = append(group, p)
			continue
		}
		flush()
		group = []float64{p}
	}
	flush()

	return lines
}
