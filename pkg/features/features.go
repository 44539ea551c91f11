// Package features derives per cell statistics from macroblock motion
// grids: histograms of oriented motion (HOOF) weighted by magnitude and
// mean vector magnitude. Cells are laid out [x cell][y cell].
package features

import (
	"math"

	"github.com/tauraamui/mvextract/pkg/motion"
)

// FitCells picks the factor of each grid dimension closest to its guess
// so the grid divides evenly into cells. Ties go to the smaller factor.
func FitCells(width, height, xGuess, yGuess int) (int, int) {
	return closestFactor(xGuess, width), closestFactor(yGuess, height)
}

func closestFactor(guess, n int) int {
	if n < 1 {
		return 1
	}
	best := 1
	for f := 1; f <= n; f++ {
		if n%f != 0 {
			continue
		}
		if abs(f-guess) < abs(best-guess) {
			best = f
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Edges returns the bins+1 edges evenly spanning [-π, π].
func Edges(bins int) []float64 {
	edges := make([]float64, bins+1)
	width := 2 * math.Pi / float64(bins)
	for i := range edges {
		edges[i] = -math.Pi + float64(i)*width
	}
	edges[bins] = math.Pi
	return edges
}

// cell visits every macroblock vector of cell (i, j).
func cell(g *motion.Grid, xCells, yCells, i, j int, visit func(motion.Vector)) {
	cw, ch := g.Width()/xCells, g.Height()/yCells
	for row := j * ch; row < (j+1)*ch; row++ {
		for col := i * cw; col < (i+1)*cw; col++ {
			visit(g.At(col, row))
		}
	}
}

func length(v motion.Vector) float64 {
	return math.Hypot(float64(v.X), float64(v.Y))
}

// orientation follows the atan2(x, y) convention, zero points along +y.
func orientation(v motion.Vector) float64 {
	return math.Atan2(float64(v.X), float64(v.Y))
}

// hoof bins the orientations of vs over [-π, π] weighted by magnitude.
// The last bin is closed. With density the histogram integrates to one
// over the range, all zero motion gives an all zero histogram.
func hoof(vs []motion.Vector, bins int, density bool) []float64 {
	hist := make([]float64, bins)
	width := 2 * math.Pi / float64(bins)
	var total float64
	for _, v := range vs {
		m := length(v)
		if m == 0 {
			continue
		}
		b := int((orientation(v) + math.Pi) / width)
		if b >= bins {
			b = bins - 1
		}
		hist[b] += m
		total += m
	}
	if density && total > 0 {
		for i := range hist {
			hist[i] /= total * width
		}
	}
	return hist
}

// CellHOOF computes the histogram of oriented motion of every cell.
func CellHOOF(g *motion.Grid, bins, xCells, yCells int, density bool) ([][][]float64, []float64) {
	hists := make([][][]float64, xCells)
	var vs []motion.Vector
	for i := 0; i < xCells; i++ {
		hists[i] = make([][]float64, yCells)
		for j := 0; j < yCells; j++ {
			vs = vs[:0]
			cell(g, xCells, yCells, i, j, func(v motion.Vector) { vs = append(vs, v) })
			hists[i][j] = hoof(vs, bins, density)
		}
	}
	return hists, Edges(bins)
}

// CellMagnitude is the mean vector length of every cell, an empty cell
// has zero magnitude.
func CellMagnitude(g *motion.Grid, xCells, yCells int) [][]float64 {
	mags := make([][]float64, xCells)
	for i := 0; i < xCells; i++ {
		mags[i] = make([]float64, yCells)
		for j := 0; j < yCells; j++ {
			var sum float64
			n := 0
			cell(g, xCells, yCells, i, j, func(v motion.Vector) {
				sum += length(v)
				n++
			})
			if n > 0 {
				mags[i][j] = sum / float64(n)
			}
		}
	}
	return mags
}
