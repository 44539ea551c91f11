package features_test

import (
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tauraamui/mvextract/pkg/features"
	"github.com/tauraamui/mvextract/pkg/motion"
)

// uniformGrid builds a width x height grid whose left half holds left and
// right half holds right.
func uniformGrid(width, height int, left, right motion.Vector) *motion.Grid {
	xs := make([][]int, width)
	ys := make([][]int, width)
	for col := range xs {
		v := left
		if col >= width/2 {
			v = right
		}
		xs[col] = make([]int, height)
		ys[col] = make([]int, height)
		for row := range xs[col] {
			xs[col][row], ys[col][row] = v.X, v.Y
		}
	}
	return motion.GridFromColumns(xs, ys)
}

func TestFitCells(t *testing.T) {
	is := is.New(t)

	x, y := features.FitCells(20, 15, 20, 15)
	is.Equal(x, 20)
	is.Equal(y, 15)

	// 4 and 6 are equally close to 5, 1 and 3 to 2
	x, y = features.FitCells(12, 9, 5, 2)
	is.Equal(x, 4)
	is.Equal(y, 1)

	x, y = features.FitCells(7, 22, 20, 15)
	is.Equal(x, 7)
	is.Equal(y, 11)
}

func TestEdgesSpanFullCircle(t *testing.T) {
	edges := features.Edges(4)
	require.Len(t, edges, 5)
	assert.Equal(t, -math.Pi, edges[0])
	assert.InDelta(t, 0, edges[2], 1e-12)
	assert.Equal(t, math.Pi, edges[4])
}

func TestCellHOOFOrientationBins(t *testing.T) {
	tests := []struct {
		v   motion.Vector
		bin int
	}{
		{v: motion.Vector{X: 0, Y: 3}, bin: 2},
		{v: motion.Vector{X: 3, Y: 0}, bin: 3},
		{v: motion.Vector{X: -3, Y: 0}, bin: 1},
		// atan2(0, -3) is π which falls in the closed last bin
		{v: motion.Vector{X: 0, Y: -3}, bin: 3},
	}

	for _, tt := range tests {
		hists, _ := features.CellHOOF(uniformGrid(2, 1, tt.v, tt.v), 4, 1, 1, false)
		want := make([]float64, 4)
		want[tt.bin] = 6
		assert.Equal(t, want, hists[0][0], "vector %v", tt.v)
	}
}

func TestCellHOOFDensity(t *testing.T) {
	g := uniformGrid(4, 2, motion.Vector{X: 0, Y: 2}, motion.Vector{})

	hists, edges := features.CellHOOF(g, 4, 2, 1, true)
	require.Len(t, hists, 2)
	require.Len(t, hists[0], 1)
	require.Len(t, edges, 5)

	assert.InDelta(t, 2/math.Pi, hists[0][0][2], 1e-12)
	var area float64
	for _, h := range hists[0][0] {
		area += h * (math.Pi / 2)
	}
	assert.InDelta(t, 1, area, 1e-12)

	// no motion in the right cell leaves its histogram empty
	assert.Equal(t, []float64{0, 0, 0, 0}, hists[1][0])
}

func TestCellMagnitude(t *testing.T) {
	is := is.New(t)
	g := uniformGrid(4, 2, motion.Vector{X: 3, Y: 4}, motion.Vector{})

	mags := features.CellMagnitude(g, 2, 1)
	is.Equal(mags, [][]float64{{5}, {0}})
}

func TestSummarise(t *testing.T) {
	frames := []features.Frame{
		{
			Hist:      [][][]float64{{{1, 0}}, {{0, 0}}},
			Magnitude: [][]float64{{2}, {0}},
			Edges:     features.Edges(2),
		},
		{
			Hist:      [][][]float64{{{0, 1}}, {{0, 0}}},
			Magnitude: [][]float64{{4}, {0}},
			Edges:     features.Edges(2),
		},
	}

	s := features.Summarise(frames)
	assert.Equal(t, 2, s.Frames)
	assert.Equal(t, [][][]float64{{{0.5, 0.5}}, {{0, 0}}}, s.AvgHist)
	assert.Equal(t, [][]float64{{1}, {0}}, s.AvgMagnitude)
	assert.Equal(t, [][]float64{{1}, {0}}, s.Variance)
	assert.Len(t, s.Edges, 3)
}

func TestSummariseConstantFieldIsZero(t *testing.T) {
	frame := features.Frame{
		Hist:      [][][]float64{{{1, 1}}, {{1, 1}}},
		Magnitude: [][]float64{{3}, {3}},
	}

	s := features.Summarise([]features.Frame{frame, frame})
	assert.Equal(t, [][]float64{{0}, {0}}, s.AvgMagnitude)
	assert.Equal(t, [][]float64{{0}, {0}}, s.Variance)
	assert.Equal(t, features.Summary{}, features.Summarise(nil))
}

func TestExtractorSlidingWindow(t *testing.T) {
	is := is.New(t)
	e := features.NewExtractor(features.Options{XCells: 2, YCells: 1, Bins: 8, Density: true, Window: 2})

	g := uniformGrid(4, 2, motion.Vector{X: 1, Y: 1}, motion.Vector{})
	_, ok := e.Add(g)
	is.True(!ok)
	x, y := e.Cells()
	is.Equal(x, 2)
	is.Equal(y, 1)

	s, ok := e.Add(g)
	is.True(ok)
	is.Equal(s.Frames, 2)
	_, ok = e.Add(g)
	is.True(ok)

	_, ok = e.Flush()
	is.True(!ok)
}

func TestExtractorWithoutWindowSummarisesOnFlush(t *testing.T) {
	is := is.New(t)
	e := features.NewExtractor(features.Options{XCells: 1, YCells: 1, Bins: 4})

	_, ok := e.Flush()
	is.True(!ok)
	for i := 0; i < 3; i++ {
		_, ok := e.Add(uniformGrid(2, 2, motion.Vector{X: i}, motion.Vector{}))
		is.True(!ok)
	}
	s, ok := e.Flush()
	is.True(ok)
	is.Equal(s.Frames, 3)
	is.Equal(len(s.AvgHist[0][0]), 4)
}

func TestFromSequence(t *testing.T) {
	is := is.New(t)
	seq := motion.NewSequence(64, 32)
	for i := 0; i < 5; i++ {
		seq.Append(i, uniformGrid(4, 2, motion.Vector{X: i, Y: 1}, motion.Vector{X: -1}))
	}

	is.Equal(len(features.FromSequence(seq, features.Options{XCells: 2, YCells: 2, Bins: 8, Window: 3})), 3)
	is.Equal(len(features.FromSequence(seq, features.Options{XCells: 2, YCells: 2, Bins: 8})), 1)
}
