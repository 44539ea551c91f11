package features

import (
	"github.com/tauraamui/mvextract/pkg/motion"
)

// Frame is the features of a single grid.
type Frame struct {
	Hist      [][][]float64
	Magnitude [][]float64
	Edges     []float64
}

// Summary describes a run of frames per cell.
type Summary struct {
	// AvgHist is the mean histogram over time.
	AvgHist [][][]float64
	// AvgMagnitude is the mean magnitude over time, min-max normalised
	// across cells.
	AvgMagnitude [][]float64
	// Variance is the sum over bins of each bin's variance over time,
	// min-max normalised across cells.
	Variance [][]float64
	Edges    []float64
	Frames   int
}

// Summarise reduces frames which all share one cell layout.
func Summarise(frames []Frame) Summary {
	if len(frames) == 0 {
		return Summary{}
	}
	first := frames[0]
	xCells := len(first.Hist)
	yCells := 0
	bins := 0
	if xCells > 0 {
		yCells = len(first.Hist[0])
		if yCells > 0 {
			bins = len(first.Hist[0][0])
		}
	}

	n := float64(len(frames))
	s := Summary{
		AvgHist:      make([][][]float64, xCells),
		AvgMagnitude: make([][]float64, xCells),
		Variance:     make([][]float64, xCells),
		Edges:        first.Edges,
		Frames:       len(frames),
	}
	for i := 0; i < xCells; i++ {
		s.AvgHist[i] = make([][]float64, yCells)
		s.AvgMagnitude[i] = make([]float64, yCells)
		s.Variance[i] = make([]float64, yCells)
		for j := 0; j < yCells; j++ {
			avg := make([]float64, bins)
			var mag float64
			for _, f := range frames {
				for b := 0; b < bins; b++ {
					avg[b] += f.Hist[i][j][b]
				}
				mag += f.Magnitude[i][j]
			}
			for b := range avg {
				avg[b] /= n
			}

			var variance float64
			for b := 0; b < bins; b++ {
				var sq float64
				for _, f := range frames {
					d := f.Hist[i][j][b] - avg[b]
					sq += d * d
				}
				variance += sq / n
			}

			s.AvgHist[i][j] = avg
			s.AvgMagnitude[i][j] = mag / n
			s.Variance[i][j] = variance
		}
	}
	normalise(s.AvgMagnitude)
	normalise(s.Variance)
	return s
}

// normalise scales values into [0, 1] in place, a constant field becomes
// all zero.
func normalise(values [][]float64) {
	first := true
	var lo, hi float64
	for _, col := range values {
		for _, v := range col {
			if first || v < lo {
				lo = v
			}
			if first || v > hi {
				hi = v
			}
			first = false
		}
	}
	span := hi - lo
	for _, col := range values {
		for j, v := range col {
			if span == 0 {
				col[j] = 0
				continue
			}
			col[j] = (v - lo) / span
		}
	}
}

type Options struct {
	// XCells and YCells are fitted to the grid by FitCells.
	XCells, YCells int
	Bins           int
	Density        bool
	// Window is the number of frames per summary, zero summarises all
	// frames once at Flush.
	Window int
}

// Extractor turns a stream of grids into summaries.
type Extractor struct {
	opts           Options
	xCells, yCells int
	frames         []Frame
}

func NewExtractor(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

// Cells is the fitted cell layout, zero until the first grid is added.
func (e *Extractor) Cells() (int, int) {
	return e.xCells, e.yCells
}

// Add records the grid's features. With a window it returns a summary
// every time the window is full, sliding it on by one frame.
func (e *Extractor) Add(g *motion.Grid) (Summary, bool) {
	if e.xCells == 0 {
		e.xCells, e.yCells = FitCells(g.Width(), g.Height(), e.opts.XCells, e.opts.YCells)
	}

	hist, edges := CellHOOF(g, e.opts.Bins, e.xCells, e.yCells, e.opts.Density)
	e.frames = append(e.frames, Frame{
		Hist: hist, Magnitude: CellMagnitude(g, e.xCells, e.yCells), Edges: edges,
	})

	if e.opts.Window < 1 || len(e.frames) < e.opts.Window {
		return Summary{}, false
	}
	s := Summarise(e.frames)
	e.frames = append(e.frames[:0], e.frames[1:]...)
	return s, true
}

// Flush summarises every frame added so far when no window is set.
func (e *Extractor) Flush() (Summary, bool) {
	if e.opts.Window > 0 || len(e.frames) == 0 {
		return Summary{}, false
	}
	s := Summarise(e.frames)
	e.frames = nil
	return s, true
}

// FromSequence runs an extractor over every grid of seq.
func FromSequence(seq *motion.Sequence, opts Options) []Summary {
	e := NewExtractor(opts)
	var out []Summary
	for _, entry := range seq.Entries() {
		if s, ok := e.Add(entry.Grid); ok {
			out = append(out, s)
		}
	}
	if s, ok := e.Flush(); ok {
		out = append(out, s)
	}
	return out
}
