package motion

// Aggregator reduces decoded frames to macroblock grids. It owns a grid
// and a sample scratch buffer which are reused between frames, so the
// grid returned by Aggregate is only valid until the next call. An
// Aggregator must not be shared between goroutines.
type Aggregator struct {
	grid    Grid
	samples []Vector
}

func NewAggregator() *Aggregator {
	return &Aggregator{samples: make([]Vector, 0, 4)}
}

// Aggregate sums, for every macroblock, the samples of each prediction
// direction active for the frame's picture type. Bi-predicted macroblocks
// get the sum of both directions, not their mean. A frame without any
// vector field yields an all zero grid.
func (a *Aggregator) Aggregate(f *Frame) *Grid {
	geo := f.Geometry
	a.grid.Reset(geo)
	if !f.HasMotion() {
		return &a.grid
	}

	dirs := f.Picture.Directions()
	for mbY := 0; mbY < geo.MBHeight; mbY++ {
		for mbX := 0; mbX < geo.MBWidth; mbX++ {
			desc := Describe(f.Types[mbX+mbY*geo.MBStride])
			var acc Vector
			coded := false
			for _, dir := range dirs {
				field := f.Field[dir]
				if field == nil {
					continue
				}
				a.samples = Resolve(desc, dir, field, geo, mbX, mbY, a.samples[:0])
				for _, s := range a.samples {
					acc = acc.Add(s)
				}
				coded = coded || len(a.samples) > 0
			}
			i := mbY*a.grid.stride + mbX
			a.grid.cells[i] = acc
			a.grid.Coded[i] = coded
		}
	}
	return &a.grid
}

// Aggregate reduces a single frame into a newly allocated grid.
func Aggregate(f *Frame) *Grid {
	return NewAggregator().Aggregate(f)
}
