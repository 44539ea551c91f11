package motion

// Grid holds one vector per macroblock of a frame in a row major buffer.
type Grid struct {
	width, height int
	stride        int
	cells         []Vector
	// Coded is set for every macroblock which had at least one sample
	// contribute to its vector, so zero motion and no motion stay apart.
	Coded []bool
}

// NewGrid allocates a zeroed grid sized to the geometry's macroblocks.
func NewGrid(geo Geometry) *Grid {
	g := &Grid{}
	g.Reset(geo)
	return g
}

// Reset resizes the grid to the geometry and clears every cell, reusing
// the existing buffers where they are large enough.
func (g *Grid) Reset(geo Geometry) {
	g.width, g.height = geo.MBWidth, geo.MBHeight
	g.stride = geo.MBWidth
	n := g.width * g.height
	if cap(g.cells) < n {
		g.cells = make([]Vector, n)
		g.Coded = make([]bool, n)
		return
	}
	g.cells = g.cells[:n]
	g.Coded = g.Coded[:n]
	for i := range g.cells {
		g.cells[i] = Vector{}
		g.Coded[i] = false
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) At(col, row int) Vector {
	return g.cells[row*g.stride+col]
}

func (g *Grid) Set(col, row int, v Vector) {
	g.cells[row*g.stride+col] = v
}

func (g *Grid) IsCoded(col, row int) bool {
	return g.Coded[row*g.stride+col]
}

// Clone returns a copy which shares no memory with g.
func (g *Grid) Clone() *Grid {
	return &Grid{
		width: g.width, height: g.height, stride: g.stride,
		cells: append([]Vector(nil), g.cells...),
		Coded: append([]bool(nil), g.Coded...),
	}
}

// Columns splits the grid into column major x and y component arrays,
// both indexed [col][row].
func (g *Grid) Columns() (xs, ys [][]int) {
	xs = make([][]int, g.width)
	ys = make([][]int, g.width)
	for col := 0; col < g.width; col++ {
		xs[col] = make([]int, g.height)
		ys[col] = make([]int, g.height)
		for row := 0; row < g.height; row++ {
			v := g.At(col, row)
			xs[col][row], ys[col][row] = v.X, v.Y
		}
	}
	return xs, ys
}

// GridFromColumns is the inverse of Columns. Coded is derived from the
// values since presence is not carried by the component arrays.
func GridFromColumns(xs, ys [][]int) *Grid {
	g := &Grid{width: len(xs)}
	if g.width > 0 {
		g.height = len(xs[0])
	}
	g.stride = g.width
	g.cells = make([]Vector, g.width*g.height)
	g.Coded = make([]bool, g.width*g.height)
	for col := 0; col < g.width; col++ {
		for row := 0; row < g.height; row++ {
			v := Vector{X: xs[col][row], Y: ys[col][row]}
			g.Set(col, row, v)
			g.Coded[row*g.stride+col] = !v.IsZero()
		}
	}
	return g
}
