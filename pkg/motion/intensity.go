package motion

import (
	"math"
	"strings"
)

// HighMotionThreshold is the normalized magnitude above which a
// macroblock counts as strongly moving.
const HighMotionThreshold = 0.06

type Intensity uint8

const (
	IntensityNone Intensity = iota
	IntensityLow
	IntensityHigh
)

// Symbol is the two character cell used by the ASCII map.
func (i Intensity) Symbol() string {
	switch i {
	case IntensityHigh:
		return "# "
	case IntensityLow:
		return "- "
	default:
		return "  "
	}
}

func (i Intensity) String() string {
	switch i {
	case IntensityHigh:
		return "high"
	case IntensityLow:
		return "low"
	default:
		return "none"
	}
}

// Magnitude is the length of v with each component normalized by the
// frame's pixel dimensions.
func Magnitude(v Vector, geo Geometry) float64 {
	dx := float64(v.X) / float64(geo.Width)
	dy := float64(v.Y) / float64(geo.Height)
	return math.Sqrt(dx*dx + dy*dy)
}

func Classify(v Vector, geo Geometry) Intensity {
	m := Magnitude(v, geo)
	switch {
	case m > HighMotionThreshold:
		return IntensityHigh
	case m > 0:
		return IntensityLow
	default:
		return IntensityNone
	}
}

// IntensityMap is the per macroblock classification of one frame.
type IntensityMap struct {
	Width, Height int
	Cells         []Intensity
}

// Classification derives an intensity map from an aggregated grid. It
// never writes back into the grid.
func Classification(g *Grid, geo Geometry) IntensityMap {
	m := IntensityMap{Width: g.Width(), Height: g.Height()}
	m.Cells = make([]Intensity, m.Width*m.Height)
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			m.Cells[row*m.Width+col] = Classify(g.At(col, row), geo)
		}
	}
	return m
}

func (m IntensityMap) At(col, row int) Intensity {
	return m.Cells[row*m.Width+col]
}

// Count returns how many macroblocks have the given intensity.
func (m IntensityMap) Count(i Intensity) int {
	n := 0
	for _, c := range m.Cells {
		if c == i {
			n++
		}
	}
	return n
}

// Render writes the map one macroblock row per line, passing each cell's
// symbol through paint so callers can colour it.
func (m IntensityMap) Render(paint func(Intensity, string) string) string {
	var sb strings.Builder
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			i := m.At(col, row)
			sb.WriteString(paint(i, i.Symbol()))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m IntensityMap) String() string {
	return m.Render(func(_ Intensity, s string) string { return s })
}
