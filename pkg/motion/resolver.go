package motion

// Vector is a displacement in pixel units, either one elementary sample
// or the sum of every sample of a macroblock.
type Vector struct {
	X, Y int
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Resolve appends to dst the elementary samples of macroblock (mbX, mbY)
// for one prediction direction, already shifted to pixel units. Nothing
// is appended when the macroblock does not use the direction's list.
//
// The field must be at least geo.FieldLen() long, edge macroblocks of
// frames which are not 16 aligned are addressed like any other.
func Resolve(desc Descriptor, dir Direction, field []Vector, geo Geometry, mbX, mbY int, dst []Vector) []Vector {
	if !desc.Uses(dir) {
		return dst
	}

	split := geo.SampleLog2 - 1
	switch desc.Shape {
	case Shape8x8:
		for i := 0; i < 4; i++ {
			xy := (mbX*2 + (i & 1) + (mbY*2+(i>>1))*geo.MVStride) << split
			dst = append(dst, sample(field[xy], geo.Shift, false))
		}
	case Shape16x8:
		for i := 0; i < 2; i++ {
			xy := (mbX*2 + (mbY*2+i)*geo.MVStride) << split
			dst = append(dst, sample(field[xy], geo.Shift, desc.Interlaced))
		}
	case Shape8x16:
		for i := 0; i < 2; i++ {
			xy := (mbX*2 + i + mbY*2*geo.MVStride) << split
			dst = append(dst, sample(field[xy], geo.Shift, desc.Interlaced))
		}
	default:
		xy := (mbX + mbY*geo.MVStride) << geo.SampleLog2
		dst = append(dst, sample(field[xy], geo.Shift, false))
	}
	return dst
}

// sample converts one raw decoder vector. Interlaced field vectors only
// cover every other row so their vertical component is doubled.
func sample(raw Vector, shift int, interlaced bool) Vector {
	v := Vector{X: raw.X >> shift, Y: raw.Y >> shift}
	if interlaced {
		v.Y *= 2
	}
	return v
}
