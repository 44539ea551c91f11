package motion

// MBType is the raw per macroblock type bitmask reported by the decoder.
type MBType uint32

const (
	MBIntra4x4   MBType = 0x0001
	MBIntra16x16 MBType = 0x0002
	MBIntraPCM   MBType = 0x0004
	MB16x16      MBType = 0x0008
	MB16x8       MBType = 0x0010
	MB8x16       MBType = 0x0020
	MB8x8        MBType = 0x0040
	MBInterlaced MBType = 0x0080
	MBDirect2    MBType = 0x0100
	MBACPred     MBType = 0x0200
	MBGMC        MBType = 0x0400
	MBSkip       MBType = 0x0800
	MBP0L0       MBType = 0x1000
	MBP1L0       MBType = 0x2000
	MBP0L1       MBType = 0x4000
	MBP1L1       MBType = 0x8000
	MBL0                = MBP0L0 | MBP1L0
	MBL1                = MBP0L1 | MBP1L1
	MBL0L1              = MBL0 | MBL1
	MBQuant      MBType = 0x00010000
	MBCBP        MBType = 0x00020000
)

// Shape is how a macroblock's motion is partitioned.
type Shape uint8

const (
	Shape16x16 Shape = iota
	Shape16x8
	Shape8x16
	Shape8x8
)

func (s Shape) String() string {
	switch s {
	case Shape16x8:
		return "16x8"
	case Shape8x16:
		return "8x16"
	case Shape8x8:
		return "8x8"
	default:
		return "16x16"
	}
}

// Samples is the number of elementary vectors a macroblock of this shape
// carries per prediction list.
func (s Shape) Samples() int {
	switch s {
	case Shape8x8:
		return 4
	case Shape16x8, Shape8x16:
		return 2
	default:
		return 1
	}
}

// Direction selects a prediction list.
type Direction uint8

const (
	Forward  Direction = 0
	Backward Direction = 1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Descriptor is the decoded form of an MBType.
type Descriptor struct {
	Shape      Shape
	Interlaced bool
	List       [2]bool
}

// Describe decodes a raw macroblock type. When several partition bits are
// set the finest split wins, a mask with none of them is treated as 16x16.
func Describe(t MBType) Descriptor {
	d := Descriptor{
		Interlaced: t&MBInterlaced != 0,
		List:       [2]bool{t&MBL0 != 0, t&MBL1 != 0},
	}
	switch {
	case t&MB8x8 != 0:
		d.Shape = Shape8x8
	case t&MB16x8 != 0:
		d.Shape = Shape16x8
	case t&MB8x16 != 0:
		d.Shape = Shape8x16
	default:
		d.Shape = Shape16x16
	}
	return d
}

// Uses reports whether the macroblock predicts from the given list.
func (d Descriptor) Uses(dir Direction) bool {
	return d.List[dir&1]
}
