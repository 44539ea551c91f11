package motion

// Codec identifies the decoder which produced a frame. Only the H.264
// family lays its vector field out without a padding column.
type Codec uint8

const (
	CodecUnknown Codec = 0x0
	CodecMPEG1   Codec = 0x1
	CodecMPEG2   Codec = 0x2
	CodecMPEG4   Codec = 0x3
	CodecH263    Codec = 0x4
	CodecH264    Codec = 0x5
)

func (c Codec) String() string {
	switch c {
	case CodecMPEG1:
		return "mpeg1video"
	case CodecMPEG2:
		return "mpeg2video"
	case CodecMPEG4:
		return "mpeg4"
	case CodecH263:
		return "h263"
	case CodecH264:
		return "h264"
	default:
		return "unknown"
	}
}

// MacroblockSize is the edge length in pixels of one macroblock.
const MacroblockSize = 16

// Geometry describes the macroblock layout of a single decoded frame and
// the addressing of the decoder's subsampled vector field.
type Geometry struct {
	Width, Height     int
	MBWidth, MBHeight int
	// MBStride is the row stride of the macroblock type array.
	MBStride int
	// SubsampleLog2 is the decoder reported motion subsample log2.
	SubsampleLog2 int
	// SampleLog2 is log2 of the vector samples along one macroblock edge.
	SampleLog2 int
	// MVStride is the row stride of the vector field.
	MVStride      int
	QuarterSample bool
	// Shift converts decoder native fractional units to pixel units.
	Shift int
	Codec Codec
}

func NewGeometry(width, height, subsampleLog2 int, quarterSample bool, codec Codec) Geometry {
	g := Geometry{
		Width:         width,
		Height:        height,
		MBWidth:       (width + MacroblockSize - 1) / MacroblockSize,
		MBHeight:      (height + MacroblockSize - 1) / MacroblockSize,
		SubsampleLog2: subsampleLog2,
		SampleLog2:    4 - subsampleLog2,
		QuarterSample: quarterSample,
		Shift:         1,
		Codec:         codec,
	}
	g.MBStride = g.MBWidth + 1
	g.MVStride = g.MBWidth << g.SampleLog2
	if codec != CodecH264 {
		g.MVStride++
	}
	if quarterSample {
		g.Shift = 2
	}
	return g
}

// Macroblocks is the number of macroblocks in the frame.
func (g Geometry) Macroblocks() int {
	return g.MBWidth * g.MBHeight
}

// TypeLen is the minimum length of a macroblock type array for this geometry.
func (g Geometry) TypeLen() int {
	return g.MBStride * g.MBHeight
}

// FieldLen is the minimum length of one prediction list's vector field.
func (g Geometry) FieldLen() int {
	return g.MVStride * (g.MBHeight << g.SampleLog2)
}
