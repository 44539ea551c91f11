package motion

// PictureType is the coding type of a decoded picture.
type PictureType uint8

const (
	PictureNone PictureType = iota
	PictureI
	PictureP
	PictureB
	PictureS
	PictureSI
	PictureSP
	PictureBI
)

func (p PictureType) String() string {
	switch p {
	case PictureI:
		return "I"
	case PictureP:
		return "P"
	case PictureB:
		return "B"
	case PictureS:
		return "S"
	case PictureSI:
		return "SI"
	case PictureSP:
		return "SP"
	case PictureBI:
		return "BI"
	default:
		return "?"
	}
}

var (
	forwardOnly   = []Direction{Forward}
	bidirectional = []Direction{Forward, Backward}
)

// Directions lists the prediction directions which contribute to a
// macroblock's vector for this picture type.
func (p PictureType) Directions() []Direction {
	switch p {
	case PictureP:
		return forwardOnly
	case PictureB:
		return bidirectional
	default:
		return nil
	}
}

func (p PictureType) IsIntra() bool {
	return p == PictureI
}

// Frame is one decoded picture as annotated by the decoder. Types and
// Field are borrowed from the decoder and are only valid until it
// produces the next frame.
type Frame struct {
	Index    int
	Picture  PictureType
	Geometry Geometry
	// Types holds one entry per macroblock, rows are Geometry.MBStride apart.
	Types []MBType
	// Field holds the raw vector samples per prediction list in decoder
	// native fractional units, a nil list was not exported.
	Field [2][]Vector
}

// HasMotion reports whether the decoder attached any vector field.
func (f *Frame) HasMotion() bool {
	return f.Field[Forward] != nil || f.Field[Backward] != nil
}

// Clone deep copies the frame so it can outlive the decoder's buffers.
func (f *Frame) Clone() *Frame {
	c := *f
	if f.Types != nil {
		c.Types = append([]MBType(nil), f.Types...)
	}
	for i := range f.Field {
		if f.Field[i] != nil {
			c.Field[i] = append([]Vector(nil), f.Field[i]...)
		}
	}
	return &c
}
