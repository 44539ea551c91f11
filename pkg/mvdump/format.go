// Package mvdump reads and writes motion dumps, the per packet export of
// macroblock types and raw vector fields produced by the decoder engine.
//
// A dump is little endian and may be wrapped in a single zstd frame:
//
//	header  "MVD\x01" | u8 streams | streams * (u8 kind, u8 codec, u16 w, u16 h, u8 qpel)
//	packet  u8 stream | u8 has frame
//	frame   u8 picture | u8 subsample log2 | u32 n | n * u32 mb type | u8 list mask
//	list    u32 n | n * (i16 dx, i16 dy)
//
// Packets follow the header until the end of the stream.
package mvdump

import (
	"errors"

	"github.com/tauraamui/mvextract/pkg/motion"
)

var magic = [4]byte{'M', 'V', 'D', 0x01}

var zstdMagic = [4]byte{0x28, 0xB5, 0x2F, 0xFD}

var (
	ErrBadMagic = errors.New("not a motion dump")
	ErrCorrupt  = errors.New("corrupt motion dump")
)

type StreamKind uint8

const (
	KindVideo StreamKind = 0x0
	KindAudio StreamKind = 0x1
	KindOther StreamKind = 0x2
)

func (k StreamKind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	default:
		return "other"
	}
}

type StreamHeader struct {
	Kind          StreamKind
	Codec         motion.Codec
	Width         int
	Height        int
	QuarterSample bool
}

// Packet is one demuxed packet. When HasFrame is false the decoder
// consumed the packet without producing a picture.
type Packet struct {
	Stream        int
	HasFrame      bool
	Picture       motion.PictureType
	SubsampleLog2 int
	Types         []motion.MBType
	// Lists holds the raw vector field per prediction list, nil when the
	// decoder exported none.
	Lists [2][]motion.Vector
}

func (p *Packet) reset() {
	p.Stream = 0
	p.HasFrame = false
	p.Picture = motion.PictureNone
	p.SubsampleLog2 = 0
	p.Types = p.Types[:0]
}

const (
	maxEntries = 1 << 24
	listMask0  = 0x1
	listMask1  = 0x2
)
