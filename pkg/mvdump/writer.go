package mvdump

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/tauraamui/xerror"
)

// Writer encodes a motion dump. Close must be called to flush it, the
// destination writer is left open.
type Writer struct {
	w       *bufio.Writer
	zw      *zstd.Encoder
	streams int
	buf     [8]byte
}

func NewWriter(dst io.Writer, streams []StreamHeader, compress bool) (*Writer, error) {
	if len(streams) > math.MaxUint8 {
		return nil, xerror.Errorf("motion dump supports at most %d streams", math.MaxUint8)
	}

	wr := &Writer{streams: len(streams)}
	if compress {
		zw, err := zstd.NewWriter(dst)
		if err != nil {
			return nil, xerror.Errorf("unable to create dump compressor: %w", err)
		}
		wr.zw = zw
		wr.w = bufio.NewWriter(zw)
	} else {
		wr.w = bufio.NewWriter(dst)
	}

	wr.w.Write(magic[:]) //nolint
	wr.w.WriteByte(byte(len(streams))) //nolint
	for _, s := range streams {
		wr.buf[0] = byte(s.Kind)
		wr.buf[1] = byte(s.Codec)
		binary.LittleEndian.PutUint16(wr.buf[2:4], uint16(s.Width))
		binary.LittleEndian.PutUint16(wr.buf[4:6], uint16(s.Height))
		wr.buf[6] = boolByte(s.QuarterSample)
		if _, err := wr.w.Write(wr.buf[:7]); err != nil {
			return nil, err
		}
	}
	return wr, nil
}

func (wr *Writer) WritePacket(p *Packet) error {
	if p.Stream < 0 || p.Stream >= wr.streams {
		return xerror.Errorf("packet for unknown stream %d", p.Stream)
	}
	wr.w.WriteByte(byte(p.Stream)) //nolint
	if !p.HasFrame {
		return wr.w.WriteByte(0)
	}
	wr.w.WriteByte(1)                     //nolint
	wr.w.WriteByte(byte(p.Picture))       //nolint
	wr.w.WriteByte(byte(p.SubsampleLog2)) //nolint

	wr.u32(uint32(len(p.Types)))
	for _, t := range p.Types {
		wr.u32(uint32(t))
	}

	var mask byte
	if p.Lists[0] != nil {
		mask |= listMask0
	}
	if p.Lists[1] != nil {
		mask |= listMask1
	}
	wr.w.WriteByte(mask) //nolint
	for _, field := range p.Lists {
		if field == nil {
			continue
		}
		wr.u32(uint32(len(field)))
		for _, v := range field {
			binary.LittleEndian.PutUint16(wr.buf[0:2], uint16(int16(v.X)))
			binary.LittleEndian.PutUint16(wr.buf[2:4], uint16(int16(v.Y)))
			if _, err := wr.w.Write(wr.buf[:4]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (wr *Writer) u32(v uint32) {
	binary.LittleEndian.PutUint32(wr.buf[:4], v)
	wr.w.Write(wr.buf[:4]) //nolint
}

func (wr *Writer) Close() error {
	if err := wr.w.Flush(); err != nil {
		return xerror.Errorf("unable to flush motion dump: %w", err)
	}
	if wr.zw != nil {
		return wr.zw.Close()
	}
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
