package mvdump

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/tauraamui/mvextract/pkg/motion"
	"github.com/tauraamui/xerror"
)

// Reader decodes packets from a motion dump. The slices of a Packet
// filled by Next are reused by the following call.
type Reader struct {
	r       *bufio.Reader
	zr      *zstd.Decoder
	streams []StreamHeader
	buf     [8]byte
}

func NewReader(src io.Reader) (*Reader, error) {
	br := bufio.NewReader(src)
	peek, err := br.Peek(4)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, xerror.Errorf("%w: stream too short", ErrBadMagic)
		}
		return nil, err
	}

	rd := &Reader{r: br}
	if [4]byte{peek[0], peek[1], peek[2], peek[3]} == zstdMagic {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, xerror.Errorf("unable to open compressed dump: %w", err)
		}
		rd.zr = zr
		rd.r = bufio.NewReader(zr)
	}

	if err := rd.readHeader(); err != nil {
		rd.Close()
		return nil, err
	}
	return rd, nil
}

func (rd *Reader) Streams() []StreamHeader {
	return rd.streams
}

// Close releases the decompressor, it never closes the source reader.
func (rd *Reader) Close() {
	if rd.zr != nil {
		rd.zr.Close()
		rd.zr = nil
	}
}

func (rd *Reader) readHeader() error {
	var m [4]byte
	if _, err := io.ReadFull(rd.r, m[:]); err != nil {
		return xerror.Errorf("%w: %v", ErrBadMagic, err)
	}
	if m != magic {
		return ErrBadMagic
	}

	count, err := rd.u8()
	if err != nil {
		return corrupt(err)
	}
	rd.streams = make([]StreamHeader, 0, count)
	for i := 0; i < int(count); i++ {
		if _, err := io.ReadFull(rd.r, rd.buf[:7]); err != nil {
			return corrupt(err)
		}
		rd.streams = append(rd.streams, StreamHeader{
			Kind:          StreamKind(rd.buf[0]),
			Codec:         motion.Codec(rd.buf[1]),
			Width:         int(binary.LittleEndian.Uint16(rd.buf[2:4])),
			Height:        int(binary.LittleEndian.Uint16(rd.buf[4:6])),
			QuarterSample: rd.buf[6] != 0,
		})
	}
	return nil
}

// Next reads the following packet into p. It returns io.EOF once the
// dump ends cleanly on a packet boundary.
func (rd *Reader) Next(p *Packet) error {
	p.reset()

	stream, err := rd.u8()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return err
	}
	if int(stream) >= len(rd.streams) {
		return xerror.Errorf("%w: packet for unknown stream %d", ErrCorrupt, stream)
	}
	p.Stream = int(stream)

	hasFrame, err := rd.u8()
	if err != nil {
		return corrupt(err)
	}
	if hasFrame == 0 {
		return nil
	}
	p.HasFrame = true

	if _, err := io.ReadFull(rd.r, rd.buf[:2]); err != nil {
		return corrupt(err)
	}
	p.Picture = motion.PictureType(rd.buf[0])
	p.SubsampleLog2 = int(rd.buf[1])

	n, err := rd.count()
	if err != nil {
		return err
	}
	p.Types = growTypes(p.Types, n)
	for i := range p.Types {
		if _, err := io.ReadFull(rd.r, rd.buf[:4]); err != nil {
			return corrupt(err)
		}
		p.Types[i] = motion.MBType(binary.LittleEndian.Uint32(rd.buf[:4]))
	}

	mask, err := rd.u8()
	if err != nil {
		return corrupt(err)
	}
	for list, bit := range []byte{listMask0, listMask1} {
		if mask&bit == 0 {
			p.Lists[list] = nil
			continue
		}
		if err := rd.readList(p, list); err != nil {
			return err
		}
	}
	return nil
}

func (rd *Reader) readList(p *Packet, list int) error {
	n, err := rd.count()
	if err != nil {
		return err
	}
	field := growVectors(p.Lists[list], n)
	for i := range field {
		if _, err := io.ReadFull(rd.r, rd.buf[:4]); err != nil {
			return corrupt(err)
		}
		field[i] = motion.Vector{
			X: int(int16(binary.LittleEndian.Uint16(rd.buf[0:2]))),
			Y: int(int16(binary.LittleEndian.Uint16(rd.buf[2:4]))),
		}
	}
	p.Lists[list] = field
	return nil
}

func (rd *Reader) u8() (byte, error) {
	return rd.r.ReadByte()
}

func (rd *Reader) count() (int, error) {
	if _, err := io.ReadFull(rd.r, rd.buf[:4]); err != nil {
		return 0, corrupt(err)
	}
	n := binary.LittleEndian.Uint32(rd.buf[:4])
	if n > maxEntries {
		return 0, xerror.Errorf("%w: entry count %d exceeds limit", ErrCorrupt, n)
	}
	return int(n), nil
}

func corrupt(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return xerror.Errorf("%w: truncated packet", ErrCorrupt)
	}
	return err
}

func growTypes(s []motion.MBType, n int) []motion.MBType {
	if cap(s) < n {
		return make([]motion.MBType, n)
	}
	return s[:n]
}

func growVectors(s []motion.Vector, n int) []motion.Vector {
	if cap(s) < n {
		return make([]motion.Vector, n)
	}
	return s[:n]
}
