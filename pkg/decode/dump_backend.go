package decode

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/afero"
	"github.com/tauraamui/mvextract/pkg/motion"
	"github.com/tauraamui/mvextract/pkg/mvdump"
	"github.com/tauraamui/xerror"
)

type dumpBackend struct{}

func (b *dumpBackend) Open(ctx context.Context, path string) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerror.Errorf("opening %s cancelled: %w", path, err)
	}

	file, err := fs.Open(path)
	if err != nil {
		return nil, xerror.Errorf("unable to open input %s: %w", path, err).AsKind(UnreadableInputError)
	}

	reader, err := mvdump.NewReader(file)
	if err != nil {
		file.Close()
		return nil, xerror.Errorf("unable to decode input %s: %w", path, err).AsKind(UndecodableStreamError)
	}

	stream := dumpStream{file: file, reader: reader, selected: -1}
	for i, h := range reader.Streams() {
		stream.streams = append(stream.streams, StreamInfo{
			Index: i, Kind: h.Kind, Codec: h.Codec,
			Width: h.Width, Height: h.Height, QuarterSample: h.QuarterSample,
		})
	}
	return &stream, nil
}

type dumpStream struct {
	file     afero.File
	reader   *mvdump.Reader
	streams  []StreamInfo
	selected int
	decoded  int
	pkt      mvdump.Packet
}

func (s *dumpStream) Streams() []StreamInfo {
	return s.streams
}

func (s *dumpStream) Select(index int) error {
	if index < 0 || index >= len(s.streams) {
		return xerror.Errorf("stream %d does not exist", index)
	}
	if s.streams[index].Kind != mvdump.KindVideo {
		return xerror.Errorf("stream %d is not a video stream", index)
	}
	s.selected = index
	return nil
}

func (s *dumpStream) Read(frame *motion.Frame) (bool, error) {
	if s.selected < 0 {
		return false, xerror.New("no video stream selected")
	}

	if err := s.reader.Next(&s.pkt); err != nil {
		if errors.Is(err, io.EOF) {
			return false, io.EOF
		}
		return false, xerror.Errorf("unable to read packet: %w", err).AsKind(UndecodableStreamError)
	}

	if s.pkt.Stream != s.selected || !s.pkt.HasFrame {
		return false, nil
	}

	info := s.streams[s.selected]
	if s.pkt.SubsampleLog2 < 1 || s.pkt.SubsampleLog2 > 3 {
		return false, xerror.Errorf(
			"frame %d: unsupported motion subsample log2 %d", s.decoded, s.pkt.SubsampleLog2,
		).AsKind(UndecodableStreamError)
	}

	geo := motion.NewGeometry(info.Width, info.Height, s.pkt.SubsampleLog2, info.QuarterSample, info.Codec)
	if err := checkBounds(s.decoded, geo, &s.pkt); err != nil {
		return false, err
	}

	*frame = motion.Frame{
		Index:    s.decoded,
		Picture:  s.pkt.Picture,
		Geometry: geo,
		Types:    s.pkt.Types,
		Field:    s.pkt.Lists,
	}
	s.decoded++
	return true, nil
}

// checkBounds rejects frames whose arrays are shorter than their geometry
// implies, so aggregation never has to.
func checkBounds(index int, geo motion.Geometry, pkt *mvdump.Packet) error {
	if pkt.Lists[0] == nil && pkt.Lists[1] == nil {
		return nil
	}
	if len(pkt.Types) < geo.TypeLen() {
		return xerror.Errorf(
			"frame %d: %d macroblock types, geometry needs %d", index, len(pkt.Types), geo.TypeLen(),
		).AsKind(UndecodableStreamError)
	}
	for list, field := range pkt.Lists {
		if field != nil && len(field) < geo.FieldLen() {
			return xerror.Errorf(
				"frame %d: list %d has %d vectors, geometry needs %d", index, list, len(field), geo.FieldLen(),
			).AsKind(UndecodableStreamError)
		}
	}
	return nil
}

func (s *dumpStream) Close() error {
	s.reader.Close()
	return s.file.Close()
}
