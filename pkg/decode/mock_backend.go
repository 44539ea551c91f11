package decode

import (
	"context"
	"io"

	"github.com/tauraamui/mvextract/pkg/motion"
	"github.com/tauraamui/mvextract/pkg/mvdump"
	"github.com/tauraamui/xerror"
)

const (
	defaultMockFrames = 48
	mockWidth         = 320
	mockHeight        = 240
	// every mockGOP'th picture is intra coded
	mockGOP = 12
)

type mockBackend struct {
	frames int
}

func (b *mockBackend) Open(ctx context.Context, path string) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerror.Errorf("opening %s cancelled: %w", path, err)
	}
	geo := motion.NewGeometry(mockWidth, mockHeight, 2, true, motion.CodecH264)
	return &mockStream{
		packets:  b.frames,
		selected: -1,
		geo:      geo,
		types:    make([]motion.MBType, geo.TypeLen()),
		field: [2][]motion.Vector{
			make([]motion.Vector, geo.FieldLen()),
			make([]motion.Vector, geo.FieldLen()),
		},
	}, nil
}

// mockStream synthesises a camera pan, the left half of the picture
// moves as whole macroblocks and the right half as 8x8 splits.
type mockStream struct {
	packets  int
	read     int
	decoded  int
	selected int
	geo      motion.Geometry
	types    []motion.MBType
	field    [2][]motion.Vector
}

func (s *mockStream) Streams() []StreamInfo {
	return []StreamInfo{{
		Index: 0, Kind: mvdump.KindVideo, Codec: s.geo.Codec,
		Width: s.geo.Width, Height: s.geo.Height, QuarterSample: s.geo.QuarterSample,
	}}
}

func (s *mockStream) Select(index int) error {
	if index != 0 {
		return xerror.Errorf("stream %d does not exist", index)
	}
	s.selected = index
	return nil
}

func (s *mockStream) Read(frame *motion.Frame) (bool, error) {
	if s.selected < 0 {
		return false, xerror.New("no video stream selected")
	}
	if s.read >= s.packets {
		return false, io.EOF
	}
	s.read++
	// the decoder buffers every fourth packet without output
	if s.read%4 == 0 {
		return false, nil
	}

	n := s.decoded
	s.decoded++
	picture := motion.PictureP
	switch {
	case n%mockGOP == 0:
		picture = motion.PictureI
	case n%2 == 1:
		picture = motion.PictureB
	}

	lists := motion.MBL0
	if picture == motion.PictureB {
		lists = motion.MBL0L1
	}
	for mbY := 0; mbY < s.geo.MBHeight; mbY++ {
		for mbX := 0; mbX < s.geo.MBWidth; mbX++ {
			shape := motion.MB16x16
			if mbX >= s.geo.MBWidth/2 {
				shape = motion.MB8x8
			}
			s.types[mbX+mbY*s.geo.MBStride] = shape | lists
		}
	}

	pan := motion.Vector{X: 4 * (n % 8), Y: 4}
	for i := range s.field[motion.Forward] {
		s.field[motion.Forward][i] = pan
		s.field[motion.Backward][i] = motion.Vector{X: -pan.X, Y: 0}
	}

	*frame = motion.Frame{
		Index:    n,
		Picture:  picture,
		Geometry: s.geo,
		Types:    s.types,
		Field:    s.field,
	}
	if picture.IsIntra() {
		frame.Field = [2][]motion.Vector{}
	}
	return true, nil
}

func (s *mockStream) Close() error {
	return nil
}
