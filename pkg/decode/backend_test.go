package decode_test

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tauraamui/mvextract/internal/mvdtest"
	"github.com/tauraamui/mvextract/pkg/decode"
	"github.com/tauraamui/mvextract/pkg/motion"
	"github.com/tauraamui/mvextract/pkg/mvdump"
)

func TestResolveBackend(t *testing.T) {
	is := is.New(t)
	is.True(decode.Default() != nil)
	is.True(decode.Resolve("mock") != nil)
	is.True(decode.Resolve("") != nil)
}

func TestFirstVideoStream(t *testing.T) {
	is := is.New(t)

	index, err := decode.FirstVideoStream([]decode.StreamInfo{
		{Index: 0, Kind: mvdump.KindAudio},
		{Index: 1, Kind: mvdump.KindVideo},
		{Index: 2, Kind: mvdump.KindVideo},
	})
	is.NoErr(err)
	is.Equal(index, 1)

	_, err = decode.FirstVideoStream([]decode.StreamInfo{{Index: 0, Kind: mvdump.KindAudio}})
	is.True(errors.Is(err, decode.ErrNoVideoStream))
}

type DumpBackendTestSuite struct {
	suite.Suite
	fs      afero.Fs
	resetFS func()
	backend decode.Backend
}

func (suite *DumpBackendTestSuite) SetupTest() {
	suite.fs = afero.NewMemMapFs()
	suite.resetFS = decode.OverloadFS(suite.fs)
	suite.backend = decode.Dump()
}

func (suite *DumpBackendTestSuite) TearDownTest() {
	suite.resetFS()
}

func (suite *DumpBackendTestSuite) writeDump(packets ...mvdump.Packet) {
	require.NoError(suite.T(), mvdtest.WriteDump(
		suite.fs, "input.mvd", []mvdump.StreamHeader{mvdtest.AudioStream, mvdtest.VideoStream}, packets, true,
	))
}

func (suite *DumpBackendTestSuite) TestOpenReportsStreams() {
	suite.writeDump()

	stream, err := suite.backend.Open(context.Background(), "input.mvd")
	require.NoError(suite.T(), err)
	defer stream.Close()

	streams := stream.Streams()
	require.Len(suite.T(), streams, 2)
	assert.Equal(suite.T(), mvdump.KindAudio, streams[0].Kind)
	assert.Equal(suite.T(), decode.StreamInfo{
		Index: 1, Kind: mvdump.KindVideo, Codec: motion.CodecMPEG4, Width: 32, Height: 16,
	}, streams[1])
}

func (suite *DumpBackendTestSuite) TestOpenMissingFileIsUnreadable() {
	_, err := suite.backend.Open(context.Background(), "missing.mvd")
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "UNREADABLE_INPUT")
	assert.True(suite.T(), errors.Is(err, os.ErrNotExist))
}

func (suite *DumpBackendTestSuite) TestOpenForeignFileIsUndecodable() {
	require.NoError(suite.T(), afero.WriteFile(suite.fs, "clip.mp4", []byte("....ftypisom"), 0644))

	_, err := suite.backend.Open(context.Background(), "clip.mp4")
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "UNDECODABLE_STREAM")
	assert.True(suite.T(), errors.Is(err, mvdump.ErrBadMagic))
}

func (suite *DumpBackendTestSuite) TestOpenCancelled() {
	suite.writeDump()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.backend.Open(ctx, "input.mvd")
	assert.True(suite.T(), errors.Is(err, context.Canceled))
}

func (suite *DumpBackendTestSuite) TestReadSkipsOtherStreamsAndEmptyPackets() {
	suite.writeDump(
		mvdump.Packet{Stream: 0, HasFrame: true, Picture: motion.PictureP, SubsampleLog2: 2},
		mvdump.Packet{Stream: 1},
		mvdtest.ForwardPacket(1, 4, 4),
	)

	stream, err := suite.backend.Open(context.Background(), "input.mvd")
	require.NoError(suite.T(), err)
	defer stream.Close()
	require.NoError(suite.T(), stream.Select(1))

	var frame motion.Frame
	for i := 0; i < 2; i++ {
		ok, err := stream.Read(&frame)
		require.NoError(suite.T(), err)
		assert.False(suite.T(), ok)
	}

	ok, err := stream.Read(&frame)
	require.NoError(suite.T(), err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), motion.PictureP, frame.Picture)
	assert.Equal(suite.T(), mvdtest.Geometry(), frame.Geometry)
	assert.Equal(suite.T(), motion.Vector{X: 4, Y: 4}, frame.Field[motion.Forward][0])
	assert.True(suite.T(), frame.Field[motion.Backward] == nil)

	_, err = stream.Read(&frame)
	assert.Equal(suite.T(), io.EOF, err)
}

func (suite *DumpBackendTestSuite) TestReadRejectsFieldShorterThanGeometry() {
	short := mvdtest.ForwardPacket(1, 4, 4)
	short.Lists[0] = short.Lists[0][:3]
	suite.writeDump(short)

	stream, err := suite.backend.Open(context.Background(), "input.mvd")
	require.NoError(suite.T(), err)
	defer stream.Close()
	require.NoError(suite.T(), stream.Select(1))

	var frame motion.Frame
	_, err = stream.Read(&frame)
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "list 0 has 3 vectors")
}

func (suite *DumpBackendTestSuite) TestReadRejectsUnsupportedSubsampling() {
	p := mvdtest.ForwardPacket(1, 4, 4)
	p.SubsampleLog2 = 4
	suite.writeDump(p)

	stream, err := suite.backend.Open(context.Background(), "input.mvd")
	require.NoError(suite.T(), err)
	defer stream.Close()
	require.NoError(suite.T(), stream.Select(1))

	var frame motion.Frame
	_, err = stream.Read(&frame)
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "unsupported motion subsample log2 4")
}

func (suite *DumpBackendTestSuite) TestSelectRejectsNonVideoStream() {
	suite.writeDump()

	stream, err := suite.backend.Open(context.Background(), "input.mvd")
	require.NoError(suite.T(), err)
	defer stream.Close()

	assert.Error(suite.T(), stream.Select(0))
	assert.Error(suite.T(), stream.Select(5))
	assert.NoError(suite.T(), stream.Select(1))
}

func TestDumpBackendTestSuite(t *testing.T) {
	suite.Run(t, &DumpBackendTestSuite{})
}

func TestMockBackendProducesPanFrames(t *testing.T) {
	is := is.New(t)

	stream, err := decode.MockWithFrames(8).Open(context.Background(), "")
	is.NoErr(err)
	defer stream.Close()

	index, err := decode.FirstVideoStream(stream.Streams())
	is.NoErr(err)
	is.NoErr(stream.Select(index))

	var pictures []motion.PictureType
	var frame motion.Frame
	for {
		ok, err := stream.Read(&frame)
		if errors.Is(err, io.EOF) {
			break
		}
		is.NoErr(err)
		if ok {
			pictures = append(pictures, frame.Picture)
			is.Equal(frame.HasMotion(), !frame.Picture.IsIntra())
		}
	}
	// 8 packets, every fourth one produces nothing
	is.Equal(pictures, []motion.PictureType{
		motion.PictureI, motion.PictureB, motion.PictureP, motion.PictureB, motion.PictureP, motion.PictureB,
	})
}
