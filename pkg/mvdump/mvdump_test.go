package mvdump_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tauraamui/mvextract/pkg/motion"
	"github.com/tauraamui/mvextract/pkg/mvdump"
)

var testStreams = []mvdump.StreamHeader{
	{Kind: mvdump.KindAudio},
	{Kind: mvdump.KindVideo, Codec: motion.CodecMPEG4, Width: 320, Height: 240, QuarterSample: true},
}

func testPackets() []mvdump.Packet {
	return []mvdump.Packet{
		{Stream: 0},
		{Stream: 1},
		{
			Stream: 1, HasFrame: true, Picture: motion.PictureB, SubsampleLog2: 2,
			Types: []motion.MBType{motion.MB16x16 | motion.MBL0, motion.MB8x8 | motion.MBL0L1, 0},
			Lists: [2][]motion.Vector{
				{{X: -32768, Y: 32767}, {X: 4, Y: -4}},
				{{X: 1, Y: 2}},
			},
		},
		{
			Stream: 1, HasFrame: true, Picture: motion.PictureI, SubsampleLog2: 2,
			Types: []motion.MBType{motion.MBIntra16x16},
		},
	}
}

func writeDump(t *testing.T, compress bool) []byte {
	var buf bytes.Buffer
	w, err := mvdump.NewWriter(&buf, testStreams, compress)
	require.NoError(t, err)
	for _, p := range testPackets() {
		p := p
		require.NoError(t, w.WritePacket(&p))
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func readAll(t *testing.T, data []byte) ([]mvdump.StreamHeader, []mvdump.Packet) {
	r, err := mvdump.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer r.Close()

	var packets []mvdump.Packet
	for {
		var p mvdump.Packet
		err := r.Next(&p)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		packets = append(packets, p)
	}
	return r.Streams(), packets
}

func assertPacketsEqual(t *testing.T, want, got []mvdump.Packet) {
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Stream, got[i].Stream)
		assert.Equal(t, want[i].HasFrame, got[i].HasFrame)
		if !want[i].HasFrame {
			continue
		}
		assert.Equal(t, want[i].Picture, got[i].Picture)
		assert.Equal(t, want[i].SubsampleLog2, got[i].SubsampleLog2)
		assert.Equal(t, want[i].Types, got[i].Types)
		assert.Equal(t, want[i].Lists, got[i].Lists)
	}
}

func TestDumpRoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		streams, packets := readAll(t, writeDump(t, compress))
		assert.Equal(t, testStreams, streams)
		assertPacketsEqual(t, testPackets(), packets)
	}
}

func TestCompressedDumpIsZstdFramed(t *testing.T) {
	is := is.New(t)
	data := writeDump(t, true)
	is.Equal(data[:4], []byte{0x28, 0xB5, 0x2F, 0xFD})
}

func TestReaderRejectsForeignData(t *testing.T) {
	is := is.New(t)

	_, err := mvdump.NewReader(bytes.NewReader([]byte("RIFF....WEBPVP8 ")))
	is.True(errors.Is(err, mvdump.ErrBadMagic))

	_, err = mvdump.NewReader(bytes.NewReader([]byte("MV")))
	is.True(errors.Is(err, mvdump.ErrBadMagic))
}

func TestReaderReportsTruncatedPacketAsCorrupt(t *testing.T) {
	is := is.New(t)

	data := writeDump(t, false)
	r, err := mvdump.NewReader(bytes.NewReader(data[:len(data)-3]))
	is.NoErr(err)

	var p mvdump.Packet
	for err == nil {
		err = r.Next(&p)
	}
	is.True(errors.Is(err, mvdump.ErrCorrupt))
}

func TestReaderRejectsPacketForUnknownStream(t *testing.T) {
	is := is.New(t)

	data := writeDump(t, false)
	// header is 4 magic + 1 count + 7 per stream, the first packet follows
	data[4+1+7*len(testStreams)] = 9
	r, err := mvdump.NewReader(bytes.NewReader(data))
	is.NoErr(err)

	var p mvdump.Packet
	is.True(errors.Is(r.Next(&p), mvdump.ErrCorrupt))
}

func TestWriterRejectsPacketForUnknownStream(t *testing.T) {
	w, err := mvdump.NewWriter(io.Discard, testStreams, false)
	require.NoError(t, err)
	assert.Error(t, w.WritePacket(&mvdump.Packet{Stream: 2}))
}
