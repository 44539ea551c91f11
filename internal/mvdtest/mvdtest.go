// Package mvdtest builds small motion dumps for tests.
package mvdtest

import (
	"github.com/spf13/afero"
	"github.com/tauraamui/mvextract/pkg/motion"
	"github.com/tauraamui/mvextract/pkg/mvdump"
)

// VideoStream is a 32x16 (two macroblock) half-pel MPEG-4 stream.
var VideoStream = mvdump.StreamHeader{
	Kind: mvdump.KindVideo, Codec: motion.CodecMPEG4, Width: 32, Height: 16,
}

var AudioStream = mvdump.StreamHeader{Kind: mvdump.KindAudio}

func WriteDump(fs afero.Fs, path string, streams []mvdump.StreamHeader, packets []mvdump.Packet, compress bool) error {
	file, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w, err := mvdump.NewWriter(file, streams, compress)
	if err != nil {
		return err
	}
	for i := range packets {
		if err := w.WritePacket(&packets[i]); err != nil {
			return err
		}
	}
	return w.Close()
}

// Geometry of VideoStream at subsample log2 2.
func Geometry() motion.Geometry {
	h := VideoStream
	return motion.NewGeometry(h.Width, h.Height, 2, h.QuarterSample, h.Codec)
}

// ForwardPacket is a P picture of VideoStream whose first macroblock moves
// by raw (dx, dy) and whose second uses no list.
func ForwardPacket(stream int, dx, dy int) mvdump.Packet {
	geo := Geometry()
	types := make([]motion.MBType, geo.TypeLen())
	types[0] = motion.MB16x16 | motion.MBP0L0
	types[1] = motion.MB16x16
	field := make([]motion.Vector, geo.FieldLen())
	field[0] = motion.Vector{X: dx, Y: dy}
	return mvdump.Packet{
		Stream: stream, HasFrame: true, Picture: motion.PictureP, SubsampleLog2: 2,
		Types: types, Lists: [2][]motion.Vector{field},
	}
}

// IntraPacket is an I picture of VideoStream.
func IntraPacket(stream int) mvdump.Packet {
	geo := Geometry()
	types := make([]motion.MBType, geo.TypeLen())
	for i := range types {
		types[i] = motion.MBIntra16x16
	}
	return mvdump.Packet{
		Stream: stream, HasFrame: true, Picture: motion.PictureI, SubsampleLog2: 2, Types: types,
	}
}
