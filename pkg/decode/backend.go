package decode

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/afero"
	"github.com/tauraamui/mvextract/pkg/motion"
	"github.com/tauraamui/mvextract/pkg/mvdump"
	"github.com/tauraamui/xerror"
)

var fs = afero.NewOsFs()

const (
	UnreadableInputError   = xerror.Kind("unreadable_input")
	UndecodableStreamError = xerror.Kind("undecodable_stream")
)

var ErrNoVideoStream = errors.New("no video stream found")

type StreamInfo struct {
	Index         int
	Kind          mvdump.StreamKind
	Codec         motion.Codec
	Width, Height int
	QuarterSample bool
}

// Stream is an opened input. Read consumes a single packet and fills
// frame when the packet produced a picture of the selected stream; the
// frame's arrays belong to the stream and are overwritten by the next Read.
type Stream interface {
	Streams() []StreamInfo
	Select(index int) error
	Read(frame *motion.Frame) (bool, error)
	Close() error
}

type Backend interface {
	Open(ctx context.Context, path string) (Stream, error)
}

func Default() Backend {
	return Dump()
}

func Dump() Backend {
	return &dumpBackend{}
}

func Mock() Backend {
	return &mockBackend{frames: defaultMockFrames}
}

func Resolve(t string) Backend {
	switch strings.ToLower(t) {
	case "mock":
		return Mock()
	default:
		return Default()
	}
}

// FirstVideoStream returns the index of the first video stream.
func FirstVideoStream(streams []StreamInfo) (int, error) {
	for _, s := range streams {
		if s.Kind == mvdump.KindVideo {
			return s.Index, nil
		}
	}
	return -1, ErrNoVideoStream
}
