package extract

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tauraamui/mvextract/pkg/decode"
	"github.com/tauraamui/mvextract/pkg/log"
	"github.com/tauraamui/mvextract/pkg/motion"
	"github.com/tauraamui/xerror"
)

var fs = afero.NewOsFs()

// Saver persists a finished run and returns its identifier.
type Saver interface {
	SaveSequence(input string, seq *motion.Sequence) (string, error)
}

type Settings struct {
	Input   string
	Output  string
	Backend decode.Backend
	// Workers above one aggregate frames concurrently.
	Workers int
	// MapWriter receives each frame's intensity map when set.
	MapWriter io.Writer
	Paint     func(motion.Intensity, string) string
	Store     Saver
}

// Run extracts the motion grid of every non intra frame of the input's
// first video stream and writes them as a single document to the
// output path. A cancelled context stops decoding, the frames aggregated
// so far are still written and ctx.Err() is returned alongside them.
func Run(ctx context.Context, s Settings) (*motion.Sequence, error) {
	if s.Backend == nil {
		s.Backend = decode.Default()
	}

	stream, err := s.Backend.Open(ctx, s.Input)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	index, err := decode.FirstVideoStream(stream.Streams())
	if err != nil {
		return nil, xerror.Errorf("%s: %w", s.Input, err)
	}
	if err := stream.Select(index); err != nil {
		return nil, err
	}
	info := stream.Streams()[index]
	log.Info("Extracting motion from stream %d of [%s] (%s %dx%d)...", index, s.Input, info.Codec, info.Width, info.Height)

	seq := motion.NewSequence(info.Width, info.Height)
	c := newCollector(seq, s.MapWriter, s.Paint)

	var runErr error
	if s.Workers > 1 {
		runErr = runParallel(ctx, stream, c, s.Workers)
	} else {
		runErr = runSequential(ctx, stream, c)
	}
	interrupted := errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded)
	if runErr != nil && !interrupted {
		return nil, runErr
	}
	log.Info("Aggregated %d frames", seq.Len())

	if len(s.Output) > 0 {
		if err := writeDocument(s.Output, seq); err != nil {
			return nil, err
		}
		log.Info("Wrote motion document: %s", s.Output)
	}

	if s.Store != nil {
		id, err := s.Store.SaveSequence(s.Input, seq)
		if err != nil {
			return nil, xerror.Errorf("unable to store run: %w", err)
		}
		log.Info("Stored run %s", id)
	}

	return seq, runErr
}

func writeDocument(path string, seq *motion.Sequence) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, os.ModeDir|os.ModePerm); err != nil {
			return xerror.Errorf("unable to create output directory: %w", err)
		}
	}

	file, err := fs.Create(path)
	if err != nil {
		return xerror.Errorf("unable to create output file: %w", err)
	}
	defer file.Close()

	return motion.EncodeDocument(file, seq)
}

// ReadDocument loads a document previously written by Run.
func ReadDocument(path string) (*motion.Sequence, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, xerror.Errorf("unable to open motion document: %w", err)
	}
	defer file.Close()
	return motion.DecodeDocument(file)
}
