// Package segment cuts long recordings into fixed length, rescaled clips.
package segment

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/tauraamui/mvextract/pkg/log"
	"github.com/tauraamui/xerror"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var fs = afero.NewOsFs()

type Segment struct {
	Index    int
	Start    int
	Duration int
	Source   string
	Output   string
}

// Plan lays out consecutive segments of segLength seconds over a source
// of length seconds. A trailing segment which would reach the end of the
// source is dropped.
func Plan(length, segLength int, src, outDir string) []Segment {
	if segLength < 1 {
		return nil
	}
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	var plan []Segment
	for i := 0; (i+1)*segLength < length; i++ {
		plan = append(plan, Segment{
			Index:    i,
			Start:    i * segLength,
			Duration: segLength,
			Source:   src,
			Output:   filepath.Join(outDir, fmt.Sprintf("%s_%d%s", name, i, ext)),
		})
	}
	return plan
}

// Args is the ffmpeg command line cutting s scaled to width.
func (s Segment) Args(width int) []string {
	return ffmpeg.Input(s.Source).
		Output(s.Output, ffmpeg.KwArgs{
			"ss":       strconv.Itoa(s.Start),
			"t":        strconv.Itoa(s.Duration),
			"filter:v": fmt.Sprintf("scale=%d:-1", width),
		}).
		OverWriteOutput().
		GetArgs()
}

var runFFmpeg = func(ctx context.Context, args []string) error {
	out, err := exec.CommandContext(ctx, "ffmpeg", args...).CombinedOutput()
	if err != nil {
		log.Debug("ffmpeg output: %s", out)
		return err
	}
	return nil
}

// Run cuts every planned segment in order, stopping at the first failure
// or when ctx is cancelled.
func Run(ctx context.Context, plan []Segment, width int) error {
	for _, s := range plan {
		if err := ctx.Err(); err != nil {
			return xerror.Errorf("segmenting cancelled: %w", err)
		}
		if err := fs.MkdirAll(filepath.Dir(s.Output), os.ModeDir|os.ModePerm); err != nil {
			return xerror.Errorf("unable to create segment directory: %w", err)
		}

		log.Info("Cutting segment %d of [%s] into %s...", s.Index, s.Source, s.Output)
		if err := runFFmpeg(ctx, s.Args(width)); err != nil {
			return xerror.Errorf("unable to cut segment %d: %w", s.Index, err)
		}
	}
	return nil
}
