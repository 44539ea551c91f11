package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tauraamui/mvextract/pkg/configdef"
	"github.com/tauraamui/mvextract/pkg/decode"
	"github.com/tauraamui/mvextract/pkg/extract"
	"github.com/tauraamui/mvextract/pkg/features"
	"github.com/tauraamui/mvextract/pkg/log"
	"github.com/tauraamui/mvextract/pkg/probe"
	"github.com/tauraamui/mvextract/pkg/render"
	"github.com/tauraamui/mvextract/pkg/segment"
	"github.com/tauraamui/mvextract/pkg/store"
	"github.com/tauraamui/xerror"
)

const (
	renderWidth  = 1200
	renderHeight = 900
)

var fs = afero.NewOsFs()

var openStore = func(path string) (*store.Store, error) {
	return store.Open(path)
}

func extractMotion(ctx context.Context, input string, values configdef.Values) (string, error) {
	settings := extract.Settings{
		Input:   input,
		Output:  values.OutputPath,
		Backend: decode.Resolve(values.Backend),
		Workers: values.Workers,
	}
	if values.ShowMap {
		settings.MapWriter = os.Stdout
		settings.Paint = extract.Painter(os.Stdout)
	}
	if len(values.DatabasePath) > 0 {
		s, err := openStore(values.DatabasePath)
		if err != nil {
			return "", err
		}
		defer s.Close()
		settings.Store = s
	}

	seq, err := extract.Run(ctx, settings)
	if err != nil {
		if errors.Is(err, context.Canceled) && seq != nil {
			return fmt.Sprintf("Interrupted, wrote %d frames to %s", seq.Len(), values.OutputPath), nil
		}
		return "", err
	}
	return fmt.Sprintf("Extracted %d frames to %s", seq.Len(), values.OutputPath), nil
}

func probeMedia(path string) (string, error) {
	info, err := probe.Probe(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %dx%d, %.2f fps, %d frames (%ds), codec %s",
		path, info.Width, info.Height, info.FPS, info.Frames, info.Length(), info.Codec()), nil
}

func segmentMedia(ctx context.Context, path string, opts configdef.Segment) (string, error) {
	info, err := probe.Probe(path)
	if err != nil {
		return "", err
	}

	plan := segment.Plan(info.Length(), opts.Seconds, path, opts.OutputDir)
	if err := segment.Run(ctx, plan, opts.Width); err != nil {
		return "", err
	}
	return fmt.Sprintf("Cut %d segments of %ds into %s", len(plan), opts.Seconds, opts.OutputDir), nil
}

func extractFeatures(path string, opts configdef.Features) (string, error) {
	seq, err := extract.ReadDocument(path)
	if err != nil {
		return "", err
	}

	summaries := features.FromSequence(seq, features.Options{
		XCells: opts.XCells, YCells: opts.YCells, Bins: opts.Bins, Density: opts.Density, Window: opts.Window,
	})
	if len(summaries) == 0 {
		return "", xerror.Errorf("%s holds too few frames to summarise", path)
	}

	if len(opts.RenderPath) == 0 {
		return fmt.Sprintf("Summarised %d windows", len(summaries)), nil
	}

	start := 0
	for i, s := range summaries {
		caption := fmt.Sprintf("%s frames %d-%d", filepath.Base(path), start, start+s.Frames-1)
		img, err := render.Summary(s, renderWidth, renderHeight, caption)
		if err != nil {
			return "", err
		}
		out := renderPath(opts.RenderPath, i, len(summaries))
		if err := render.WritePNG(fs, out, img); err != nil {
			return "", err
		}
		log.Info("Rendered %s", out)
		start++
	}
	return fmt.Sprintf("Rendered %d summaries to %s", len(summaries), opts.RenderPath), nil
}

// renderPath numbers the output when there is more than one summary.
func renderPath(path string, i, n int) string {
	if n == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), i, ext)
}
