package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tauraamui/mvextract/pkg/decode"
	"github.com/tauraamui/mvextract/pkg/log"
	"github.com/tauraamui/mvextract/pkg/motion"
	"github.com/tauraamui/xerror"
)

// decodeFrames reads the selected stream until EOF, handing every non
// intra frame to emit numbered from zero. The frame passed to emit is
// only valid for the duration of the call.
func decodeFrames(ctx context.Context, stream decode.Stream, emit func(int, *motion.Frame) error) error {
	var frame motion.Frame
	n := 0
	for {
		select {
		case <-ctx.Done():
			log.Warn("Stopping extraction after %d frames...", n)
			return ctx.Err()
		default:
		}

		ok, err := stream.Read(&frame)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return xerror.Errorf("unable to decode frame after %d frames: %w", n, err)
		}
		if !ok {
			continue
		}
		if frame.Picture.IsIntra() {
			log.Debug("Skipping intra picture %d", frame.Index)
			continue
		}

		if err := emit(n, &frame); err != nil {
			return err
		}
		n++
	}
}

func runSequential(ctx context.Context, stream decode.Stream, c *collector) error {
	agg := motion.NewAggregator()
	return decodeFrames(ctx, stream, func(index int, f *motion.Frame) error {
		c.collect(index, f.Geometry, agg.Aggregate(f).Clone())
		return nil
	})
}

type job struct {
	index int
	frame *motion.Frame
}

type result struct {
	index int
	geo   motion.Geometry
	grid  *motion.Grid
}

// runParallel fans frames out to workers which each own an aggregator.
// Frames are cloned off the decoder's buffers before they are handed over.
func runParallel(ctx context.Context, stream decode.Stream, c *collector, workers int) error {
	jobs := make(chan job, workers)
	results := make(chan result, workers)

	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(wg *sync.WaitGroup) {
			defer wg.Done()
			agg := motion.NewAggregator()
			for j := range jobs {
				results <- result{index: j.index, geo: j.frame.Geometry, grid: agg.Aggregate(j.frame).Clone()}
			}
		}(&wg)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make(chan interface{})
	go func() {
		for r := range results {
			c.collect(r.index, r.geo, r.grid)
		}
		close(collected)
	}()

	// workers drain jobs until it is closed so sending never blocks forever
	err := decodeFrames(ctx, stream, func(index int, f *motion.Frame) error {
		jobs <- job{index: index, frame: f.Clone()}
		return nil
	})
	close(jobs)
	<-collected
	return err
}

// collector appends grids to the sequence and reports them strictly in
// frame order, holding back any that arrive early. It is driven by a
// single goroutine.
type collector struct {
	seq     *motion.Sequence
	w       io.Writer
	paint   func(motion.Intensity, string) string
	next    int
	pending map[int]result
}

func newCollector(seq *motion.Sequence, w io.Writer, paint func(motion.Intensity, string) string) *collector {
	if paint == nil {
		paint = func(_ motion.Intensity, s string) string { return s }
	}
	return &collector{seq: seq, w: w, paint: paint, pending: map[int]result{}}
}

func (c *collector) collect(index int, geo motion.Geometry, grid *motion.Grid) {
	c.pending[index] = result{index: index, geo: geo, grid: grid}
	for {
		r, ok := c.pending[c.next]
		if !ok {
			return
		}
		delete(c.pending, c.next)
		c.emit(r)
		c.next++
	}
}

func (c *collector) emit(r result) {
	c.seq.Append(r.index, r.grid)

	m := motion.Classification(r.grid, r.geo)
	log.Debug("Frame %d: %dx%d macroblocks, %d high, %d low", r.index,
		m.Width, m.Height, m.Count(motion.IntensityHigh), m.Count(motion.IntensityLow))
	if c.w != nil {
		fmt.Fprintf(c.w, "frame %d\n%s", r.index, m.Render(c.paint))
	}
}
