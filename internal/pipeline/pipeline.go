package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/soypat/rawpix"
	"github.com/soypat/rawpix/filters"
	"github.com/soypat/rawpix/internal/logger"
	"github.com/soypat/rawpix/internal/report"
	"github.com/soypat/rawpix/ppm"
)

// Options controls a comparison run.
type Options struct {
	// First is converted sequentially and written to FirstOutput.
	First       string
	FirstOutput string
	// Second is converted with Workers goroutines and written to SecondOutput.
	Second       string
	SecondOutput string
	Workers      int
}

// Run executes load → sequential grayscale → save → load → parallel grayscale → save
// and reports the time spent in each transform.
func Run(ctx context.Context, opts Options) (report.Run, error) {
	log := logger.For(ctx)
	workers := opts.Workers
	if workers < 1 {
		workers = filters.DefaultWorkers
	}
	run := report.NewRun()
	run.Workers = workers
	run.InputPaths = []string{opts.First, opts.Second}
	run.OutputPaths = []string{opts.FirstOutput, opts.SecondOutput}

	// 1. Sequential pass
	first, err := load(ctx, opts.First)
	if err != nil {
		return run, err
	}
	run.Width, run.Height = first.Width, first.Height
	run.Sequential, err = Sequential(first)
	if err != nil {
		return run, err
	}
	log.Info("sequential grayscale done", "path", opts.First, "elapsed", run.Sequential)
	if err := ppm.Save(opts.FirstOutput, first); err != nil {
		return run, fmt.Errorf("save %s: %w", opts.FirstOutput, err)
	}

	// 2. Parallel pass
	second, err := load(ctx, opts.Second)
	if err != nil {
		return run, err
	}
	run.ParallelWidth, run.ParallelHeight = second.Width, second.Height
	run.Parallel, err = Parallel(second, workers)
	if err != nil {
		return run, err
	}
	log.Info("parallel grayscale done", "path", opts.Second, "workers", workers, "elapsed", run.Parallel)
	if err := ppm.Save(opts.SecondOutput, second); err != nil {
		return run, fmt.Errorf("save %s: %w", opts.SecondOutput, err)
	}
	return run, nil
}

func load(ctx context.Context, path string) (*rawpix.RGB, error) {
	img, err := ppm.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	log := logger.For(ctx)
	log.Info("loaded image", "path", path, "width", img.Width, "height", img.Height, "maxval", img.MaxVal)
	for i, px := range SamplePixels(img, 10) {
		log.Debug("sample pixel", "index", i, "r", px[0], "g", px[1], "b", px[2])
	}
	return img, nil
}

// Sequential converts img in place with the row-wise [filters.NewGrayscale]
// filter on the calling goroutine and returns the elapsed time.
func Sequential(img *rawpix.RGB) (time.Duration, error) {
	f := filters.NewGrayscale()
	start := time.Now()
	if _, err := f.Process(nil, img, nil); err != nil {
		return 0, fmt.Errorf("sequential grayscale: %w", err)
	}
	return time.Since(start), nil
}

// Parallel converts img in place with workers goroutines and returns the elapsed time.
// workers < 1 selects [filters.DefaultWorkers].
func Parallel(img *rawpix.RGB, workers int) (time.Duration, error) {
	f := filters.NewParallelGrayscale(workers)
	start := time.Now()
	if _, err := f.Process(nil, img, nil); err != nil {
		return 0, fmt.Errorf("parallel grayscale: %w", err)
	}
	return time.Since(start), nil
}

// Timings are the wall-clock durations of both transform paths over the same image.
type Timings struct {
	Sequential time.Duration
	Parallel   time.Duration
	// Identical reports whether both paths produced the same samples.
	Identical bool
}

// Time runs both transform paths over separate copies of img, which is left untouched.
// workers < 1 selects [filters.DefaultWorkers].
func Time(img *rawpix.RGB, workers int) (Timings, error) {
	if err := img.Validate(); err != nil {
		return Timings{}, err
	}
	if workers < 1 {
		workers = filters.DefaultWorkers
	}
	seq, par := img.Clone(), img.Clone()
	var t Timings
	var err error
	if t.Sequential, err = Sequential(seq); err != nil {
		return Timings{}, err
	}
	if t.Parallel, err = Parallel(par, workers); err != nil {
		return Timings{}, err
	}
	t.Identical = seq.Equal(par)
	return t, nil
}

// SamplePixels returns up to n leading pixels of img.
func SamplePixels(img *rawpix.RGB, n int) [][3]uint8 {
	n = min(n, len(img.Pix)/3)
	pixels := make([][3]uint8, n)
	for i := range pixels {
		copy(pixels[i][:], img.Pix[i*3:])
	}
	return pixels
}
