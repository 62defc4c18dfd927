package filters

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/soypat/rawpix"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 8

// maxWorkers bounds the Workers control of [ParallelFilter].
const maxWorkers = 256

// Run converts samples to grayscale with one goroutine per [Split] range and
// returns once every goroutine has finished. Goroutines share samples but
// never touch the same index, so no locking takes place.
//
// A panic in any worker is raised again on the calling goroutine after the join.
func Run(samples []byte, workers int) {
	run(samples, Split(len(samples), workers))
}

// run transforms each range of samples on its own goroutine.
func run(samples []byte, ranges []ChunkRange) {
	panics := make([]any, len(ranges))

	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for i, r := range ranges {
		go func() {
			defer wg.Done()
			defer func() { panics[i] = recover() }()
			ApplyGrayscale(samples, r)
		}()
	}
	wg.Wait()

	for i, p := range panics {
		if p != nil {
			panic(fmt.Sprintf("filters: worker %d on [%d,%d): %v", i, ranges[i].Start, ranges[i].End, p))
		}
	}
}

var errParallelROI = errors.New("parallel filter does not support ROI")

// ParallelFilter applies the grayscale transform over a whole image with a
// fixed pool of goroutines. Its output is byte-identical to [NewGrayscale].
type ParallelFilter struct {
	workers int
	ctrls   []rawpix.Control
}

// NewParallelGrayscale creates a parallel grayscale filter. workers < 1 selects [DefaultWorkers].
func NewParallelGrayscale(workers int) *ParallelFilter {
	if workers < 1 {
		workers = DefaultWorkers
	}
	f := &ParallelFilter{workers: workers}
	f.ctrls = []rawpix.Control{
		&rawpix.ControlOrdered[int]{
			Name:        "Workers",
			Description: "Number of goroutines sharing the image",
			Value:       workers,
			Min:         1,
			Max:         maxWorkers,
			Step:        1,
			OnChange: func(n int) error {
				f.workers = n
				return nil
			},
		},
	}
	return f
}

// Workers returns the configured worker count.
func (f *ParallelFilter) Workers() int { return f.workers }

// ShapeIO implements [rawpix.Filter].
func (f *ParallelFilter) ShapeIO() (output, input rawpix.Shape) {
	return rawpix.ShapeRGB888, rawpix.ShapeRGB888
}

// Controls implements [rawpix.Filter].
func (f *ParallelFilter) Controls() []rawpix.Control {
	return f.ctrls
}

// Process implements [rawpix.Filter]. A nil dst transforms src in place.
func (f *ParallelFilter) Process(dst []byte, src rawpix.Image, roi *image.Rectangle) (rawpix.Dims, error) {
	if roi != nil {
		return rawpix.Dims{}, errParallelROI
	}
	srcDims := src.Dims()
	if srcDims.Shape != rawpix.ShapeRGB888 {
		return rawpix.Dims{}, errShapeMismatch
	}
	dstDims := rawpix.Dims{
		Width:  srcDims.Width,
		Height: srcDims.Height,
		Stride: srcDims.Width * 3,
		Shape:  rawpix.ShapeRGB888,
	}
	inPlace := dst == nil
	dst, _, err := rawpix.ValidateProcessArgs(dst, dstDims, src, nil)
	if err != nil {
		return rawpix.Dims{}, err
	}
	if inPlace && srcDims.Stride != dstDims.Stride {
		return rawpix.Dims{}, errors.New("parallel filter requires unpadded rows in place")
	}
	size := int(dstDims.Size())
	dst = dst[:size]
	if !inPlace {
		for y := 0; y < srcDims.Height; y++ {
			row := dst[y*dstDims.Stride : (y+1)*dstDims.Stride]
			srcRow, err := rawpix.ImageRow(row, src, y)
			if err != nil {
				return rawpix.Dims{}, err
			}
			copy(row, srcRow)
		}
	}
	Run(dst, f.workers)
	return dstDims, nil
}
