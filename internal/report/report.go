// Package report records and publishes the timings of sequential versus
// parallel grayscale runs.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Run holds timing and metadata for one comparison.
type Run struct {
	ID        string
	Timestamp time.Time

	// Width and Height describe the image timed by the sequential path.
	Width  int
	Height int
	// ParallelWidth and ParallelHeight describe the image timed by the parallel path.
	ParallelWidth  int
	ParallelHeight int
	Workers        int

	Sequential time.Duration
	Parallel   time.Duration
	// Identical reports whether both paths produced the same samples.
	// It is only known when both ran over the same input.
	Identical *bool

	InputPaths  []string
	OutputPaths []string
}

// NewRun returns a Run with a fresh ID stamped with the current time.
func NewRun() Run {
	return Run{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
	}
}

// SameInput reports whether both paths were timed over the same input file.
// Timings of different images are not comparable.
func (r Run) SameInput() bool {
	return len(r.InputPaths) < 2 || r.InputPaths[0] == r.InputPaths[1]
}

// Speedup returns how many times faster the parallel run was, or 0 if unknown.
func (r Run) Speedup() float64 {
	if !r.SameInput() || r.Parallel <= 0 || r.Sequential <= 0 {
		return 0
	}
	return float64(r.Sequential) / float64(r.Parallel)
}

// WriteText writes a human readable report of runs to w.
func WriteText(w io.Writer, runs ...Run) error {
	ew := &errWriter{w: w}
	for _, r := range runs {
		ew.printf("=== Grayscale run %s ===\n", r.ID)
		ew.printf("Timestamp: %s\n", r.Timestamp.Format("2006-01-02 15:04:05"))
		switch {
		case !r.SameInput():
			ew.printf("Sequential image: %dx%d\n", r.Width, r.Height)
			ew.printf("Parallel image: %dx%d\n", r.ParallelWidth, r.ParallelHeight)
		case r.Width > 0:
			ew.printf("Image: %dx%d\n", r.Width, r.Height)
		}
		ew.printf("Processing without workers takes %f s\n", r.Sequential.Seconds())
		ew.printf("Processing with %d workers takes %f s\n", r.Workers, r.Parallel.Seconds())
		if s := r.Speedup(); s > 0 {
			ew.printf("Speedup: %.2fx\n", s)
		}
		if r.Identical != nil {
			ew.printf("Outputs identical: %t\n", *r.Identical)
		}
		if len(r.InputPaths) > 0 {
			ew.printf("\nInput files:\n")
			for i, path := range r.InputPaths {
				ew.printf("  %d. %s\n", i+1, path)
			}
		}
		if len(r.OutputPaths) > 0 {
			ew.printf("\nOutput files:\n")
			for i, path := range r.OutputPaths {
				ew.printf("  %d. %s\n", i+1, path)
			}
		}
		ew.printf("\n")
	}
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
