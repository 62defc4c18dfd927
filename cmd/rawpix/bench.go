package main

import (
	"errors"
	"fmt"

	"github.com/soypat/rawpix/filters"
	"github.com/soypat/rawpix/internal/logger"
	"github.com/soypat/rawpix/internal/pipeline"
	"github.com/soypat/rawpix/internal/report"
	"github.com/soypat/rawpix/ppm"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time both grayscale paths on copies of one image and check they agree",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().StringP("input", "i", "", "Input PPM file (.zst for compressed)")
	benchCmd.Flags().Int("workers", filters.DefaultWorkers, "Goroutines used by the parallel run")
	benchCmd.Flags().Int("rounds", 1, "Repetitions; the report holds the fastest of each path")
	benchCmd.MarkFlagRequired("input")
	addReportFlags(benchCmd)
	rootCmd.AddCommand(benchCmd)
}

var errMismatch = errors.New("sequential and parallel outputs differ")

func runBench(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	workers, _ := cmd.Flags().GetInt("workers")
	rounds, _ := cmd.Flags().GetInt("rounds")
	if workers < 1 || rounds < 1 {
		return fmt.Errorf("workers and rounds must be positive, got %d and %d", workers, rounds)
	}

	img, err := ppm.Load(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	log := logger.For(cmd.Context())
	run := report.NewRun()
	run.Width, run.Height, run.Workers = img.Width, img.Height, workers
	run.ParallelWidth, run.ParallelHeight = img.Width, img.Height
	run.InputPaths = []string{inputPath}
	identical := true
	for i := 0; i < rounds; i++ {
		t, err := pipeline.Time(img, workers)
		if err != nil {
			return err
		}
		log.Debug("bench round", "round", i, "sequential", t.Sequential, "parallel", t.Parallel)
		if i == 0 || t.Sequential < run.Sequential {
			run.Sequential = t.Sequential
		}
		if i == 0 || t.Parallel < run.Parallel {
			run.Parallel = t.Parallel
		}
		identical = identical && t.Identical
	}
	run.Identical = &identical

	if err := emitReport(cmd, run); err != nil {
		return err
	}
	if !identical {
		return errMismatch
	}
	return nil
}
