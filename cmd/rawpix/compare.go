package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/soypat/rawpix/filters"
	"github.com/soypat/rawpix/internal/logger"
	"github.com/soypat/rawpix/internal/pipeline"
	"github.com/soypat/rawpix/internal/report"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [image]",
	Short: "Time a sequential run on one image against a parallel run on another",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().String("dir", "../test_images/", "Directory holding the input images and receiving the outputs")
	compareCmd.Flags().String("second", "west_1.ppm", "Image converted by the parallel run")
	compareCmd.Flags().Int("workers", filters.DefaultWorkers, "Goroutines used by the parallel run")
	addReportFlags(compareCmd)
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	second, _ := cmd.Flags().GetString("second")
	workers, _ := cmd.Flags().GetInt("workers")
	if workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", workers)
	}

	opts := pipeline.Options{
		First:        filepath.Join(dir, args[0]),
		FirstOutput:  filepath.Join(dir, "output_1.ppm"),
		Second:       filepath.Join(dir, second),
		SecondOutput: filepath.Join(dir, "output_2.ppm"),
		Workers:      workers,
	}
	run, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}
	return emitReport(cmd, run)
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("report", "", "Append the text report to this file")
	cmd.Flags().String("redis-addr", "", "Publish the report to the Redis server at this address")
	cmd.Flags().String("redis-stream", report.DefaultStream, "Redis stream receiving reports")
}

// emitReport prints run and hands it to the sinks selected by flags.
func emitReport(cmd *cobra.Command, run report.Run) error {
	if err := report.WriteText(cmd.OutOrStdout(), run); err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("report")
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("opening report: %w", err)
		}
		err = report.WriteText(f, run)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	addr, _ := cmd.Flags().GetString("redis-addr")
	if addr == "" {
		return nil
	}
	stream, _ := cmd.Flags().GetString("redis-stream")
	ctx := cmd.Context()
	pub, err := report.NewRedisPublisher(ctx, addr, stream)
	if err != nil {
		return err
	}
	defer pub.Close()
	id, err := pub.Publish(ctx, run)
	if err != nil {
		return err
	}
	logger.For(ctx).Info("published report", "stream", stream, "entry", id, "run", run.ID)
	return nil
}
