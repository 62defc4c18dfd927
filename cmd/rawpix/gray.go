package main

import (
	"fmt"
	"time"

	"github.com/soypat/rawpix/filters"
	"github.com/soypat/rawpix/internal/logger"
	"github.com/soypat/rawpix/internal/pipeline"
	"github.com/soypat/rawpix/ppm"
	"github.com/spf13/cobra"
)

var grayCmd = &cobra.Command{
	Use:   "gray",
	Short: "Convert one PPM image to grayscale",
	RunE:  runGray,
}

func init() {
	grayCmd.Flags().StringP("input", "i", "", "Input PPM file (.zst for compressed)")
	grayCmd.Flags().StringP("output", "o", "", "Output PPM file (.zst for compressed)")
	grayCmd.Flags().Int("workers", filters.DefaultWorkers, "Goroutines sharing the image")
	grayCmd.Flags().Bool("sequential", false, "Convert on a single goroutine")
	grayCmd.MarkFlagRequired("input")
	grayCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(grayCmd)
}

func runGray(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	workers, _ := cmd.Flags().GetInt("workers")
	sequential, _ := cmd.Flags().GetBool("sequential")
	if workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", workers)
	}

	img, err := ppm.Load(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var elapsed time.Duration
	mode := fmt.Sprintf("%d workers", workers)
	if sequential {
		mode = "sequential"
		elapsed, err = pipeline.Sequential(img)
	} else {
		elapsed, err = pipeline.Parallel(img, workers)
	}
	if err != nil {
		return err
	}
	logger.For(cmd.Context()).Debug("grayscale done", "mode", mode, "elapsed", elapsed)

	if err := ppm.Save(outputPath, img); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %dx%d → grayscale (%s) in %s\n", img.Width, img.Height, mode, elapsed)
	fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", outputPath)
	return nil
}
