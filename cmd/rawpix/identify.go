package main

import (
	"fmt"

	"github.com/soypat/rawpix/internal/pipeline"
	"github.com/soypat/rawpix/ppm"
	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Print the header and leading pixels of a PPM image",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	identifyCmd.Flags().Int("pixels", 10, "Number of leading pixels to print")
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	n, _ := cmd.Flags().GetInt("pixels")
	img, err := ppm.Load(path)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:       %s\n", path)
	fmt.Fprintf(out, "Dimensions: %d x %d\n", img.Width, img.Height)
	fmt.Fprintf(out, "Max value:  %d\n", img.MaxVal)
	fmt.Fprintf(out, "Samples:    %d bytes\n", len(img.Pix))
	for i, px := range pipeline.SamplePixels(img, n) {
		fmt.Fprintf(out, "Pixel %d: R=%d G=%d B=%d\n", i, px[0], px[1], px[2])
	}
	return nil
}
