package main

import (
	"context"
	"fmt"
	"os"

	"github.com/soypat/rawpix/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "rawpix",
	Short:        "Convert binary PPM images to grayscale, sequentially or in parallel",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l := logger.New(cmd.ErrOrStderr(), verbose)
		cmd.SetContext(logger.SetContext(cmd.Context(), l))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug details such as sample pixels")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
