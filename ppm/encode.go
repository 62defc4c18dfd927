package ppm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/soypat/rawpix"
)

// Encode writes img to w in the layout [Decode] reads back.
//
// An invalid buffer is rejected with [ErrFormat] before anything is written.
// A failing writer yields [ErrIO] and leaves w holding an undefined prefix.
func Encode(w io.Writer, img *rawpix.RGB) error {
	if err := img.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	bw := bufio.NewWriter(w)
	// bufio.Writer keeps the first error; Flush reports it.
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", Magic, img.Width, img.Height, img.MaxVal)
	bw.Write(img.Pix)
	if err := bw.Flush(); err != nil {
		return ioErr("write", err)
	}
	return nil
}
