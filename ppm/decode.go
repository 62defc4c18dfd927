// Package ppm reads and writes binary PPM (P6) images with 8-bit samples.
//
// The container is the magic "P6", three whitespace-separated decimal header
// values (width, height and max channel value) that may be interleaved with
// '#' comments, one whitespace byte, and width*height*3 raw samples in R,G,B order.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/soypat/rawpix"
)

// Magic is the signature of binary RGB pixel maps.
const Magic = "P6"

// maxHeaderValue is the exclusive bound on the max channel value of the format.
const maxHeaderValue = 65536

// DefaultMaxSamples is the sample limit of the zero [Decoder], 1 GiB.
const DefaultMaxSamples = 1 << 30

// Decoder decodes PPM streams.
type Decoder struct {
	// MaxSamples rejects images declaring more samples (width*height*3) with [ErrResource].
	// Zero means DefaultMaxSamples.
	MaxSamples int
}

// Decode decodes a PPM image from r with the default [Decoder].
func Decode(r io.Reader) (*rawpix.RGB, error) {
	var d Decoder
	return d.Decode(r)
}

// Decode reads one image from r. The image is returned fully populated or not at all.
//
// r is read through a [bufio.Reader] and may be consumed past the end of the
// image unless r is itself a *bufio.Reader.
func (d *Decoder) Decode(r io.Reader) (*rawpix.RGB, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	var magic [len(Magic)]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, formatErr("stream too short for magic")
		}
		return nil, ioErr("read magic", err)
	}
	if string(magic[:]) != Magic {
		return nil, formatErr("bad magic %q", magic[:])
	}

	s := headerScanner{r: br}
	if c, err := s.peek(); err == nil && !isSpace(c) && c != '#' {
		return nil, formatErr("bad magic %q", string(magic[:])+string(c))
	}
	width, err := s.positive("width")
	if err != nil {
		return nil, err
	}
	height, err := s.positive("height")
	if err != nil {
		return nil, err
	}
	maxVal, err := s.positive("max value")
	if err != nil {
		return nil, err
	}
	if maxVal >= maxHeaderValue {
		return nil, formatErr("max value %d out of range", maxVal)
	} else if maxVal > rawpix.MaxValue {
		return nil, formatErr("max value %d requires 16-bit samples", maxVal)
	}
	if err := s.separator(); err != nil {
		if errors.Is(err, ErrTruncated) {
			return nil, fmt.Errorf("%w: no pixel data after header", ErrTruncated)
		}
		return nil, err
	}

	n, err := rawpix.SampleCount(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResource, err)
	}
	limit := d.MaxSamples
	if limit <= 0 {
		limit = DefaultMaxSamples
	}
	if n > limit {
		return nil, fmt.Errorf("%w: %dx%d needs %d samples, limit is %d", ErrResource, width, height, n, limit)
	}
	img, err := rawpix.NewRGB(width, height, maxVal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResource, err)
	}

	got, err := io.ReadFull(br, img.Pix)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncated, got, n)
	} else if err != nil {
		return nil, ioErr("read pixels", err)
	}
	return img, nil
}
